package vstudio

import "fmt"

// FormatError reports a malformed solution or project file, fatal for that load.
type FormatError struct {
	Path string
	Err  error
}

func (x *FormatError) Error() string {
	return fmt.Sprintf("%s: malformed file: %v", x.Path, x.Err)
}
func (x *FormatError) Unwrap() error { return x.Err }

func newFormatError(path string, format string, args ...interface{}) *FormatError {
	return &FormatError{Path: path, Err: fmt.Errorf(format, args...)}
}
