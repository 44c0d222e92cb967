package builder

import (
	"fmt"
)

/***************************************
 * ConfigurationError
 ***************************************/

// ConfigurationError is raised by a builder call used out of order or with
// invalid arguments, Call is the name of that builder operation.
type ConfigurationError struct {
	Call    string
	Message string
	Err     error
}

func (x *ConfigurationError) Error() string {
	if x.Err != nil {
		return fmt.Sprintf("%s: %s: %v", x.Call, x.Message, x.Err)
	}
	return fmt.Sprintf("%s: %s", x.Call, x.Message)
}
func (x *ConfigurationError) Unwrap() error { return x.Err }

func configurationError(call string, msg string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Call: call, Message: fmt.Sprintf(msg, args...)}
}
func wrapConfigurationError(call string, err error, msg string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Call: call, Message: fmt.Sprintf(msg, args...), Err: err}
}

/***************************************
 * FileError
 ***************************************/

// FileError reports a missing or unmatched file, Line is 0 when unknown.
type FileError struct {
	Path string
	Line int
	Err  error
}

func (x *FileError) Error() string {
	if x.Line > 0 {
		return fmt.Sprintf("%s(%d): %v", x.Path, x.Line, x.Err)
	}
	return fmt.Sprintf("%s: %v", x.Path, x.Err)
}
func (x *FileError) Unwrap() error { return x.Err }
