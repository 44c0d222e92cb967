package builder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

func newTestSession(t *testing.T, options ...ContextOptionFunc) (*Session, utils.Directory) {
	t.Helper()
	dir := utils.MakeDirectory(t.TempDir())
	options = append([]ContextOptionFunc{
		OptionWorkDir(dir),
		OptionVisualStudio(vstudio.VS_2019),
	}, options...)
	return NewSession(options...), dir
}

func touchFiles(t *testing.T, dir utils.Directory, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir.String(), filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("// "+name+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %q: %v", path, err)
	}
	return string(data)
}

// must stops the test on the first failing builder call.
func must(t *testing.T, errs ...error) {
	t.Helper()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func expectConfigurationError(t *testing.T, err error, call string) *ConfigurationError {
	t.Helper()
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected a configuration error from %s, got %v", call, err)
	}
	if configErr.Call != call {
		t.Errorf("error raised by %q, want %q: %v", configErr.Call, call, err)
	}
	return configErr
}

func expectContains(t *testing.T, text string, lines ...string) {
	t.Helper()
	for _, it := range lines {
		if !strings.Contains(text, it) {
			t.Errorf("missing %q in:\n%s", it, text)
		}
	}
}
