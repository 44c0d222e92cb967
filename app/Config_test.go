package app

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/vstudio"
)

func TestReadConfig(t *testing.T) {
	config := DefaultConfig()
	err := config.ReadConfig(strings.NewReader(`
visualstudio: "2019"
cache: build/cache
compression: zstd
keep_trying: true
log_level: Verbose
`))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	expected := Config{
		VisualStudio: vstudio.VS_2019,
		CacheDir:     "build/cache",
		Compression:  base.COMPRESSION_FORMAT_ZSTD,
		KeepTrying:   true,
		LogLevel:     base.LOG_VERBOSE,
	}
	if diff := cmp.Diff(expected, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestReadConfigRejectsUnknownKeys(t *testing.T) {
	config := DefaultConfig()
	if err := config.ReadConfig(strings.NewReader("compresion: zstd\n")); err == nil {
		t.Error("unknown key should be rejected")
	}
	if err := config.ReadConfig(strings.NewReader("compression: rar\n")); err == nil {
		t.Error("unknown compression should be rejected")
	}
}

func TestReadConfigEmpty(t *testing.T) {
	config := DefaultConfig()
	if err := config.ReadConfig(strings.NewReader("")); err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), config); diff != "" {
		t.Errorf("empty config should keep the defaults (-want +got):\n%s", diff)
	}
}

func TestApplyEnvironment(t *testing.T) {
	env := map[string]string{
		"SYNCPROJ_VSVER":       "2022",
		"SYNCPROJ_COMPRESSION": "s2",
		"SYNCPROJ_KEEP_TRYING": "true",
		"SYNCPROJ_REPORT":      "report.json",
		"OTHER_CACHE":          "ignored",
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	config := DefaultConfig()
	if err := config.ApplyEnvironment(lookup); err != nil {
		t.Fatalf("apply environment: %v", err)
	}
	if config.VisualStudio != vstudio.VS_2022 || config.Compression != base.COMPRESSION_FORMAT_S2 {
		t.Errorf("unexpected values: %+v", config)
	}
	if !config.KeepTrying || config.Report != "report.json" || config.CacheDir != CONFIG_DEFAULT_CACHEDIR {
		t.Errorf("unexpected values: %+v", config)
	}

	env["SYNCPROJ_KEEP_TRYING"] = "maybe"
	if err := config.ApplyEnvironment(lookup); err == nil || !strings.Contains(err.Error(), "SYNCPROJ_KEEP_TRYING") {
		t.Errorf("invalid boolean should name the variable, got %v", err)
	}
}
