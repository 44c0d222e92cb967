package app

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

const (
	CONFIG_DEFAULT_CACHEDIR = ".syncproj"
	CONFIG_ENV_PREFIX       = "SYNCPROJ_"
)

/***************************************
 * Config
 ***************************************/

// Config is read from yaml, then overridden by SYNCPROJ_* variables and
// finally by command-line flags.
type Config struct {
	VisualStudio     vstudio.VisualStudioVersion `yaml:"visualstudio"`
	CacheDir         string                      `yaml:"cache"`
	Compression      base.CompressionFormat      `yaml:"compression"`
	KeepTrying       bool                        `yaml:"keep_trying"`
	LogLevel         base.LogLevel               `yaml:"log_level"`
	WarningsAsErrors bool                        `yaml:"warnings_as_errors"`
	Report           string                      `yaml:"report"`
}

func DefaultConfig() Config {
	return Config{
		VisualStudio: vstudio.VS_DEFAULT,
		CacheDir:     CONFIG_DEFAULT_CACHEDIR,
		Compression:  base.COMPRESSION_FORMAT_LZ4,
		LogLevel:     base.LOG_INFO,
	}
}

// ReadConfig decodes yaml over the current values, unknown keys are errors.
func (x *Config) ReadConfig(src io.Reader) error {
	decoder := yaml.NewDecoder(src)
	decoder.KnownFields(true)
	if err := decoder.Decode(x); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (x *Config) LoadConfigFile(src utils.Filename) error {
	base.LogVerbose(LogApp, "loading configuration from %q", src)
	return utils.UFS.Open(src, func(r io.Reader) error {
		if err := x.ReadConfig(r); err != nil {
			return base.MakeError("%v: %v", src, err)
		}
		return nil
	})
}

// ApplyEnvironment overrides the configuration with SYNCPROJ_* variables.
func (x *Config) ApplyEnvironment(lookup func(string) (string, bool)) error {
	parsers := []struct {
		Name string
		Set  func(string) error
	}{
		{"VSVER", x.VisualStudio.Set},
		{"CACHE", func(in string) error { x.CacheDir = in; return nil }},
		{"COMPRESSION", x.Compression.Set},
		{"KEEP_TRYING", setBool(&x.KeepTrying)},
		{"LOG_LEVEL", x.LogLevel.Set},
		{"WARNINGS_AS_ERRORS", setBool(&x.WarningsAsErrors)},
		{"REPORT", func(in string) error { x.Report = in; return nil }},
	}
	for _, it := range parsers {
		value, ok := lookup(CONFIG_ENV_PREFIX + it.Name)
		if !ok {
			continue
		}
		if err := it.Set(strings.TrimSpace(value)); err != nil {
			return base.MakeError("%s%s: %v", CONFIG_ENV_PREFIX, it.Name, err)
		}
		base.LogVeryVerbose(LogApp, "%s%s=%q", CONFIG_ENV_PREFIX, it.Name, value)
	}
	return nil
}

func setBool(dst *bool) func(string) error {
	return func(in string) (err error) {
		*dst, err = strconv.ParseBool(in)
		return
	}
}

// LoadEnvFile exports the variables of a .env file, when there is one.
func LoadEnvFile(src utils.Filename) error {
	if !src.Exists() {
		return nil
	}
	base.LogVerbose(LogApp, "loading environment from %q", src)
	return godotenv.Load(src.String())
}

// LoadConfig layers the defaults, the optional yaml file, the .env file of
// the working directory and the process environment.
func LoadConfig(workDir utils.Directory, configFile string) (Config, error) {
	config := DefaultConfig()
	if len(configFile) > 0 {
		if err := config.LoadConfigFile(utils.MakeFilename(configFile)); err != nil {
			return config, err
		}
	}
	if err := LoadEnvFile(workDir.File(".env")); err != nil {
		return config, err
	}
	return config, config.ApplyEnvironment(os.LookupEnv)
}

// Apply sets the global logger options.
func (x *Config) Apply() {
	base.SetLogVisibleLevel(x.LogLevel)
	base.SetLogWarningAsError(x.WarningsAsErrors)
}
