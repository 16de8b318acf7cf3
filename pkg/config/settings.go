// Package config loads tswig's own settings (not the TypeScript or SWC
// configuration it converts).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/logger"
)

const (
	// SettingsFileName is the settings file searched for, without extension.
	SettingsFileName = "tswig"
	// EnvPrefix prefixes every environment variable tswig reads.
	EnvPrefix = "TSWIG"
	// XDGConfigHomeEnvVar overrides XDG_CONFIG_HOME for tswig only.
	XDGConfigHomeEnvVar = "TSWIG_XDG_CONFIG_HOME"
)

// Settings are tswig's settings.
type Settings struct {
	// SettingsFile is the settings file that was read, empty when none was found.
	SettingsFile string `mapstructure:"-" yaml:"-" json:"-"`

	Verbose bool            `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	Logs    LogsSettings    `mapstructure:"logs" yaml:"logs" json:"logs"`
	Convert ConvertSettings `mapstructure:"convert" yaml:"convert" json:"convert"`
}

// LogsSettings configure logging.
type LogsSettings struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
	File  string `mapstructure:"file" yaml:"file" json:"file"`
}

// ConvertSettings are defaults for the convert command.
type ConvertSettings struct {
	// Tsconfig is the TypeScript configuration to convert.
	Tsconfig string `mapstructure:"tsconfig" yaml:"tsconfig" json:"tsconfig"`
	// Overrides is an optional YAML or JSON file merged into the result.
	Overrides string `mapstructure:"overrides" yaml:"overrides" json:"overrides"`
	// Output is where the .swcrc is written; empty prints to stdout.
	Output string `mapstructure:"output" yaml:"output" json:"output"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Logs: LogsSettings{
			File: "/dev/stderr",
		},
		Convert: ConvertSettings{
			Tsconfig: "tsconfig.json",
		},
	}
}

// LoggerConfig returns the logger configuration the settings describe.
func (s *Settings) LoggerConfig() logger.Config {
	return logger.Config{
		Verbose: s.Verbose,
		Level:   s.Logs.Level,
		File:    s.Logs.File,
	}
}

// LoadOptions control where settings come from.
type LoadOptions struct {
	// SettingsFile is an explicit settings file. It must exist when set.
	SettingsFile string
	// Flags are bound on top of every other source, keyed by FlagBindings.
	Flags *pflag.FlagSet
}

// FlagBindings maps settings keys to the command-line flags that set them.
var FlagBindings = map[string]string{
	"verbose":           "verbose",
	"logs.level":        "logs-level",
	"logs.file":         "logs-file",
	"convert.overrides": "overrides",
	"convert.output":    "output",
}

// Load reads settings from, lowest priority first: built-in defaults, the
// user's XDG config dir, the working directory, an explicit settings file,
// TSWIG_* environment variables and command-line flags.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	for _, dir := range searchDirs() {
		if err := mergeConfig(v, dir); err != nil {
			return nil, err
		}
	}

	if opts.SettingsFile != "" {
		v.SetConfigFile(opts.SettingsFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, errUtils.Build(errUtils.ErrLoadSettings).
				WithCause(err).
				WithContext("file", opts.SettingsFile).
				WithHint("Check the path passed to --config").
				Err()
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range FlagBindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errUtils.Build(errUtils.ErrLoadSettings).WithCause(err).Err()
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errUtils.Build(errUtils.ErrLoadSettings).WithCause(err).Err()
	}
	if err := mergo.Merge(&settings, Default()); err != nil {
		return nil, errUtils.Build(errUtils.ErrLoadSettings).WithCause(err).Err()
	}

	settings.SettingsFile = v.ConfigFileUsed()
	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("logs.level", d.Logs.Level)
	v.SetDefault("logs.file", d.Logs.File)
	v.SetDefault("convert.tsconfig", d.Convert.Tsconfig)
	v.SetDefault("convert.overrides", d.Convert.Overrides)
	v.SetDefault("convert.output", d.Convert.Output)
}

// ConfigDir returns the user's tswig config directory. TSWIG_XDG_CONFIG_HOME
// takes precedence over XDG_CONFIG_HOME.
func ConfigDir() string {
	v := viper.New()
	if err := v.BindEnv("XDG_CONFIG_HOME", XDGConfigHomeEnvVar, "XDG_CONFIG_HOME"); err != nil {
		return filepath.Join(xdg.ConfigHome, SettingsFileName)
	}
	if home := v.GetString("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, SettingsFileName)
	}
	return filepath.Join(xdg.ConfigHome, SettingsFileName)
}

func searchDirs() []string {
	dirs := []string{ConfigDir()}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}

// mergeConfig merges dir/tswig.yaml into v when it exists.
func mergeConfig(v *viper.Viper, dir string) error {
	path := filepath.Join(dir, SettingsFileName+".yaml")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return errUtils.Build(errUtils.ErrLoadSettings).
			WithCause(err).
			WithContext("file", path).
			Err()
	}
	return nil
}
