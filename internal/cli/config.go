package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tabulate/internal/paths"
	"github.com/mesh-intelligence/tabulate/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "TABULATE"

	cfgKeyDelimiter = "delimiter"
	cfgKeyMaxBytes  = "max_bytes"
	cfgKeyOutputDir = "output_dir"
	cfgKeyTickEvery = "tick_every"
	cfgKeyArchive   = "archive"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"

	defaultDelimiter = types.DelimiterComma
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// settings is the decoded configuration of one invocation, merged from
// flags, TABULATE_* environment variables, config.yaml, and defaults.
type settings struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter" validate:"required,delimiter"`
	MaxBytes  int    `mapstructure:"max_bytes" yaml:"max_bytes" validate:"gt=0"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir,omitempty"`
	TickEvery int    `mapstructure:"tick_every" yaml:"tick_every" validate:"gte=0"`
	Archive   string `mapstructure:"archive" yaml:"archive,omitempty"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
}

// defaultSettings returns the values used when nothing overrides them.
func defaultSettings() settings {
	return settings{
		Delimiter: defaultDelimiter,
		MaxBytes:  types.DefaultMaxBytes,
		TickEvery: types.DefaultTickEvery,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// options converts settings into engine options.
func (s settings) options() (types.Options, error) {
	sep, err := types.ParseDelimiter(s.Delimiter)
	if err != nil {
		return types.Options{}, err
	}
	return types.Options{Delimiter: sep, MaxBytes: s.MaxBytes, TickEvery: s.TickEvery}, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		_, err := types.ParseDelimiter(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic("register delimiter validation: " + err.Error())
	}
	return v
}

// loadSettings resolves the config directory, reads config.yaml from it when
// present, and decodes and validates the merged settings. A missing
// config.yaml is not an error.
func (a *app) loadSettings() (settings, error) {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v := a.v
	d := defaultSettings()
	v.SetDefault(cfgKeyDelimiter, d.Delimiter)
	v.SetDefault(cfgKeyMaxBytes, d.MaxBytes)
	v.SetDefault(cfgKeyOutputDir, "")
	v.SetDefault(cfgKeyTickEvery, d.TickEvery)
	v.SetDefault(cfgKeyArchive, "")
	v.SetDefault(cfgKeyLogLevel, d.LogLevel)
	v.SetDefault(cfgKeyLogFormat, d.LogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	s.LogFormat = strings.ToLower(s.LogFormat)
	if err := validate.Struct(s); err != nil {
		return settings{}, fmt.Errorf("invalid config: %w", describeValidation(err))
	}
	return s, nil
}

// describeValidation rewrites validator errors using config key names.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v fails %q", keyForField(fe.Field()), fe.Value(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func keyForField(field string) string {
	switch field {
	case "Delimiter":
		return cfgKeyDelimiter
	case "MaxBytes":
		return cfgKeyMaxBytes
	case "TickEvery":
		return cfgKeyTickEvery
	case "LogLevel":
		return cfgKeyLogLevel
	case "LogFormat":
		return cfgKeyLogFormat
	default:
		return strings.ToLower(field)
	}
}

// bindFlag binds a config key to a flag; the flag wins only when set.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		panic("bindFlag: unknown flag for " + key)
	}
	_ = v.BindPFlag(key, flag)
}
