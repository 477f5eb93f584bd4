// Package config reads the settings of the miniconf command from flags,
// MINICONF_ environment variables, and an optional miniconf.yaml file, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables settings are read
// from: MINICONF_DATA_DIR sets DataDir.
const EnvPrefix = "MINICONF"

// FileName is the name, without extension, of the config file looked for in
// the working directory when none is passed.
const FileName = "miniconf"

// Config holds every setting of the miniconf command.
type Config struct {
	// DataDir is the site data directory, holding configs/, data/, and
	// pages/.
	DataDir string `mapstructure:"data_dir"`

	// TemplateDir overrides the templates compiled into the binary.
	TemplateDir string `mapstructure:"template_dir"`

	StaticDir string `mapstructure:"static_dir"`
	OutputDir string `mapstructure:"output_dir"`

	// Addr is the address the preview server listens on.
	Addr string `mapstructure:"addr"`

	LogLevel    string `mapstructure:"log_level"`
	Precompress bool   `mapstructure:"precompress"`

	// Watch reloads the preview server when the data or templates change.
	Watch bool `mapstructure:"watch"`

	// File is the config file the settings were read from, if any.
	File string `mapstructure:"-"`
}

// flagKeys maps flag names to setting keys.
var flagKeys = map[string]string{
	"data-dir":     "data_dir",
	"template-dir": "template_dir",
	"static-dir":   "static_dir",
	"output-dir":   "output_dir",
	"addr":         "addr",
	"log-level":    "log_level",
	"precompress":  "precompress",
	"watch":        "watch",
}

func defaults(v *viper.Viper) {
	v.SetDefault("data_dir", "sitedata")
	v.SetDefault("template_dir", "")
	v.SetDefault("static_dir", "static")
	v.SetDefault("output_dir", "site")
	v.SetDefault("addr", "localhost:5000")
	v.SetDefault("log_level", "info")
	v.SetDefault("precompress", false)
	v.SetDefault("watch", true)
}

// Load reads the settings. flags may hold any of the flags named like the
// settings, with dashes: --data-dir sets DataDir. When file is empty, a
// miniconf.yaml in the working directory is read if there is one; when it
// isn't, the file must exist.
func Load(flags *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()
	defaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("error binding flag --%s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level returns LogLevel as a slog.Level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
