package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the per-user defaults of the CLI. Values come from, in
// increasing priority: built-in defaults, the settings file, NUCKAGE_* env.
type Settings struct {
	MassTable string      `mapstructure:"mass_table"`
	DataDir   string      `mapstructure:"data_dir"`
	Workers   int         `mapstructure:"workers"`
	Log       LogSettings `mapstructure:"log"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// LoadSettings reads path when given, otherwise looks for
// settings.yaml in ~/.config/nuckage. A missing default file is not an error.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()

	v.SetDefault("mass_table", filepath.Join("etc", "mass.txt"))
	v.SetDefault("data_dir", ".nuckage")
	v.SetDefault("workers", 4)
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "nuckage"))
		}
		v.SetConfigName("settings")
	}

	v.SetEnvPrefix("NUCKAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}

// Logger builds a text logger at the configured level.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
