package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the runtime settings shared by the binaries. Values come
// from defaults, an optional coerceo.yaml, and COERCEO_* environment
// variables, in rising priority.
type Config struct {
	// Variant is the starting layout, "laurentius" or "ocius".
	Variant string

	// ExchangeRate is the captured tile cost of removing one enemy piece.
	ExchangeRate int

	// SearchDepth is the engine's iterative deepening horizon in plies.
	SearchDepth int

	// TTPow sizes the transposition table at 2^TTPow entries.
	TTPow int

	// Contempt is the score the engine assigns a repetition draw.
	Contempt int

	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string
}

// Load reads the configuration. A missing config file is fine; a malformed
// one is not.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("variant", "laurentius")
	v.SetDefault("exchange_rate", 1)
	v.SetDefault("search_depth", 6)
	v.SetDefault("tt_pow", 20)
	v.SetDefault("contempt", 100)
	v.SetDefault("log_level", "info")

	v.SetConfigName("coerceo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/coerceo")

	v.SetEnvPrefix("coerceo")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return &Config{
		Variant:      v.GetString("variant"),
		ExchangeRate: v.GetInt("exchange_rate"),
		SearchDepth:  v.GetInt("search_depth"),
		TTPow:        v.GetInt("tt_pow"),
		Contempt:     v.GetInt("contempt"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}
