// Package config bridges Viper and the process environment for the CLI.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/agentstation/stocksync/pkg/config"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// BindEnv binds every environment variable understood by config.ApplyEnv so
// values loaded from .env files are visible through Viper.
func BindEnv() error {
	for _, key := range Keys() {
		if err := viper.BindEnv(key); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the environment variables read by config.ApplyEnv.
func Keys() []string {
	return []string{
		config.EnvMarketToken,
		config.EnvFBSCampaign,
		config.EnvDBSCampaign,
		config.EnvFBSWarehouse,
		config.EnvDBSWarehouse,
		config.EnvSellerToken,
		config.EnvClientID,
		config.EnvOzonWarehouse,
		config.EnvFeedURL,
		config.EnvYandexRateLimit,
		config.EnvOzonRateLimit,
	}
}

// Settings loads the YAML file at path, or the defaults when path is empty,
// and overlays the environment through GetString.
func Settings(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(GetString)
	return cfg, nil
}
