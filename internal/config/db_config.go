package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	HistoryDays      int    `mapstructure:"history_days"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.HistoryDays <= 0 {
		return fmt.Errorf("history_days must be greater than zero")
	}
	return nil
}

func (config DBConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("db.history_days", 30)
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.history_days":      "DB_HISTORY_DAYS",
	})
}
