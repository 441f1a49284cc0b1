package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type ExportConfig struct {
	CSVPath    string           `mapstructure:"csv_path"`
	ClickHouse ClickHouseConfig `mapstructure:"clickhouse"`
	NATS       NATSConfig       `mapstructure:"nats"`
}

type ClickHouseConfig struct {
	Addr     string `mapstructure:"addr"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Table    string `mapstructure:"table"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

func (config ExportConfig) validate() error {
	if config.CSVPath == "" && config.ClickHouse.Addr == "" && config.NATS.URL == "" {
		return fmt.Errorf("no export configured: set csv_path, clickhouse.addr or nats.url")
	}
	if config.ClickHouse.Addr != "" && config.ClickHouse.Table == "" {
		return fmt.Errorf("missing variable: clickhouse.table")
	}
	if config.NATS.URL != "" && config.NATS.Subject == "" {
		return fmt.Errorf("missing variable: nats.subject")
	}
	return nil
}

func (config ExportConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("export.csv_path", "vacancies.csv")
	v.SetDefault("export.clickhouse.database", "default")
	v.SetDefault("export.clickhouse.username", "default")
	v.SetDefault("export.clickhouse.table", "vacancies")
	v.SetDefault("export.nats.subject", "vacancies")
}

func (config ExportConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"export.csv_path":            "CSV_PATH",
		"export.clickhouse.addr":     "CLICKHOUSE_ADDR",
		"export.clickhouse.database": "CLICKHOUSE_DATABASE",
		"export.clickhouse.username": "CLICKHOUSE_USERNAME",
		"export.clickhouse.password": "CLICKHOUSE_PASSWORD",
		"export.nats.url":            "NATS_URL",
	})
}
