package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	HH        HHConfig        `mapstructure:"hh"`
	Collector CollectorConfig `mapstructure:"collector"`
	Export    ExportConfig    `mapstructure:"export"`
	DB        DBConfig        `mapstructure:"db"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
}

type section interface {
	setDefaults(v *viper.Viper)
	bindEnvironmentVariables(v *viper.Viper) error
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	file := configFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := Load(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func Load(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	sections := map[string]section{
		"LoggerConfig":    LoggerConfig{},
		"HHConfig":        HHConfig{},
		"CollectorConfig": CollectorConfig{},
		"ExportConfig":    ExportConfig{},
		"DBConfig":        DBConfig{},
		"MetricsConfig":   MetricsConfig{},
		"TelegramConfig":  TelegramConfig{},
	}

	var errs []error
	for name, s := range sections {
		s.setDefaults(v)
		if err := s.bindEnvironmentVariables(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.HH.validate(); err != nil {
		errs = append(errs, fmt.Errorf("HHConfig: %w", err))
	}

	if err := config.Collector.validate(); err != nil {
		errs = append(errs, fmt.Errorf("CollectorConfig: %w", err))
	}

	if err := config.Export.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ExportConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Telegram.validate(); err != nil {
		errs = append(errs, fmt.Errorf("TelegramConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(v *viper.Viper, bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
