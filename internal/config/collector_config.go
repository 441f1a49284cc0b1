package config

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/maxaizer/hh-harvester/internal/salary"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type CollectorConfig struct {
	PageLimit      int                `mapstructure:"page_limit" validate:"gte=0"`
	Workers        int                `mapstructure:"workers" validate:"gte=1,lte=100"`
	FailurePolicy  string             `mapstructure:"failure_policy" validate:"oneof=abort skip"`
	GrossFactor    float64            `mapstructure:"gross_factor" validate:"gt=0,lte=1"`
	Rates          map[string]float64 `mapstructure:"rates" validate:"required,dive,gt=0"`
	DetailCacheTTL time.Duration      `mapstructure:"detail_cache_ttl" validate:"gte=0"`
	Schedule       string             `mapstructure:"schedule"`
}

// SalaryRates converts the configured table into normalizer rates. Viper
// lowercases map keys, currency codes are restored to upper case here.
func (config CollectorConfig) SalaryRates() salary.Rates {
	rates := make(salary.Rates, len(config.Rates))
	for currency, rate := range config.Rates {
		rates[models.Currency(strings.ToUpper(currency))] = rate
	}
	return rates
}

func (config CollectorConfig) validate() error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if config.Schedule != "" {
		if _, err := cron.ParseStandard(config.Schedule); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", config.Schedule, err)
		}
	}

	return nil
}

func (config CollectorConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("collector.page_limit", 0)
	v.SetDefault("collector.workers", 10)
	v.SetDefault("collector.failure_policy", "skip")
	v.SetDefault("collector.gross_factor", salary.DefaultGrossFactor)
	v.SetDefault("collector.detail_cache_ttl", 30*time.Minute)

	rates := map[string]float64{}
	for currency, rate := range salary.DefaultRates() {
		rates[strings.ToLower(string(currency))] = rate
	}
	v.SetDefault("collector.rates", rates)
}

func (config CollectorConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"collector.page_limit":     "PAGE_LIMIT",
		"collector.workers":        "WORKERS",
		"collector.failure_policy": "FAILURE_POLICY",
		"collector.schedule":       "SCHEDULE",
	})
}
