package config

import (
	"errors"
	"fmt"
	"github.com/maxaizer/hh-harvester/internal/clients/hh"
	"github.com/spf13/viper"
	"net/url"
	"time"
)

type HHConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	PerPage              int           `mapstructure:"per_page"`
	Text                 string        `mapstructure:"text"`
	Area                 string        `mapstructure:"area"`
}

func (config HHConfig) SearchParameters() hh.SearchParameters {
	return hh.SearchParameters{Text: config.Text, AreaID: config.Area, PerPage: config.PerPage}
}

func (config HHConfig) validate() error {
	var errs []error

	if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("invalid base_url: %w", err))
	}

	if config.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be non-negative"))
	}

	if config.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must be non-negative"))
	}

	if err := config.SearchParameters().Validate(0); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config HHConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("hh.base_url", hh.DefaultBaseURL)
	v.SetDefault("hh.max_requests_per_second", 10)
	v.SetDefault("hh.request_timeout", 15*time.Second)
}

func (config HHConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"hh.base_url":                "HH_BASE_URL",
		"hh.max_requests_per_second": "HH_MAX_REQUESTS_PER_SECOND",
		"hh.request_timeout":         "HH_REQUEST_TIMEOUT",
		"hh.per_page":                "HH_PER_PAGE",
		"hh.text":                    "HH_SEARCH_TEXT",
		"hh.area":                    "HH_AREA",
	})
}
