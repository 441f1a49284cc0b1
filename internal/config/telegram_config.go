package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

func (config TelegramConfig) Enabled() bool {
	return config.Token != ""
}

func (config TelegramConfig) validate() error {
	if config.Token != "" && config.ChatID == 0 {
		return fmt.Errorf("missing variable: chat_id")
	}
	return nil
}

func (config TelegramConfig) setDefaults(_ *viper.Viper) {}

func (config TelegramConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"telegram.token":   "TG_TOKEN",
		"telegram.chat_id": "TG_CHAT_ID",
	})
}
