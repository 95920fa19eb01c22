package cobot

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	BaseURL string `toml:"base_url" env:"COBOT_BASE_URL"`
	Token   string `toml:"token" env:"COBOT_TOKEN"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n  BaseURL: %s\n  Token: %s",
		c.BaseURL,
		strings.Repeat("*", len(c.Token)),
	)
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Token, validation.Required),
	)
}
