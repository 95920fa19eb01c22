package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/topi314/cobot-tools/internal/xtime"
	"github.com/topi314/cobot-tools/server/cobot"
)

// LoadConfig layers configuration from three sources: built-in defaults,
// an optional TOML file and environment variables, the latter winning.
// Deployments without a config file configure everything through the
// environment.
func LoadConfig(cfgPath string) (Config, error) {
	cfg := defaultConfig()

	file, err := os.Open(cfgPath)
	if err == nil {
		defer func() {
			_ = file.Close()
		}()
		if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}

	if err = env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr:            ":8088",
			ShutdownTimeout: xtime.Duration(10 * time.Second),
		},
	}
}

type Config struct {
	Dev    bool         `toml:"dev" env:"DEV"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Cobot  cobot.Config `toml:"cobot"`
}

func (c Config) String() string {
	return fmt.Sprintf("Dev: %t\nLog: %s\nServer: %s\nCobot: %s",
		c.Dev,
		c.Log,
		c.Server,
		c.Cobot,
	)
}

func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Cobot.Validate(); err != nil {
		return fmt.Errorf("cobot: %w", err)
	}
	return nil
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level" env:"LOG_LEVEL"`
	Format    LogFormat  `toml:"format" env:"LOG_FORMAT"`
	AddSource bool       `toml:"add_source" env:"LOG_ADD_SOURCE"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t",
		c.Level,
		c.Format,
		c.AddSource,
	)
}

func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.Required, validation.In(LogFormatJSON, LogFormatText)),
	)
}

type ServerConfig struct {
	Addr            string         `toml:"addr" env:"SERVER_ADDR"`
	ShutdownTimeout xtime.Duration `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s\n ShutdownTimeout: %s",
		c.Addr,
		c.ShutdownTimeout,
	)
}

func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
	)
}
