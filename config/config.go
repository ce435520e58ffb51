package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. Mail and redis are optional: leaving
// their keys empty disables the feature instead of failing startup.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// Storage
	DBPath           string `mapstructure:"DB_PATH"`
	DBTimeoutSeconds int    `mapstructure:"DB_TIMEOUT_SECONDS"`

	// Login gate
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Weekly report mail
	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         int    `mapstructure:"SMTP_PORT"`
	SMTPUser         string `mapstructure:"SMTP_USER"`
	SMTPPassword     string `mapstructure:"SMTP_PASSWORD"`
	ReportRecipients string `mapstructure:"REPORT_RECIPIENTS"`
	ReportCron       string `mapstructure:"REPORT_CRON"`
	ReportTimezone   string `mapstructure:"REPORT_TIMEZONE"`

	// Optional list cache
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

// LoadConfig reads settings from a .env file in path and from the environment.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DB_PATH", "./taskflow.db")
	viper.SetDefault("DB_TIMEOUT_SECONDS", 5)
	viper.SetDefault("SMTP_PORT", 587)
	// Sunday 08:00 local time
	viper.SetDefault("REPORT_CRON", "0 8 * * 0")
	viper.SetDefault("REPORT_TIMEZONE", "Asia/Jerusalem")
	viper.SetDefault("REDIS_DB", 0)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// The .env file is optional; environment variables still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}

// DBTimeout returns the bounded per-statement storage timeout.
func (c *Config) DBTimeout() time.Duration {
	if c.DBTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.DBTimeoutSeconds) * time.Second
}

// MailEnabled reports whether the weekly report mail can be sent at all.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && len(c.Recipients()) > 0
}

// Recipients splits REPORT_RECIPIENTS into a clean address list.
func (c *Config) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(c.ReportRecipients, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// GetRedisConnString returns the redis address, empty when redis is not configured.
func (c *Config) GetRedisConnString() string {
	if c.RedisHost == "" {
		return ""
	}
	port := c.RedisPort
	if port == "" {
		port = "6379"
	}
	return c.RedisHost + ":" + port
}
