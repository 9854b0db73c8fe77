package config

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Deployment modes. Production delivers through the authenticated SMTP
// relay; development delivers through a disposable sandbox account.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// Config holds all application configuration. It is loaded once at process
// start and passed by reference; nothing re-reads the environment per request.
type Config struct {
	Mode    string        `mapstructure:"mode"`
	Server  ServerConfig  `mapstructure:"server"`
	Mail    MailConfig    `mapstructure:"mail"`
	SMS     SMSConfig     `mapstructure:"sms"`
	Public  PublicConfig  `mapstructure:"public"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// MailConfig holds the outbound mail transport configuration.
// User is both the authenticated SMTP identity and the operator mailbox
// that receives every contact message and chat notification.
type MailConfig struct {
	User        string        `mapstructure:"user"`
	AppPassword string        `mapstructure:"app_password"`
	SMTPHost    string        `mapstructure:"smtp_host"`
	SMTPPort    int           `mapstructure:"smtp_port"`
	Provider    string        `mapstructure:"provider"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SMSConfig holds the carrier email-gateway relay configuration.
// Each chat message is broadcast to PhoneNumber@gateway for every
// configured gateway domain; carriers deliver independently.
type SMSConfig struct {
	PhoneNumber string   `mapstructure:"phone_number"`
	Gateways    []string `mapstructure:"gateways"`
}

// PublicConfig holds externally advertised values consumed by the site
// front end, not by the relay itself.
type PublicConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"` // stdout (default), file
	FilePath  string `mapstructure:"file_path"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

// Load reads configuration from an optional config.yaml in the given
// directory. Environment variables with prefix NOTIFY_RELAY_ override file
// values; for example NOTIFY_RELAY_MAIL_APP_PASSWORD overrides
// mail.app_password. A missing config file is not an error since every
// deployment target configures the relay through the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetEnvPrefix("NOTIFY_RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeDevelopment)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Keys without a meaningful default still need to be registered so that
	// environment-only values are picked up by Unmarshal.
	v.SetDefault("mail.user", "")
	v.SetDefault("mail.app_password", "")
	v.SetDefault("mail.provider", "")
	v.SetDefault("mail.smtp_host", "smtp.gmail.com")
	v.SetDefault("mail.smtp_port", 465)
	v.SetDefault("mail.timeout", 30*time.Second)

	v.SetDefault("sms.phone_number", "")
	// The three gateways every deployment broadcast to. Other US carriers:
	// messaging.sprintpcs.com, sms.myboostmobile.com,
	// sms.cricketwireless.net, mymetropcs.com.
	v.SetDefault("sms.gateways", []string{"txt.att.net", "tmomail.net", "vtext.com"})

	v.SetDefault("public.base_url", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_files", 5)
}

// Validate checks that required fields are present for the configured mode.
// Production fails closed when the transport credential is absent; there is
// no compiled-in fallback secret.
func (c *Config) Validate() error {
	if c.Mode != ModeProduction && c.Mode != ModeDevelopment {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeProduction, ModeDevelopment, c.Mode)
	}

	if c.Mail.User == "" {
		return errors.New("mail.user is required")
	}
	if _, err := mail.ParseAddress(c.Mail.User); err != nil {
		return fmt.Errorf("mail.user is not a valid address: %w", err)
	}

	if c.Mode == ModeProduction {
		if c.Mail.AppPassword == "" {
			return errors.New("mail.app_password is required in production mode")
		}
		if c.SMS.PhoneNumber == "" {
			return errors.New("sms.phone_number is required in production mode")
		}
	}

	if len(c.SMS.Gateways) == 0 {
		return errors.New("sms.gateways must not be empty")
	}

	return nil
}

// IsProduction reports whether the relay runs against the authenticated
// production transport.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}
