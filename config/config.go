package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	TMDB    TMDB    `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb"`
	Library Library `json:"library" yaml:"library" mapstructure:"library"`
	Renamer Renamer `json:"renamer" yaml:"renamer" mapstructure:"renamer"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
}

type TMDB struct {
	Scheme      string        `json:"scheme" yaml:"scheme" mapstructure:"scheme"`
	Host        string        `json:"host" yaml:"host" mapstructure:"host"`
	APIKey      string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey" validate:"required"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries"`
}

type Library struct {
	TVDir string `json:"tv" yaml:"tv" mapstructure:"tv"`
}

// Renamer configures the rename pipeline: lookup retries and undo history.
type Renamer struct {
	MaxRetries   int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries"`
	RetryPause   time.Duration `json:"retryPause" yaml:"retryPause" mapstructure:"retryPause"`
	HistoryLimit int           `json:"historyLimit" yaml:"historyLimit" mapstructure:"historyLimit"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the fields commands cannot run without.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
