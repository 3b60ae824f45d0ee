package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "refsign/internal/pkg/errors"
)

const DefaultBaseURL = "http://localhost:3012/external/referral/ats"

type Config struct {
	Referral ReferralConfig `mapstructure:"referral"`
	Sender   SenderConfig   `mapstructure:"sender"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ReferralConfig struct {
	HMACSecret string `mapstructure:"hmac_secret"`
	BaseURL    string `mapstructure:"base_url"`
}

type SenderConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// Load reads path (if it exists) and overlays environment variables.
// ATS_HMAC_SECRET_KEY is accepted as an alias for REFERRAL_HMAC_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("referral.hmac_secret", "REFERRAL_HMAC_SECRET", "ATS_HMAC_SECRET_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("referral.base_url", DefaultBaseURL)
	v.SetDefault("sender.timeout", 10*time.Second)
	v.SetDefault("sender.user_agent", "refsign")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) Validate() error {
	if c.Referral.HMACSecret == "" {
		return apperrors.InvalidInput("referral.hmac_secret", "hmac secret is not configured (set ATS_HMAC_SECRET_KEY)")
	}
	if c.Referral.BaseURL == "" {
		return apperrors.InvalidInput("referral.base_url", "base url is required")
	}
	return nil
}
