// Package config loads the gateway's process configuration: the tracker
// connection (base URL, account email, API token), tuning knobs and the
// optional project links file. Values come from an optional config.yaml in
// the config directory, overridden by environment variables; the API token
// is read from the OS keyring first when one is stored there.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	// DefaultConfigDirName is the configuration directory under the user's
	// home directory.
	DefaultConfigDirName = ".jiragate"
	// ConfigDirEnvVar overrides the default configuration directory path.
	ConfigDirEnvVar = "JIRAGATE_CONFIG_DIR"
	// DefaultConfigFileName is the optional main configuration file.
	DefaultConfigFileName = "config.yaml"
	// DefaultLinksFileName is the optional project links file.
	DefaultLinksFileName = "projects.yaml"

	keyringService = "jiragate"
	keyringUser    = "jira_api_token"
)

// Config is the gateway's resolved configuration.
type Config struct {
	BaseURL          string        `mapstructure:"base_url"`
	Email            string        `mapstructure:"email"`
	APIToken         string        `mapstructure:"api_token"`
	StoryPointsField string        `mapstructure:"story_points_field"`
	DefaultBoardID   int           `mapstructure:"default_board_id"`
	MaxResults       int           `mapstructure:"max_results"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

// Dir resolves the configuration directory: JIRAGATE_CONFIG_DIR if set,
// otherwise ~/.jiragate. The directory is not created; a missing directory
// just means no optional files.
func Dir() (string, error) {
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDirName), nil
}

// Load resolves the configuration. The three tracker identifiers are
// required; everything else has defaults. Resolution order per value:
// environment variable, then config file, then default. The API token is
// special: a token stored in the OS keyring takes precedence, with the
// environment and config file as fallbacks.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("story_points_field", "customfield_10026")
	v.SetDefault("max_results", 50)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("default_board_id", 0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// The conventional tracker variable names, not JIRAGATE_-prefixed ones.
	_ = v.BindEnv("base_url", "JIRA_BASE_URL")
	_ = v.BindEnv("email", "JIRA_EMAIL")
	_ = v.BindEnv("api_token", "JIRA_API_TOKEN")
	_ = v.BindEnv("story_points_field", "JIRA_STORY_POINTS_FIELD")
	_ = v.BindEnv("default_board_id", "JIRA_DEFAULT_BOARD_ID")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Error().Err(err).Str("dir", dir).Msg("Failed to read config file")
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
			}
			return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
		}
		log.Debug().Str("dir", dir).Msg("No config file found, using environment and defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	// The OS keyring takes precedence: a token stored with 'config
	// set-token' wins over JIRA_API_TOKEN and the config file.
	token, err := tokenFromKeyring()
	if err != nil {
		return nil, err
	}
	if token != "" {
		cfg.APIToken = token
	}

	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.Email == "" {
		return nil, ErrMissingEmail
	}
	if cfg.APIToken == "" {
		return nil, ErrMissingAPIToken
	}

	log.Debug().Str("base_url", cfg.BaseURL).Str("email", cfg.Email).Msg("Configuration loaded")
	return &cfg, nil
}

// tokenFromKeyring reads the API token from the OS keyring. A missing entry
// is not an error here; the caller decides whether the token is required.
func tokenFromKeyring() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil {
		log.Debug().Msg("API token retrieved from OS keyring")
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return "", fmt.Errorf("%w: %w", ErrKeyringGet, err)
}

// StoreAPIToken stores the API token in the OS keyring.
func StoreAPIToken(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("%w: %w", ErrKeyringSet, err)
	}
	log.Info().Str("service", keyringService).Msg("API token stored in OS keyring")
	return nil
}
