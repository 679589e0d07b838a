package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

// Credentials come from an "access_token" environment variable, then an
// "access-token" file in the working directory.
const (
	envAccessToken         = "access_token"
	defaultAccessTokenFile = "access-token"
)

const (
	defaultAPIBaseURL         = "https://api.github.com"
	defaultRequestTimeout     = 30 * time.Second
	defaultMaxResponseSize    = 32 << 20
	defaultMinRequestInterval = time.Duration(0)
	defaultLogLevel           = "info"
)

var ErrMissingAccessToken = errors.New(`github API token must be specified either in "access_token" environment variable or in "./access-token" file`)

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func (c *Config) GetAPIBaseURL() string {
	baseURL := c.config.GetString("API_BASE_URL")
	if len(baseURL) == 0 {
		baseURL = c.config.GetString("github.api_base_url")
	}
	if len(baseURL) == 0 {
		baseURL = defaultAPIBaseURL
	}

	return strings.TrimRight(baseURL, "/")
}

func (c *Config) GetRequestTimeout() time.Duration {
	timeout := c.getDuration("REQUEST_TIMEOUT", "http.timeout")
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return timeout
}

// GetMaxResponseSize caps how many bytes of a response body are read.
// Values accept viper size suffixes such as "32mb".
func (c *Config) GetMaxResponseSize() int64 {
	size := c.config.GetSizeInBytes("MAX_RESPONSE_SIZE")
	if size == 0 {
		size = c.config.GetSizeInBytes("http.max_response_size")
	}
	if size == 0 {
		return defaultMaxResponseSize
	}

	return int64(size)
}

// GetMinRequestInterval is the minimum gap between two search requests. Zero disables pacing.
func (c *Config) GetMinRequestInterval() time.Duration {
	interval := c.getDuration("MIN_REQUEST_INTERVAL", "search.min_request_interval")
	if interval < 0 {
		interval = defaultMinRequestInterval
	}

	return interval
}

func (c *Config) GetLogLevel() string {
	level := c.config.GetString("LOG_LEVEL")
	if len(level) == 0 {
		level = c.config.GetString("log.level")
	}
	if len(level) == 0 {
		level = defaultLogLevel
	}

	return level
}

func (c *Config) GetAccessTokenFile() string {
	tokenFile := c.config.GetString("ACCESS_TOKEN_FILE")
	if len(tokenFile) == 0 {
		tokenFile = c.config.GetString("github.access_token_file")
	}
	if len(tokenFile) == 0 {
		tokenFile = defaultAccessTokenFile
	}

	return tokenFile
}

// LoadAccessToken resolves the API token once, before any request is made.
// The environment variable wins over the token file.
func (c *Config) LoadAccessToken() (string, error) {
	if token, ok := os.LookupEnv(envAccessToken); ok && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), nil
	}

	tokenFile := c.GetAccessTokenFile()
	content, err := os.ReadFile(tokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrMissingAccessToken
		}
		return "", fmt.Errorf("failed to read access token file %s: %w", tokenFile, err)
	}

	token := strings.TrimSpace(string(content))
	if len(token) == 0 {
		return "", ErrMissingAccessToken
	}

	return token, nil
}

func (c *Config) getDuration(envKey string, fileKey string) time.Duration {
	if len(c.config.GetString(envKey)) > 0 {
		return c.config.GetDuration(envKey)
	}

	return c.config.GetDuration(fileKey)
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
