package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/akyairhashvil/sprintboard/internal/util"
)

// Config is the full application configuration.
type Config struct {
	// Gateway selects the remote gateway implementation: memory or remote.
	Gateway    string `mapstructure:"gateway"`
	RemoteURL  string `mapstructure:"remote_url"`
	ListenAddr string `mapstructure:"listen_addr"`
	DBPath     string `mapstructure:"db_path"`
	ActorID    string `mapstructure:"actor_id"`
	ReportsDir string `mapstructure:"reports_dir"`
	Seed       bool   `mapstructure:"seed"`

	Log   LogConfig   `mapstructure:"log"`
	Retry RetryConfig `mapstructure:"retry"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RetryConfig configures the remote call retry policy.
type RetryConfig struct {
	MaxRetries   int           `mapstructure:"max_retries"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Gateway:    GatewayMemory,
		RemoteURL:  DefaultRemoteURL,
		ListenAddr: DefaultListenAddr,
		DBPath:     filepath.Join(util.DataDir(AppName), DBFileName),
		ActorID:    DefaultActorID,
		ReportsDir: util.ReportsDir(AppName),
		Seed:       true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Retry: RetryConfig{
			MaxRetries:   MaxRetries,
			InitialDelay: InitialDelay,
			MaxDelay:     MaxDelay,
		},
	}
}

// Load reads .env (if present), then the YAML file at path (if non-empty and
// present), then SPRINTBOARD_* environment variables, over the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the rest of the program cannot run with.
func (c *Config) Validate() error {
	switch c.Gateway {
	case GatewayMemory, GatewayRemote:
	default:
		return fmt.Errorf("unknown gateway %q (want %s or %s)", c.Gateway, GatewayMemory, GatewayRemote)
	}
	if c.Gateway == GatewayRemote && strings.TrimSpace(c.RemoteURL) == "" {
		return fmt.Errorf("remote_url is required for the remote gateway")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("gateway", cfg.Gateway)
	v.SetDefault("remote_url", cfg.RemoteURL)
	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("actor_id", cfg.ActorID)
	v.SetDefault("reports_dir", cfg.ReportsDir)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("retry.max_retries", cfg.Retry.MaxRetries)
	v.SetDefault("retry.initial_delay", cfg.Retry.InitialDelay)
	v.SetDefault("retry.max_delay", cfg.Retry.MaxDelay)
}
