package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RECIPES_DB_PATH.
const EnvPrefix = "RECIPES"

// Config holds the service configuration assembled from configs/config.yml and env.
type Config struct {
	Port string `mapstructure:"port"`
	Log  struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`
	Auth   Auth   `mapstructure:"auth"`
	Server Server `mapstructure:"server"`
}

type Auth struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	Admin      struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`
}

type Server struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

var errMissingSigningKey = errors.New("auth.signing_key must be set")

// Load reads configuration from the given directories (first match wins) and
// the environment. A missing config file is not an error.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.admin.username", "")
	v.SetDefault("auth.admin.password", "")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errMissingSigningKey
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

// HasAdmin reports whether a bootstrap user is configured.
func (a Auth) HasAdmin() bool {
	return strings.TrimSpace(a.Admin.Username) != "" && a.Admin.Password != ""
}
