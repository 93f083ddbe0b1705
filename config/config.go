package config

import (
	"os"
	"strings"
	"time"

	"github.com/l3uddz/streamarr/logger"
	stringutils "github.com/l3uddz/streamarr/utils/strings"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Configuration struct {
	Tmdb      Tmdb
	Cache     Cache
	Providers map[string]*Provider
}

type Tmdb struct {
	ApiURL    string `mapstructure:"api_url"`
	ApiKey    string `mapstructure:"api_key"`
	ImageURL  string `mapstructure:"image_url"`
	RateLimit int    `mapstructure:"rate_limit"`
	Timeout   int
}

type Cache struct {
	Enabled     bool
	MetadataTTL time.Duration `mapstructure:"metadata_ttl"`
	StreamTTL   time.Duration `mapstructure:"stream_ttl"`
}

var (
	Config *Configuration

	cfgPath = ""
	log     = logger.GetLogger("cfg")
)

/* Public */

func Init(configFilePath string) error {
	// set package variables
	cfgPath = configFilePath

	// setup viper
	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetEnvPrefix("STREAMARR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// read config
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return errors.WithMessagef(err, "failed reading config file: %q", configFilePath)
		}

		log.WithField("path", configFilePath).Warn("Config file not found, using defaults")
	}

	// decode config
	cfg := new(Configuration)
	if err := v.Unmarshal(cfg); err != nil {
		return errors.WithMessage(err, "failed decoding config")
	}

	// set default providers
	if len(cfg.Providers) == 0 {
		cfg.Providers = DefaultProviders()
	}

	// validate providers
	for name, p := range cfg.Providers {
		if p == nil {
			return errors.Errorf("provider has no configuration: %q", name)
		}

		if p.Type == "" {
			// the name doubles as the type for the built-in providers
			p.Type = name
		}
	}

	Config = cfg
	return nil
}

func ShowUsing() {
	log.Infof("Using %s = %q", stringutils.StringLeftJust("CONFIG", " ", 10), cfgPath)
}

// Default returns a configuration populated only by defaults.
func Default() *Configuration {
	v := viper.New()
	setDefaults(v)

	cfg := new(Configuration)
	_ = v.Unmarshal(cfg)
	cfg.Providers = DefaultProviders()
	return cfg
}

/* Private */

func setDefaults(v *viper.Viper) {
	// every key needs a default for env overrides to reach Unmarshal
	v.SetDefault("tmdb.api_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.image_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.rate_limit", 20)
	v.SetDefault("tmdb.timeout", 15)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.metadata_ttl", "24h")
	v.SetDefault("cache.stream_ttl", "15m")
}
