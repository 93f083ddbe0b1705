package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/l3uddz/streamarr/config"
	"github.com/l3uddz/streamarr/tmdb"
	"github.com/pkg/errors"
)

var (
	providerDefaultTimeout = 15
	providerUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/124.0.0.0 Safari/537.36"

	constructors = map[string]func(string) Interface{
		"ableflix":   func(name string) Interface { return NewAbleflix(name) },
		"hexa":       func(name string) Interface { return NewHexa(name) },
		"bingeflex":  func(name string) Interface { return NewBingeflex(name) },
		"rivestream": func(name string) Interface { return NewRivestream(name) },
	}
)

/* Public */

// Get returns an uninitialized provider of the given type.
func Get(name string, providerType string) (Interface, error) {
	fn, ok := constructors[strings.ToLower(providerType)]
	if !ok {
		return nil, fmt.Errorf("unsupported provider type provided: %q", providerType)
	}

	return fn(name), nil
}

// Load returns the named provider from the loaded configuration, initialized.
func Load(name string) (Interface, error) {
	cfg, err := config.GetProvider(name)
	if err != nil {
		return nil, err
	}

	p, err := Get(name, cfg.Type)
	if err != nil {
		return nil, err
	}

	if err := p.Init(cfg); err != nil {
		return nil, errors.WithMessagef(err, "failed initializing provider %q", name)
	}

	return p, nil
}

func Types() []string {
	types := make([]string, 0, len(constructors))
	for k := range constructors {
		types = append(types, k)
	}

	sort.Strings(types)
	return types
}

/* Private */

func globalTmdb() config.Tmdb {
	if config.Config == nil {
		return config.Default().Tmdb
	}

	return config.Config.Tmdb
}

func globalCache() config.Cache {
	if config.Config == nil {
		return config.Cache{}
	}

	return config.Config.Cache
}

func newTmdbClient(apiKey string) *tmdb.Client {
	cfg := globalTmdb()

	opts := []tmdb.Option{
		tmdb.WithImageURL(cfg.ImageURL),
		tmdb.WithTimeout(cfg.Timeout),
		tmdb.WithRateLimit(cfg.RateLimit),
	}

	if c := globalCache(); c.Enabled {
		opts = append(opts, tmdb.WithCache(c.MetadataTTL))
	}

	return tmdb.New(cfg.ApiURL, apiKey, opts...)
}
