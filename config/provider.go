package config

import (
	"fmt"
	"strings"
)

type Provider struct {
	Type       string
	URL        string
	TmdbApiKey string `mapstructure:"tmdb_api_key"`
	Timeout    int

	// stream resolution
	Endpoints  []string
	Servers    []int
	Services   []string
	SecretKeys []string `mapstructure:"secret_keys"`

	// subtitles
	SubtitlesURL string `mapstructure:"subtitles_url"`
	Subtitles    string
}

func DefaultProviders() map[string]*Provider {
	return map[string]*Provider{
		"ableflix":   {Type: "ableflix"},
		"hexa":       {Type: "hexa"},
		"bingeflex":  {Type: "bingeflex"},
		"rivestream": {Type: "rivestream"},
	}
}

func GetProvider(name string) (*Provider, error) {
	if Config == nil {
		return nil, fmt.Errorf("config has not been initialized")
	}

	for k, v := range Config.Providers {
		if strings.EqualFold(k, name) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("no provider configuration found for: %q", name)
}
