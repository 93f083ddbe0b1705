package provider

import (
	"github.com/l3uddz/streamarr/config"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

/* Const */

const (
	ableflixDefaultURL     = "https://ableflix.xyz"
	ableflixDefaultTmdbKey = "653bb8af90162bd98fc7ee32bcbbfb3d"
)

var (
	ableflixDefaultEndpoints = []string{
		"https://fishstick.hexa.watch/api/hexa1/",
		"https://fishstick.hexa.watch/api/hexa4/",
		"https://fishstick.hexa.watch/api/hexa2/",
		"https://fishstick.hexa.watch/api/hexa3/",
	}
)

/* Struct */

type Ableflix struct {
	*common

	endpoints []string
}

type fishstickSource struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

type fishstickResponse struct {
	Stream []fishstickSource `json:"stream"`
}

/* Initializer */

func NewAbleflix(name string) *Ableflix {
	return &Ableflix{
		common: newCommon(name),
	}
}

/* Interface Implements */

func (p *Ableflix) Init(cfg *config.Provider) error {
	if cfg == nil {
		return errors.New("provider has no configuration data set")
	}

	scheme := newPathScheme(orDefault(cfg.URL, ableflixDefaultURL), pathTemplates{
		MovieTitle:   "/movie/%s",
		ShowTitle:    "/tv/%s",
		MovieWatch:   "/watch/movie/%s",
		EpisodeWatch: "/watch/tv/%s/%s/%s",
	})
	p.init(cfg, ableflixDefaultTmdbKey, scheme)

	p.endpoints = lo.Ternary(len(cfg.Endpoints) > 0, cfg.Endpoints, ableflixDefaultEndpoints)
	return nil
}

func (p *Ableflix) StreamURL(url string) (*Stream, error) {
	return p.resolveStream(url, p.resolve)
}

/* Private */

// resolve walks the mirrors in order, the first hls source wins.
func (p *Ableflix) resolve(t Target) (*Stream, error) {
	path := t.Id
	if t.IsEpisode() {
		path = t.Id + "/" + t.Season + "/" + t.Episode
	}

	for _, endpoint := range p.endpoints {
		endpointUrl := endpoint + path
		log := p.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"target":   t.String(),
		})

		// send request
		var s fishstickResponse
		if err := p.getJSON(endpointUrl, nil, &s); err != nil {
			log.WithError(err).Warn("Fetch error on endpoint")
			continue
		}

		// find hls source
		source, ok := lo.Find(s.Stream, func(src fishstickSource) bool {
			return src.Type == "hls" && src.URL != ""
		})
		if !ok {
			log.Debug("No hls source on endpoint")
			continue
		}

		return &Stream{Stream: source.URL}, nil
	}

	return nil, ErrNoStream
}
