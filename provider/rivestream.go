package provider

import (
	"github.com/imroc/req"
	"github.com/l3uddz/streamarr/config"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

/* Const */

const (
	rivestreamDefaultURL     = "https://rivestream.org"
	rivestreamDefaultTmdbKey = "653bb8af90162bd98fc7ee32bcbbfb3d"
	rivestreamBackendPath    = "/api/backendfetch"
)

var (
	rivestreamDefaultServices   = []string{"guru"}
	rivestreamDefaultSecretKeys = []string{
		"I", "3LZu", "M2V3", "4EXX", "s4", "yRy", "oqMz", "ysE", "RT", "iSI", "zlc", "H", "YNp", "5vR6", "h9S",
		"R", "jo", "F", "h2", "W8", "i", "sz09", "Xom", "gpU", "q", "6Qvg", "Cu", "5Zaz", "VK", "od", "FGY4",
		"eu", "D5Q", "smH", "11eq", "QrXs", "3", "L3", "YhlP", "c", "Z", "YT", "bnsy", "5", "fcL", "L22G", "r8",
		"J", "4", "gnK",
	}
	rivestreamPreferredQualities = []string{"HLS 1", "HLS 7", "HLS 10", "HLS 13", "HLS 15", "HLS 4"}
)

/* Struct */

type Rivestream struct {
	*common

	endpoint     string
	services     []string
	secretKeys   []string
	subtitlesUrl string
	subtitles    *subtitleSelector
}

type rivestreamSource struct {
	Format  string `json:"format"`
	Quality string `json:"quality"`
	URL     string `json:"url"`
	Source  string `json:"source"`
}

type rivestreamResponse struct {
	Error string `json:"error"`
	Data  *struct {
		Sources []rivestreamSource `json:"sources"`
	} `json:"data"`
}

/* Initializer */

func NewRivestream(name string) *Rivestream {
	return &Rivestream{
		common: newCommon(name),
	}
}

/* Interface Implements */

func (p *Rivestream) Init(cfg *config.Provider) error {
	if cfg == nil {
		return errors.New("provider has no configuration data set")
	}

	base := orDefault(cfg.URL, rivestreamDefaultURL)
	scheme, err := newQueryScheme(base)
	if err != nil {
		return err
	}
	p.init(cfg, rivestreamDefaultTmdbKey, scheme)

	p.endpoint = scheme.build(rivestreamBackendPath, nil)
	if len(cfg.Endpoints) > 0 {
		p.endpoint = cfg.Endpoints[0]
	}
	p.services = lo.Ternary(len(cfg.Services) > 0, cfg.Services, rivestreamDefaultServices)
	p.secretKeys = lo.Ternary(len(cfg.SecretKeys) > 0, cfg.SecretKeys, rivestreamDefaultSecretKeys)
	p.subtitlesUrl = orDefault(cfg.SubtitlesURL, defaultWyzieURL)

	selector, err := newSubtitleSelector(cfg.Subtitles)
	if err != nil {
		return err
	}
	p.subtitles = selector

	return nil
}

func (p *Rivestream) StreamURL(url string) (*Stream, error) {
	return p.resolveStream(url, p.resolve)
}

/* Private */

// resolve tries every service with every secret key until one returns an hls source.
func (p *Rivestream) resolve(t Target) (*Stream, error) {
	for _, service := range p.services {
		for _, secretKey := range p.secretKeys {
			log := p.log.WithFields(logrus.Fields{
				"service": service,
				"target":  t.String(),
			})

			source, err := p.resolveService(t, service, secretKey)
			if err != nil {
				log.WithError(err).Debug("Fetch error on service")
				continue
			}

			subtitles, ok := p.wyzieSubtitles(p.subtitlesUrl, p.subtitles, t)
			return &Stream{
				Stream:    source.URL,
				Subtitles: subtitles,
				partial:   !ok,
			}, nil
		}
	}

	return nil, ErrNoStream
}

func (p *Rivestream) resolveService(t Target, service string, secretKey string) (*rivestreamSource, error) {
	// set request params
	params := req.Param{
		"requestID": "movieVideoProvider",
		"id":        t.Id,
		"service":   service,
		"secretKey": secretKey,
		"proxyMode": "noProxy",
	}

	if t.IsEpisode() {
		params["requestID"] = "tvVideoProvider"
		params["season"] = t.Season
		params["episode"] = t.Episode
	}

	// send request
	var s rivestreamResponse
	if err := p.getJSON(p.endpoint, params, &s); err != nil {
		return nil, err
	}

	if s.Error == "Internal Server Error" {
		return nil, errors.New(s.Error)
	}

	if s.Data == nil {
		return nil, errors.New("no data in response")
	}

	// preferred qualities first, then any hls source
	hlsSources := lo.Filter(s.Data.Sources, func(src rivestreamSource, _ int) bool {
		return src.Format == "hls" && src.URL != ""
	})

	for _, quality := range rivestreamPreferredQualities {
		if source, ok := lo.Find(hlsSources, func(src rivestreamSource) bool {
			return src.Quality == quality
		}); ok {
			return &source, nil
		}
	}

	if len(hlsSources) > 0 {
		return &hlsSources[0], nil
	}

	return nil, errors.New("no hls source")
}
