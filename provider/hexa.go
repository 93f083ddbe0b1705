package provider

import (
	"strconv"

	"github.com/imroc/req"
	"github.com/l3uddz/streamarr/config"
	"github.com/l3uddz/streamarr/utils/hls"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

/* Const */

const (
	hexaDefaultURL      = "https://hexa.watch"
	hexaDefaultTmdbKey  = "71fdb081b0133511ac14ac0cc10fd307"
	hexaDefaultEndpoint = "https://demo.autoembed.cc/api/server"
)

/* Struct */

type Hexa struct {
	*common

	endpoint  string
	servers   []int
	subtitles *subtitleSelector
}

type autoembedSource struct {
	Type string `json:"type"`
	Link string `json:"link"`
	Lang string `json:"lang"`
}

type autoembedTrack struct {
	Lang string `json:"lang"`
	URL  string `json:"url"`
}

type autoembedResponse struct {
	URL    []autoembedSource `json:"url"`
	Tracks []autoembedTrack  `json:"tracks"`
}

/* Initializer */

func NewHexa(name string) *Hexa {
	return &Hexa{
		common: newCommon(name),
	}
}

/* Interface Implements */

func (p *Hexa) Init(cfg *config.Provider) error {
	if cfg == nil {
		return errors.New("provider has no configuration data set")
	}

	scheme := newPathScheme(orDefault(cfg.URL, hexaDefaultURL), pathTemplates{
		MovieTitle:   "/watch/movie/iframe/%s",
		ShowTitle:    "/watch/tv/iframe/%s",
		ShowSearch:   "/watch/tv/iframe/%s/1/1",
		MovieWatch:   "/watch/movie/iframe/%s",
		EpisodeWatch: "/watch/tv/iframe/%s/%s/%s",
	})
	p.init(cfg, hexaDefaultTmdbKey, scheme)

	// stream endpoint
	p.endpoint = hexaDefaultEndpoint
	if len(cfg.Endpoints) > 0 {
		p.endpoint = cfg.Endpoints[0]
	}
	p.servers = lo.Ternary(len(cfg.Servers) > 0, cfg.Servers, []int{1})

	// subtitles
	selector, err := newSubtitleSelector(cfg.Subtitles)
	if err != nil {
		return err
	}
	p.subtitles = selector

	return nil
}

func (p *Hexa) StreamURL(url string) (*Stream, error) {
	return p.resolveStream(url, p.resolve)
}

/* Private */

func (p *Hexa) resolve(t Target) (*Stream, error) {
	for _, server := range p.servers {
		log := p.log.WithFields(logrus.Fields{
			"server": server,
			"target": t.String(),
		})

		s, err := p.resolveServer(t, server)
		if err != nil {
			log.WithError(err).Warn("Fetch error on server")
			continue
		}

		return s, nil
	}

	return nil, ErrNoStream
}

func (p *Hexa) resolveServer(t Target, server int) (*Stream, error) {
	// set request params
	params := req.Param{
		"id": t.Id,
		"sr": strconv.Itoa(server),
	}

	if t.IsEpisode() {
		params["ep"] = t.Episode
		params["ss"] = t.Season
	}

	// send request
	var s autoembedResponse
	if err := p.getJSON(p.endpoint, params, &s); err != nil {
		return nil, err
	}

	// find playlist
	playlist, ok := lo.Find(s.URL, func(src autoembedSource) bool {
		return src.Type == "playlist" && src.Link != ""
	})
	if !ok {
		return nil, errors.New("no playlist source")
	}

	// pick the highest resolution variant
	body, err := p.getText(playlist.Link)
	if err != nil {
		return nil, errors.WithMessage(err, "failed retrieving master playlist")
	}

	variant, ok := hls.Highest(hls.ParseVariants(body))
	if !ok {
		return nil, errors.New("no variants in master playlist")
	}

	// find subtitles
	subtitles := p.subtitles.First(lo.Map(s.Tracks, func(track autoembedTrack, _ int) SubtitleTrack {
		return SubtitleTrack{Label: track.Lang, URL: track.URL}
	}))

	return &Stream{
		Stream:    variant.URL,
		Subtitles: subtitles,
	}, nil
}
