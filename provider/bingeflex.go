package provider

import (
	"github.com/imroc/req"
	"github.com/l3uddz/streamarr/config"
	"github.com/l3uddz/streamarr/utils/obfuscate"
	"github.com/l3uddz/streamarr/utils/web"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

/* Const */

const (
	bingeflexDefaultURL           = "https://bingeflex.vercel.app"
	bingeflexDefaultTmdbKey       = "ad301b7cc82ffe19273e55e4d4206885"
	bingeflexDefaultSearchTmdbKey = "68e094699525b18a70bab2f86b1fa706"
	bingeflexDefaultEndpoint      = "https://api.vid3c.site"

	// returned in place of a real stream when vid3c has nothing
	vid3cPlaceholderURL = "https://vid3c.site/stream/file2/video.mp4"
)

/* Struct */

type Bingeflex struct {
	*common

	endpoint     string
	subtitlesUrl string
	subtitles    *subtitleSelector
}

type vid3cSource struct {
	URL      string `json:"url"`
	Language string `json:"language"`
}

type vid3cResponse struct {
	Source1 *vid3cSource `json:"source1"`
	Source2 *vid3cSource `json:"source2"`
	Source3 *vid3cSource `json:"source3"`
	Source4 *vid3cSource `json:"source4"`
	Source5 *vid3cSource `json:"source5"`
}

// prioritized returns the sources in the order they are tried, source3 is never used.
func (r vid3cResponse) prioritized() []*vid3cSource {
	return []*vid3cSource{r.Source4, r.Source1, r.Source2, r.Source5}
}

func (s *vid3cSource) usable() bool {
	return s != nil && s.URL != "" && s.URL != vid3cPlaceholderURL && s.Language == "English"
}

/* Initializer */

func NewBingeflex(name string) *Bingeflex {
	return &Bingeflex{
		common: newCommon(name),
	}
}

/* Interface Implements */

func (p *Bingeflex) Init(cfg *config.Provider) error {
	if cfg == nil {
		return errors.New("provider has no configuration data set")
	}

	scheme := newPathScheme(orDefault(cfg.URL, bingeflexDefaultURL), pathTemplates{
		MovieTitle:   "/movie/%s",
		ShowTitle:    "/tv/%s",
		MovieWatch:   "/movie/%s",
		EpisodeWatch: "/tv/%s?season=%s&episode=%s",
	})
	p.init(cfg, bingeflexDefaultTmdbKey, scheme)
	p.useSearchKey(bingeflexDefaultSearchTmdbKey)

	p.endpoint = bingeflexDefaultEndpoint
	if len(cfg.Endpoints) > 0 {
		p.endpoint = cfg.Endpoints[0]
	}
	p.subtitlesUrl = orDefault(cfg.SubtitlesURL, defaultWyzieURL)

	selector, err := newSubtitleSelector(cfg.Subtitles)
	if err != nil {
		return err
	}
	p.subtitles = selector

	return nil
}

func (p *Bingeflex) StreamURL(url string) (*Stream, error) {
	return p.resolveStream(url, p.resolve)
}

/* Private */

func (p *Bingeflex) resolve(t Target) (*Stream, error) {
	// build obfuscated request
	var endpoint, id string
	var err error

	if t.IsEpisode() {
		endpoint = web.JoinURL(p.endpoint, "alltvse2e.php")
		id, err = obfuscate.EncodeEpisodeID(t.Id, t.Season, t.Episode)
	} else {
		endpoint = web.JoinURL(p.endpoint, "allmvse2e.php")
		id, err = obfuscate.EncodeMovieID(t.Id)
	}
	if err != nil {
		return nil, errors.WithMessage(err, "failed encoding request id")
	}

	p.log.WithFields(logrus.Fields{
		"target": t.String(),
		"id":     id,
	}).Trace("Encoded request id")

	// send request
	var s vid3cResponse
	if err := p.getJSON(endpoint, req.Param{"id": id}, &s); err != nil {
		return nil, err
	}

	// first usable source
	source, ok := lo.Find(s.prioritized(), func(src *vid3cSource) bool {
		return src.usable()
	})
	if !ok {
		return nil, ErrNoStream
	}

	subtitles, ok := p.wyzieSubtitles(p.subtitlesUrl, p.subtitles, t)
	return &Stream{
		Stream:    source.URL,
		Subtitles: subtitles,
		partial:   !ok,
	}, nil
}
