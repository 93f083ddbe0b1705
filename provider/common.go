package provider

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/imroc/req"
	"github.com/l3uddz/streamarr/config"
	"github.com/l3uddz/streamarr/database"
	"github.com/l3uddz/streamarr/logger"
	"github.com/l3uddz/streamarr/tmdb"
	"github.com/l3uddz/streamarr/utils/web"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

/* Struct */

// common holds the tmdb glue shared by every provider.
type common struct {
	log  *logrus.Entry
	name string
	cfg  *config.Provider

	tmdb       *tmdb.Client
	searchTmdb *tmdb.Client
	scheme     urlScheme

	timeout    int
	streamTTL  time.Duration
	reqHeaders req.Header
}

/* Initializer */

func newCommon(name string) *common {
	return &common{
		log:     logger.GetLogger(name),
		name:    name,
		timeout: providerDefaultTimeout,
		reqHeaders: req.Header{
			"User-Agent": providerUserAgent,
		},
	}
}

func (p *common) init(cfg *config.Provider, defaultTmdbKey string, scheme urlScheme) {
	p.cfg = cfg
	p.scheme = scheme

	if cfg.Timeout > 0 {
		p.timeout = cfg.Timeout
	}

	// tmdb client, provider key wins over the global key
	p.tmdb = newTmdbClient(tmdbKey(cfg, defaultTmdbKey))
	p.searchTmdb = p.tmdb

	if c := globalCache(); c.Enabled {
		p.streamTTL = c.StreamTTL
	}
}

/* Interface Implements */

func (p *common) Name() string {
	return p.name
}

func (p *common) Log() *logrus.Entry {
	return p.log
}

func (p *common) Search(keyword string) ([]SearchResult, error) {
	// search tmdb
	items, err := p.searchTmdb.SearchMulti(keyword)
	if err != nil {
		return nil, err
	}

	// transform results
	results := lo.Map(items, func(item tmdb.Result, _ int) SearchResult {
		return SearchResult{
			Title: item.DisplayTitle(),
			Image: p.searchTmdb.ImageURL(item.PosterPath),
			Href:  p.scheme.SearchURL(item.Kind(), strconv.Itoa(item.Id)),
		}
	})

	p.log.WithFields(logrus.Fields{
		"keyword": keyword,
		"results": len(results),
	}).Debug("Searched")
	return results, nil
}

func (p *common) Details(url string) ([]MediaDetails, error) {
	// parse url
	t, err := p.scheme.ParseTitle(url)
	if err != nil {
		return nil, err
	}

	switch t.Type {
	case Movie:
		movie, err := p.tmdb.Movie(t.Id)
		if err != nil {
			return nil, err
		}

		return []MediaDetails{{
			Description: orDefault(movie.Overview, "No description available"),
			Aliases:     durationAlias(lo.Ternary(movie.Runtime > 0, []int{movie.Runtime}, nil)),
			Airdate:     "Released: " + orDefault(movie.ReleaseDate, "Unknown"),
		}}, nil
	default:
		show, err := p.tmdb.Show(t.Id)
		if err != nil {
			return nil, err
		}

		return []MediaDetails{{
			Description: orDefault(show.Overview, "No description available"),
			Aliases:     durationAlias(show.EpisodeRunTime),
			Airdate:     "Aired: " + orDefault(show.FirstAirDate, "Unknown"),
		}}, nil
	}
}

func (p *common) Episodes(url string) ([]Episode, error) {
	// parse url
	t, err := p.scheme.ParseTitle(url)
	if err != nil {
		return nil, err
	}

	if t.Type == Movie {
		return []Episode{{
			Href:   p.scheme.MovieWatchURL(t.Id),
			Number: 1,
			Title:  "Full Movie",
		}}, nil
	}

	// retrieve seasons
	show, err := p.tmdb.Show(t.Id)
	if err != nil {
		return nil, err
	}

	episodes := make([]Episode, 0)
	for _, s := range show.Seasons {
		// skip specials
		if s.SeasonNumber == 0 {
			continue
		}

		season, err := p.tmdb.Season(t.Id, s.SeasonNumber)
		if err != nil {
			return nil, err
		}

		for _, e := range season.Episodes {
			episodes = append(episodes, Episode{
				Href:   p.scheme.EpisodeURL(t.Id, s.SeasonNumber, e.EpisodeNumber),
				Number: e.EpisodeNumber,
				Title:  e.Name,
			})
		}
	}

	p.log.WithFields(logrus.Fields{
		"show":     t.Id,
		"episodes": len(episodes),
	}).Debug("Retrieved episodes")
	return episodes, nil
}

/* Private */

// useSearchKey searches tmdb with a different default key than the metadata lookups.
func (p *common) useSearchKey(defaultSearchKey string) {
	p.searchTmdb = newTmdbClient(tmdbKey(p.cfg, defaultSearchKey))
}

// resolveStream parses a watch url and resolves it through fn, consulting the stream cache first.
func (p *common) resolveStream(url string, fn func(Target) (*Stream, error)) (*Stream, error) {
	// parse url
	t, err := p.scheme.ParseWatch(url)
	if err != nil {
		return nil, err
	}

	// check cache
	var cached Stream
	if p.streamTTL > 0 && database.GetStreamItem(p.name, t.String(), &cached) {
		p.log.WithField("target", t.String()).Debug("Using cached stream")
		return &cached, nil
	}

	// resolve
	s, err := fn(t)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed resolving stream for %s", t)
	}

	p.log.WithFields(logrus.Fields{
		"target":    t.String(),
		"subtitles": s.Subtitles != "",
	}).Info("Resolved stream")

	// store in cache, unless part of the stream failed to resolve
	if s.partial {
		p.log.WithField("target", t.String()).Debug("Not caching partially resolved stream")
		return s, nil
	}

	if err := database.AddStreamItem(p.name, t.String(), s, p.streamTTL); err != nil {
		p.log.WithError(err).Warn("Failed caching stream")
	}

	return s, nil
}

func (p *common) getJSON(requestUrl string, params req.Param, out interface{}) error {
	// send request
	resp, err := web.GetResponse(web.GET, requestUrl, p.timeout, p.reqHeaders, params)
	if err != nil {
		return errors.WithMessage(err, "failed retrieving api response")
	}
	defer resp.Response().Body.Close()

	// validate response
	if resp.Response().StatusCode != http.StatusOK {
		return fmt.Errorf("failed retrieving valid api response: %s", resp.Response().Status)
	}

	// decode response
	if err := resp.ToJSON(out); err != nil {
		return errors.WithMessage(err, "failed decoding api response")
	}

	return nil
}

func (p *common) getText(requestUrl string) (string, error) {
	// send request
	resp, err := web.GetResponse(web.GET, requestUrl, p.timeout, p.reqHeaders)
	if err != nil {
		return "", errors.WithMessage(err, "failed retrieving response")
	}
	defer resp.Response().Body.Close()

	// validate response
	if resp.Response().StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed retrieving valid response: %s", resp.Response().Status)
	}

	return resp.ToString()
}

/* Helpers */

func tmdbKey(cfg *config.Provider, fallback string) string {
	key, _ := lo.Coalesce(cfg.TmdbApiKey, globalTmdb().ApiKey, fallback)
	return key
}

func orDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func durationAlias(minutes []int) string {
	if len(minutes) == 0 {
		return "Duration: Unknown"
	}

	parts := lo.Map(minutes, func(m int, _ int) string {
		return strconv.Itoa(m)
	})
	return fmt.Sprintf("Duration: %s minutes", strings.Join(parts, ", "))
}
