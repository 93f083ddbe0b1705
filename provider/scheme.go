package provider

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/l3uddz/streamarr/tmdb"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// urlScheme builds and parses the site urls a provider hands out.
type urlScheme interface {
	SearchURL(kind tmdb.MediaKind, id string) string
	MovieWatchURL(id string) string
	EpisodeURL(showId string, season int, episode int) string

	ParseTitle(rawUrl string) (Target, error)
	ParseWatch(rawUrl string) (Target, error)
}

/* Path Scheme */

// pathTemplates are fmt templates relative to the site url, every %s being an id segment.
type pathTemplates struct {
	MovieTitle   string
	ShowTitle    string
	ShowSearch   string
	MovieWatch   string
	EpisodeWatch string
}

type pathScheme struct {
	base      string
	templates pathTemplates

	movieTitle   *regexp.Regexp
	showTitle    *regexp.Regexp
	movieWatch   *regexp.Regexp
	episodeWatch *regexp.Regexp
}

func newPathScheme(base string, templates pathTemplates) *pathScheme {
	base = strings.TrimRight(base, "/")
	if templates.ShowSearch == "" {
		templates.ShowSearch = templates.ShowTitle
	}

	return &pathScheme{
		base:         base,
		templates:    templates,
		movieTitle:   templateRegex(base, templates.MovieTitle),
		showTitle:    templateRegex(base, templates.ShowTitle),
		movieWatch:   templateRegex(base, templates.MovieWatch),
		episodeWatch: templateRegex(base, templates.EpisodeWatch),
	}
}

func (s *pathScheme) SearchURL(kind tmdb.MediaKind, id string) string {
	if kind == tmdb.KindMovie {
		return s.base + fmt.Sprintf(s.templates.MovieTitle, id)
	}

	return s.base + fmt.Sprintf(s.templates.ShowSearch, id)
}

func (s *pathScheme) MovieWatchURL(id string) string {
	return s.base + fmt.Sprintf(s.templates.MovieWatch, id)
}

func (s *pathScheme) EpisodeURL(showId string, season int, episode int) string {
	return s.base + fmt.Sprintf(s.templates.EpisodeWatch, showId, strconv.Itoa(season), strconv.Itoa(episode))
}

func (s *pathScheme) ParseTitle(rawUrl string) (Target, error) {
	if m := s.movieTitle.FindStringSubmatch(rawUrl); m != nil {
		return Target{Type: Movie, Id: m[1]}, nil
	}

	if m := s.showTitle.FindStringSubmatch(rawUrl); m != nil {
		return Target{Type: Show, Id: m[1]}, nil
	}

	return Target{}, errors.WithMessagef(ErrInvalidURL, "failed parsing %q", rawUrl)
}

func (s *pathScheme) ParseWatch(rawUrl string) (Target, error) {
	if m := s.movieWatch.FindStringSubmatch(rawUrl); m != nil {
		return Target{Type: Movie, Id: m[1]}, nil
	}

	if m := s.episodeWatch.FindStringSubmatch(rawUrl); m != nil {
		return Target{Type: Show, Id: m[1], Season: m[2], Episode: m[3]}, nil
	}

	return Target{}, errors.WithMessagef(ErrInvalidURL, "failed parsing %q", rawUrl)
}

func templateRegex(base string, template string) *regexp.Regexp {
	pattern := strings.ReplaceAll(regexp.QuoteMeta(base+template), "%s", `([^/?#&]+)`)
	return regexp.MustCompile("^" + pattern)
}

/* Query Scheme */

// queryScheme carries the title in the query string: /detail?type=movie&id=1 and /watch?type=tv&id=1&season=1&episode=2.
type queryScheme struct {
	base *url.URL
}

func newQueryScheme(base string) (*queryScheme, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed parsing base url: %q", base)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", base)
	}

	return &queryScheme{base: u}, nil
}

func (s *queryScheme) SearchURL(kind tmdb.MediaKind, id string) string {
	mediaType := Show
	if kind == tmdb.KindMovie {
		mediaType = Movie
	}

	return s.build("/detail", url.Values{"type": {mediaType.String()}, "id": {id}})
}

func (s *queryScheme) MovieWatchURL(id string) string {
	return s.build("/watch", url.Values{"type": {Movie.String()}, "id": {id}})
}

func (s *queryScheme) EpisodeURL(showId string, season int, episode int) string {
	return s.build("/watch", url.Values{
		"type":    {Show.String()},
		"id":      {showId},
		"season":  {strconv.Itoa(season)},
		"episode": {strconv.Itoa(episode)},
	})
}

func (s *queryScheme) ParseTitle(rawUrl string) (Target, error) {
	return s.parse(rawUrl, false)
}

func (s *queryScheme) ParseWatch(rawUrl string) (Target, error) {
	return s.parse(rawUrl, true)
}

func (s *queryScheme) build(path string, values url.Values) string {
	u := *s.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = values.Encode()
	return u.String()
}

func (s *queryScheme) parse(rawUrl string, watch bool) (Target, error) {
	path := lo.Ternary(watch, "/watch", "/detail")

	u, err := url.Parse(rawUrl)
	if err != nil || !strings.EqualFold(u.Host, s.base.Host) ||
		strings.TrimRight(u.Path, "/") != strings.TrimRight(s.base.Path, "/")+path {
		return Target{}, errors.WithMessagef(ErrInvalidURL, "failed parsing %q", rawUrl)
	}

	q := u.Query()
	t := Target{Id: q.Get("id")}
	if t.Id == "" {
		return Target{}, errors.WithMessagef(ErrInvalidURL, "failed parsing %q", rawUrl)
	}

	switch q.Get("type") {
	case Movie.String():
		t.Type = Movie
		return t, nil
	case Show.String():
		t.Type = Show
	default:
		return Target{}, errors.WithMessagef(ErrInvalidURL, "failed parsing %q", rawUrl)
	}

	if !watch {
		return t, nil
	}

	t.Season, t.Episode = q.Get("season"), q.Get("episode")
	if !t.IsEpisode() {
		return Target{}, errors.WithMessagef(ErrInvalidURL, "missing season or episode: %q", rawUrl)
	}

	return t, nil
}
