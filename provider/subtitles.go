package provider

import (
	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/imroc/req"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	defaultSubtitlesExpr = `Label startsWith "English"`
	defaultWyzieURL      = "https://sub.wyzie.ru/search"
)

/* Selector */

// SubtitleTrack is the environment a subtitle expression is evaluated against.
type SubtitleTrack struct {
	Label string
	URL   string
}

type subtitleSelector struct {
	code    string
	program *vm.Program
}

func newSubtitleSelector(code string) (*subtitleSelector, error) {
	if code == "" {
		code = defaultSubtitlesExpr
	}

	program, err := expr.Compile(code, expr.Env(SubtitleTrack{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "failed compiling subtitles expression: %q", code)
	}

	return &subtitleSelector{
		code:    code,
		program: program,
	}, nil
}

func (s *subtitleSelector) Match(track SubtitleTrack) bool {
	out, err := expr.Run(s.program, track)
	if err != nil {
		return false
	}

	matched, ok := out.(bool)
	return ok && matched
}

// First returns the url of the first matching track, or an empty string.
func (s *subtitleSelector) First(tracks []SubtitleTrack) string {
	track, ok := lo.Find(tracks, func(t SubtitleTrack) bool {
		return t.URL != "" && s.Match(t)
	})
	if !ok {
		return ""
	}

	return track.URL
}

/* Wyzie */

type wyzieSubtitle struct {
	Id       string `json:"id"`
	URL      string `json:"url"`
	Display  string `json:"display"`
	Language string `json:"language"`
	Format   string `json:"format"`
}

// wyzieSubtitles looks up subtitles for a target, failures only cost the subtitle track and are reported by ok.
func (p *common) wyzieSubtitles(searchUrl string, selector *subtitleSelector, t Target) (subtitles string, ok bool) {
	params := req.Param{
		"id": t.Id,
	}

	if t.IsEpisode() {
		params["season"] = t.Season
		params["episode"] = t.Episode
	}

	var s []wyzieSubtitle
	if err := p.getJSON(searchUrl, params, &s); err != nil {
		p.log.WithError(err).WithField("target", t.String()).Warn("Failed retrieving subtitles")
		return "", false
	}

	return selector.First(lo.Map(s, func(sub wyzieSubtitle, _ int) SubtitleTrack {
		return SubtitleTrack{Label: sub.Display, URL: sub.URL}
	})), true
}
