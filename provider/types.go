package provider

import (
	"fmt"

	"github.com/pkg/errors"
)

type MediaType int

const (
	Show MediaType = iota + 1
	Movie
)

func (m MediaType) String() string {
	switch m {
	case Movie:
		return "movie"
	case Show:
		return "tv"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidURL = errors.New("invalid url format")
	ErrNoStream   = errors.New("no stream found")
)

/* Output Records */

type SearchResult struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Href  string `json:"href"`
}

type MediaDetails struct {
	Description string `json:"description"`
	Aliases     string `json:"aliases"`
	Airdate     string `json:"airdate"`
}

type Episode struct {
	Href   string `json:"href"`
	Number int    `json:"number"`
	Title  string `json:"title"`
}

type Stream struct {
	Stream    string `json:"stream"`
	Subtitles string `json:"subtitles"`

	// set when the subtitle lookup failed, such streams are not cached
	partial bool
}

/* Target */

// Target is the title or episode a provider url points at.
type Target struct {
	Type    MediaType
	Id      string
	Season  string
	Episode string
}

func (t Target) IsEpisode() bool {
	return t.Type == Show && t.Season != "" && t.Episode != ""
}

func (t Target) String() string {
	if t.IsEpisode() {
		return fmt.Sprintf("%s/%s/%s/%s", t.Type, t.Id, t.Season, t.Episode)
	}

	return fmt.Sprintf("%s/%s", t.Type, t.Id)
}
