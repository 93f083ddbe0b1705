package tmdb

import "github.com/samber/lo"

type MediaKind int

const (
	KindUnknown MediaKind = iota
	KindMovie
	KindShow
)

type Result struct {
	Id            int    `json:"id"`
	MediaType     string `json:"media_type"`
	Title         string `json:"title"`
	Name          string `json:"name"`
	OriginalTitle string `json:"original_title"`
	OriginalName  string `json:"original_name"`
	PosterPath    string `json:"poster_path"`
}

type SearchResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

type Movie struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	Runtime     int    `json:"runtime"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

type SeasonSummary struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
}

type Show struct {
	Id             int             `json:"id"`
	Name           string          `json:"name"`
	Overview       string          `json:"overview"`
	EpisodeRunTime []int           `json:"episode_run_time"`
	FirstAirDate   string          `json:"first_air_date"`
	PosterPath     string          `json:"poster_path"`
	Seasons        []SeasonSummary `json:"seasons"`
}

type Episode struct {
	Id            int    `json:"id"`
	Name          string `json:"name"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	AirDate       string `json:"air_date"`
}

type Season struct {
	Id           int       `json:"id"`
	Name         string    `json:"name"`
	SeasonNumber int       `json:"season_number"`
	Episodes     []Episode `json:"episodes"`
}

/* Result helpers */

// Kind classifies a multi search result. A title implies a movie and a name implies a show,
// even when media_type is missing.
func (r Result) Kind() MediaKind {
	switch {
	case r.MediaType == "movie" || r.Title != "":
		return KindMovie
	case r.MediaType == "tv" || r.Name != "":
		return KindShow
	default:
		return KindUnknown
	}
}

func (r Result) DisplayTitle() string {
	var title string

	switch r.Kind() {
	case KindMovie:
		title, _ = lo.Coalesce(r.Title, r.Name, r.OriginalTitle, r.OriginalName)
	case KindShow:
		title, _ = lo.Coalesce(r.Name, r.Title, r.OriginalName, r.OriginalTitle)
	default:
		title, _ = lo.Coalesce(r.Title, r.Name, r.OriginalName, r.OriginalTitle, "Untitled")
	}

	return title
}
