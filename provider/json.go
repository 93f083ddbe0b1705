package provider

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/l3uddz/streamarr/logger"
)

var (
	log  = logger.GetLogger("provider")
	json = jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	searchErrorResults  = []SearchResult{{Title: "Error", Image: "", Href: ""}}
	detailsErrorResults = []MediaDetails{{
		Description: "Error loading description",
		Aliases:     "Duration: Unknown",
		Airdate:     "Aired/Released: Unknown",
	}}
)

/* Public */

// SearchJSON returns the search results as JSON, or the error placeholder result when the search fails.
func SearchJSON(p Interface, keyword string) string {
	results, err := p.Search(keyword)
	if err != nil {
		p.Log().WithError(err).Error("Fetch error in search")
		results = searchErrorResults
	}

	return marshal(results, "[]")
}

// DetailsJSON returns the details as JSON, or the error placeholder details when the lookup fails.
func DetailsJSON(p Interface, url string) string {
	details, err := p.Details(url)
	if err != nil {
		p.Log().WithError(err).Error("Details error")
		details = detailsErrorResults
	}

	return marshal(details, "[]")
}

// EpisodesJSON returns the episodes as JSON, or an empty list when the lookup fails.
func EpisodesJSON(p Interface, url string) string {
	episodes, err := p.Episodes(url)
	if err != nil {
		p.Log().WithError(err).Error("Fetch error in episodes")
		episodes = []Episode{}
	}

	return marshal(episodes, "[]")
}

// StreamJSON returns the stream as JSON, or null when no stream could be resolved.
func StreamJSON(p Interface, url string) string {
	stream, err := p.StreamURL(url)
	if err != nil {
		p.Log().WithError(err).Error("Fetch error in stream")
		return "null"
	}

	return marshal(stream, "null")
}

/* Private */

func marshal(v interface{}, fallback string) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("Failed encoding output")
		return fallback
	}

	return string(b)
}
