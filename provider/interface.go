package provider

import (
	"github.com/l3uddz/streamarr/config"
	"github.com/sirupsen/logrus"
)

type Interface interface {
	Init(*config.Provider) error
	Name() string
	Log() *logrus.Entry

	Search(string) ([]SearchResult, error)
	Details(string) ([]MediaDetails, error)
	Episodes(string) ([]Episode, error)
	StreamURL(string) (*Stream, error)
}
