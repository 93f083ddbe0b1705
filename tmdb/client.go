package tmdb

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/imroc/req"
	"github.com/jpillora/backoff"
	"github.com/l3uddz/streamarr/database"
	"github.com/l3uddz/streamarr/logger"
	"github.com/l3uddz/streamarr/utils/web"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

/* Const */

const (
	DefaultApiURL    = "https://api.themoviedb.org/3"
	DefaultImageURL  = "https://image.tmdb.org/t/p"
	DefaultRateLimit = 20
	DefaultTimeout   = 15
	posterSize       = "w500"
)

var (
	defaultRetry = web.Retry{
		MaxAttempts: 5,
		RetryableStatusCodes: []int{
			http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		Backoff: backoff.Backoff{
			Jitter: true,
			Min:    1 * time.Second,
			Max:    5 * time.Second,
		},
	}
)

/* Struct */

type Client struct {
	log *logrus.Entry

	apiUrl   string
	apiKey   string
	imageUrl string
	timeout  int
	cacheTTL time.Duration

	reqRatelimit ratelimit.Limiter
	reqRetry     web.Retry
}

type Option func(*Client)

/* Options */

func WithImageURL(imageUrl string) Option {
	return func(c *Client) {
		if imageUrl != "" {
			c.imageUrl = imageUrl
		}
	}
}

func WithTimeout(timeout int) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRateLimit sets the requests per second shared by every client using the tmdb limiter.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		c.reqRatelimit = web.GetRateLimiter("tmdb", rps)
	}
}

// WithRetry replaces the default retry policy.
func WithRetry(retry web.Retry) Option {
	return func(c *Client) {
		c.reqRetry = retry
	}
}

// WithCache stores movie, show and season responses in the database for ttl.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

/* Initializer */

func New(apiUrl string, apiKey string, opts ...Option) *Client {
	if apiUrl == "" {
		apiUrl = DefaultApiURL
	}

	c := &Client{
		log:      logger.GetLogger("tmdb"),
		apiUrl:   apiUrl,
		apiKey:   apiKey,
		imageUrl: DefaultImageURL,
		timeout:  DefaultTimeout,
		reqRetry: defaultRetry,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.reqRatelimit == nil {
		c.reqRatelimit = web.GetRateLimiter("tmdb", DefaultRateLimit)
	}

	return c
}

/* Public */

func (c *Client) SearchMulti(query string) ([]Result, error) {
	// send request
	var s SearchResponse
	if err := c.get("/search/multi", req.Param{"query": query}, &s); err != nil {
		return nil, errors.WithMessagef(err, "failed searching for: %q", query)
	}

	c.log.WithFields(logrus.Fields{
		"query":   query,
		"results": len(s.Results),
	}).Debug("Retrieved search results")
	return s.Results, nil
}

func (c *Client) Movie(movieId string) (*Movie, error) {
	var s Movie
	if err := c.getCached("movie", movieId, web.JoinURL("/movie", movieId), &s); err != nil {
		return nil, errors.WithMessagef(err, "failed retrieving movie: %q", movieId)
	}

	return &s, nil
}

func (c *Client) Show(showId string) (*Show, error) {
	var s Show
	if err := c.getCached("tv", showId, web.JoinURL("/tv", showId), &s); err != nil {
		return nil, errors.WithMessagef(err, "failed retrieving show: %q", showId)
	}

	return &s, nil
}

func (c *Client) Season(showId string, seasonNumber int) (*Season, error) {
	season := strconv.Itoa(seasonNumber)

	var s Season
	if err := c.getCached("season", showId+"/"+season, web.JoinURL("/tv", showId, "season", season), &s); err != nil {
		return nil, errors.WithMessagef(err, "failed retrieving season %d of show: %q", seasonNumber, showId)
	}

	return &s, nil
}

// ImageURL returns the poster url for a TMDB image path, or an empty string when there is no image.
func (c *Client) ImageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}

	return web.JoinURL(c.imageUrl, posterSize) + imagePath
}

/* Private */

func (c *Client) getCached(kind string, itemId string, endpoint string, out interface{}) error {
	// check cache
	if c.cacheTTL > 0 && database.GetMetadataItem(kind, itemId, out) {
		c.log.WithFields(logrus.Fields{
			"kind": kind,
			"id":   itemId,
		}).Trace("Using cached metadata")
		return nil
	}

	// send request
	if err := c.get(endpoint, nil, out); err != nil {
		return err
	}

	// store in cache
	if c.cacheTTL > 0 {
		if err := database.AddMetadataItem(kind, itemId, out, c.cacheTTL); err != nil {
			c.log.WithError(err).Warn("Failed caching metadata item")
		}
	}

	return nil
}

func (c *Client) get(endpoint string, params req.Param, out interface{}) error {
	// set request params
	reqParams := req.Param{
		"api_key": c.apiKey,
	}

	for k, v := range params {
		reqParams[k] = v
	}

	// send request
	resp, err := web.GetResponse(web.GET, web.JoinURL(c.apiUrl, endpoint), c.timeout, reqParams, &c.reqRetry,
		c.reqRatelimit)
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
