package web

import (
	"time"

	"github.com/imroc/req"
	"github.com/jpillora/backoff"
	"github.com/l3uddz/streamarr/logger"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

/* Types */

type HTTPMethod int

const (
	GET HTTPMethod = iota
	POST
	HEAD
)

func (m HTTPMethod) String() string {
	switch m {
	case POST:
		return "POST"
	case HEAD:
		return "HEAD"
	default:
		return "GET"
	}
}

type Retry struct {
	backoff.Backoff
	MaxAttempts          int
	RetryableStatusCodes []int
}

var (
	log = logger.GetLogger("web")
)

/* Public */

// GetResponse sends a request and returns the response once it is deemed final.
// Besides the usual req inputs (req.Header, req.Param, req.QueryParam, context.Context) the
// variadic inputs may carry a *Retry policy and a ratelimit.Limiter.
// The caller is responsible for closing the response body.
func GetResponse(method HTTPMethod, requestUrl string, timeout int, v ...interface{}) (*req.Resp, error) {
	// split inputs
	inputs := make([]interface{}, 0)
	var retry *Retry
	var rl ratelimit.Limiter

	for _, vv := range v {
		switch vT := vv.(type) {
		case *Retry:
			// retry state must not leak between calls sharing a policy
			r := *vT
			r.Backoff.Reset()
			retry = &r
		case ratelimit.Limiter:
			rl = vT
		default:
			inputs = append(inputs, vT)
		}
	}

	// prepare client
	client := req.New()
	client.SetTimeout(time.Duration(timeout) * time.Second)

	attempts := 0
	for {
		attempts++

		// wait for ratelimit
		if rl != nil {
			rl.Take()
		}

		// send request
		resp, err := client.Do(method.String(), requestUrl, inputs...)
		if err != nil {
			if retry == nil || attempts >= retry.MaxAttempts {
				return nil, err
			}

			d := retry.Duration()
			log.WithError(err).WithFields(logrus.Fields{
				"url":      requestUrl,
				"attempts": attempts,
				"wait":     d,
			}).Trace("Retrying failed request")
			time.Sleep(d)
			continue
		}

		// retry on a retryable status code
		if retry != nil && attempts < retry.MaxAttempts && lo.Contains(retry.RetryableStatusCodes, resp.Response().StatusCode) {
			DrainAndClose(resp.Response().Body)

			d := retry.Duration()
			log.WithFields(logrus.Fields{
				"url":      requestUrl,
				"status":   resp.Response().Status,
				"attempts": attempts,
				"wait":     d,
			}).Trace("Retrying request with retryable status")
			time.Sleep(d)
			continue
		}

		return resp, nil
	}
}
