package web

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

var (
	rateLimiters map[string]ratelimit.Limiter
	mtx          sync.Mutex
)

// GetRateLimiter returns the named limiter, creating it with newRateLimit requests per second
// the first time the name is seen.
func GetRateLimiter(name string, newRateLimit int) ratelimit.Limiter {
	// acquire lock
	mtx.Lock()
	defer mtx.Unlock()

	// init map
	if rateLimiters == nil {
		rateLimiters = make(map[string]ratelimit.Limiter)
		log.Trace("Initialized rateLimiters map")
	}

	// retrieve or create new ratelimit
	key := strings.ToLower(name)
	rl, ok := rateLimiters[key]
	if !ok {
		if newRateLimit > 0 {
			rl = ratelimit.New(newRateLimit)
		} else {
			rl = ratelimit.NewUnlimited()
		}
		rateLimiters[key] = rl

		log.WithFields(logrus.Fields{
			"name":  name,
			"limit": newRateLimit,
		}).Trace("Created new ratelimit")
	}

	return rl
}
