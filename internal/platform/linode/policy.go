package linode

import (
	"math/rand"
	"time"

	"github.com/testkitchen/kitchen-linode/internal/util/retry"
)

const (
	// rateLimitFallback is slept when a rate-limited response carries no
	// Retry-After header.
	rateLimitFallback = 5 * time.Second
	// rateLimitJitterSeconds bounds the random jitter added on top of the
	// server-supplied delay, [1, rateLimitJitterSeconds] seconds.
	rateLimitJitterSeconds = 10
)

// sleepFn is swapped out in tests.
var sleepFn = time.Sleep

// TransientPolicy is the default retry policy for provider calls: timeouts
// are retried with exponential backoff, rate limits wait out the
// server-supplied hint plus jitter before retrying, and everything else is
// terminal. logf receives a line per retry.
func TransientPolicy(maxAttempts int, logf func(format string, args ...any)) retry.Policy {
	return retry.Policy{
		MaxAttempts: maxAttempts,
		Retryable:   IsTimeout,
		Classify: func(err error) retry.Decision {
			if !IsRateLimited(err) {
				return retry.Abort
			}
			delay := rateLimitFallback
			if hint, ok := RetryAfterHint(err); ok {
				delay = hint
			}
			delay += time.Duration(rand.Intn(rateLimitJitterSeconds)+1) * time.Second
			if logf != nil {
				logf("[Linode] Rate limited, waiting %s before retrying", delay)
			}
			sleepFn(delay)
			return retry.RetryNow
		},
		OnRetry: func(attempt int, err error) {
			if logf != nil {
				logf("[Linode] API call failed (attempt %d): %v. Retrying...", attempt, err)
			}
		},
	}
}
