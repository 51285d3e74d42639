package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Platform API quotas. These mirror the documented public limits and are
// a coarse local admission hint, not a hard quota enforcer; the real
// quota lives upstream and is signalled back via HTTP 429.
const (
	TwitterWindow     = 15 * time.Minute
	TwitterMaxRequest = 180
	TwitterRetryAfter = 900 * time.Second

	RedditWindow     = time.Minute
	RedditMaxRequest = 60
	RedditRetryAfter = 60 * time.Second
)

// Decision is the outcome of an admission check
type Decision struct {
	Allowed    bool
	RetryAfter int // seconds until the caller may try again
}

// Limiter tracks request counts in a fixed time window for one platform.
// An upstream 429 arms retryAfterUntil, which overrides the local counter
// until it elapses. All state is mutex-guarded since limiters are shared
// across requests for the process lifetime.
type Limiter struct {
	mu sync.Mutex

	max               int
	window            time.Duration
	defaultRetryAfter time.Duration

	requestCount    int
	windowStart     time.Time
	retryAfterUntil time.Time

	now func() time.Time
}

// New creates a limiter. now may be nil, in which case time.Now is used;
// tests inject a fake clock to drive window expiry.
func New(max int, window, defaultRetryAfter time.Duration, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		max:               max,
		window:            window,
		defaultRetryAfter: defaultRetryAfter,
		windowStart:       now(),
		now:               now,
	}
}

// NewTwitter creates a limiter with the Twitter recent-search quota
func NewTwitter(now func() time.Time) *Limiter {
	return New(TwitterMaxRequest, TwitterWindow, TwitterRetryAfter, now)
}

// NewReddit creates a limiter with the Reddit search quota
func NewReddit(now func() time.Time) *Limiter {
	return New(RedditMaxRequest, RedditWindow, RedditRetryAfter, now)
}

// Check decides whether another outbound request may be issued. It does
// not consume the budget: the fetcher calls Consume just before the HTTP
// request, so a cache hit or credential failure never spends quota.
func (l *Limiter) Check() Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if now.Sub(l.windowStart) > l.window {
		l.requestCount = 0
		l.windowStart = now
		l.retryAfterUntil = time.Time{}
	}

	if !l.retryAfterUntil.IsZero() && now.Before(l.retryAfterUntil) {
		return Decision{
			Allowed:    false,
			RetryAfter: ceilSeconds(l.retryAfterUntil.Sub(now)),
		}
	}

	if l.requestCount >= l.max {
		untilReset := l.window - now.Sub(l.windowStart)
		return Decision{
			Allowed:    false,
			RetryAfter: ceilSeconds(untilReset),
		}
	}

	return Decision{Allowed: true}
}

// Consume records one outbound request against the current window
func (l *Limiter) Consume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requestCount++
}

// SetRetryAfter arms the 429 override. seconds <= 0 applies the platform
// default. It returns the seconds actually applied.
func (l *Limiter) SetRetryAfter(seconds int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seconds <= 0 {
		seconds = int(l.defaultRetryAfter.Seconds())
	}
	l.retryAfterUntil = l.now().Add(time.Duration(seconds) * time.Second)
	return seconds
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
