package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time explicitly
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestLimiter_AllowsUntilMax(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	limiter := New(3, time.Minute, 60*time.Second, clock.Now)

	for i := 0; i < 3; i++ {
		decision := limiter.Check()
		assert.True(t, decision.Allowed, "request %d should be admitted", i)
		limiter.Consume()
	}

	decision := limiter.Check()
	assert.False(t, decision.Allowed)
	assert.Greater(t, decision.RetryAfter, 0)
}

func TestLimiter_WindowReset(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	limiter := New(2, time.Minute, 60*time.Second, clock.Now)

	limiter.Consume()
	limiter.Consume()
	assert.False(t, limiter.Check().Allowed)

	clock.Advance(time.Minute + time.Second)

	decision := limiter.Check()
	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.RetryAfter)
}

func TestLimiter_RetryAfterOverride(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	limiter := New(100, time.Minute, 60*time.Second, clock.Now)

	applied := limiter.SetRetryAfter(120)
	assert.Equal(t, 120, applied)

	decision := limiter.Check()
	assert.False(t, decision.Allowed)
	assert.Equal(t, 120, decision.RetryAfter)

	clock.Advance(30 * time.Second)
	decision = limiter.Check()
	assert.False(t, decision.Allowed)
	assert.Equal(t, 90, decision.RetryAfter)

	clock.Advance(91 * time.Second)
	assert.True(t, limiter.Check().Allowed)
}

func TestLimiter_RetryAfterDefault(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	limiter := New(100, time.Minute, 45*time.Second, clock.Now)

	applied := limiter.SetRetryAfter(0)
	assert.Equal(t, 45, applied)

	decision := limiter.Check()
	assert.False(t, decision.Allowed)
	assert.Equal(t, 45, decision.RetryAfter)
}

func TestLimiter_OverrideClearedByWindowReset(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	limiter := New(2, time.Minute, 60*time.Second, clock.Now)

	limiter.SetRetryAfter(30)
	assert.False(t, limiter.Check().Allowed)

	// Advancing past the window clears both the counter and the override
	clock.Advance(2 * time.Minute)
	assert.True(t, limiter.Check().Allowed)
}

func TestPlatformDefaults(t *testing.T) {
	twitter := NewTwitter(nil)
	assert.Equal(t, TwitterMaxRequest, twitter.max)
	assert.Equal(t, TwitterWindow, twitter.window)

	reddit := NewReddit(nil)
	assert.Equal(t, RedditMaxRequest, reddit.max)
	assert.Equal(t, RedditWindow, reddit.window)
}
