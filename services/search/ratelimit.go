package search

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/meghashyamc/ghreport/logger"
)

const (
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRateLimitUsed      = "X-RateLimit-Used"

	// Added to the wait to absorb clock differences with the server.
	clockSkewAllowance = time.Second
)

type RateLimitStatus struct {
	Remaining int
	// Reset is when the quota window resets, in seconds since the epoch.
	Reset int64
	Used  int
}

// Sleeper performs the actual wait so tests can swap in a recording clock.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type WallClockSleeper struct{}

func (WallClockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type RateLimiter struct {
	logger  logger.Logger
	sleeper Sleeper
	now     func() time.Time
}

func NewRateLimiter(logger logger.Logger, sleeper Sleeper) *RateLimiter {
	return &RateLimiter{logger: logger, sleeper: sleeper, now: time.Now}
}

func ParseRateLimitStatus(header http.Header) (RateLimitStatus, error) {
	remaining, err := strconv.Atoi(header.Get(HeaderRateLimitRemaining))
	if err != nil {
		return RateLimitStatus{}, fmt.Errorf("invalid %s header: %w", HeaderRateLimitRemaining, err)
	}
	if remaining < 0 {
		return RateLimitStatus{}, fmt.Errorf("invalid %s header: negative value %d", HeaderRateLimitRemaining, remaining)
	}

	reset, err := strconv.ParseInt(header.Get(HeaderRateLimitReset), 10, 64)
	if err != nil {
		return RateLimitStatus{}, fmt.Errorf("invalid %s header: %w", HeaderRateLimitReset, err)
	}

	// Used is informational only.
	used, _ := strconv.Atoi(header.Get(HeaderRateLimitUsed))

	return RateLimitStatus{Remaining: remaining, Reset: reset, Used: used}, nil
}

// WaitDuration is zero while quota remains. Once it runs out, it is the time
// left until the reset plus one second, never negative.
func WaitDuration(status RateLimitStatus, now time.Time) time.Duration {
	if status.Remaining > 0 {
		return 0
	}

	wait := time.Unix(status.Reset, 0).Sub(now) + clockSkewAllowance
	return max(0, wait)
}

// Throttle blocks until the quota window resets if the response that carried
// these headers used up the last request. Unreadable headers never block.
func (r *RateLimiter) Throttle(ctx context.Context, header http.Header) error {
	status, err := ParseRateLimitStatus(header)
	if err != nil {
		r.logger.Warn("could not read rate limit headers, not throttling", "err", err.Error())
		return nil
	}

	r.logger.Debug("rate limit status", "remaining", status.Remaining, "reset", status.Reset, "used", status.Used)

	wait := WaitDuration(status, r.now())
	if wait == 0 {
		return nil
	}

	r.logger.Info("rate limit exhausted, throttling", "seconds", wait.Seconds(), "reset", status.Reset)
	if err := r.sleeper.Sleep(ctx, wait); err != nil {
		return fmt.Errorf("interrupted while waiting for rate limit reset: %w", err)
	}

	return nil
}
