package clock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/beevik/ntp"
)

const (
	DefaultSyncInterval = time.Minute
	queryTimeout        = 2 * time.Second
)

// Clock reports wall time with seconds resolution corrected by an optional
// NTP offset. Readings never go backwards.
type Clock struct {
	mu     sync.Mutex
	offset time.Duration
	last   time.Time
	source func() time.Time
	query  func(server string) (time.Duration, error)
	logger *slog.Logger
}

func NewSystemClock() *Clock {
	return &Clock{
		source: time.Now,
		query:  queryOffset,
		logger: slog.Default(),
	}
}

// NewNTPClock returns a clock whose offset was synchronized once with server.
func NewNTPClock(server string, logger *slog.Logger) (*Clock, error) {
	c := NewSystemClock()
	if logger != nil {
		c.logger = logger
	}
	if err := c.Sync(server); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source().Add(c.offset).UTC().Truncate(time.Second)
	if now.Before(c.last) {
		now = c.last
	}
	c.last = now
	return now
}

func (c *Clock) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

func (c *Clock) Sync(server string) error {
	offset, err := c.query(server)
	if err != nil {
		return fmt.Errorf("failed to sync time from %s: %w", server, err)
	}

	c.mu.Lock()
	c.offset = offset
	c.mu.Unlock()

	c.logger.Info("clock synchronized", "server", server, "offset", offset.String())
	return nil
}

// Run resynchronizes every interval until ctx is done. Failures keep the
// previous offset.
func (c *Clock) Run(ctx context.Context, server string, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Sync(server); err != nil {
				c.logger.Warn("clock sync failed", "server", server, "error", err)
			}
		}
	}
}

func queryOffset(server string) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: queryTimeout})
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// Fixed is a manually advanced clock for hosts that supply their own block
// time, and for tests.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
