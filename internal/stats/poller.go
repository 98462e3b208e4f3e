// Package stats keeps the admin dashboard counters fresh. A scheduler job
// refetches them at a fixed interval, pages report their visibility so a
// hidden dashboard stops polling, and a generation counter makes sure a
// slow response never overwrites a newer one.
package stats

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/backend"
	"github.com/hmzza/NoballSportsClub/internal/scheduler"
)

// DefaultInterval matches the dashboard's 30-second refresh cadence.
const DefaultInterval = 30 * time.Second

// Fetcher is the slice of the backend client the poller needs.
type Fetcher interface {
	DashboardStats(ctx context.Context) (backend.Stats, error)
}

// Poller owns the cached dashboard stats.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	timeout  time.Duration

	gen atomic.Uint64 // increments per refresh attempt

	mu        sync.RWMutex
	visible   bool
	current   backend.Stats
	updatedAt time.Time
	populated bool
}

// NewPoller builds a poller. The dashboard starts visible so the first
// scheduled run populates the cache.
func NewPoller(fetcher Fetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		timeout:  interval,
		visible:  true,
	}
}

// Register adds the refresh job to the app scheduler. The scheduler's
// lifecycle (Start/Stop) is managed by the server.
func (p *Poller) Register() error {
	_, err := scheduler.AddIntervalJob("dashboard-stats-refresh", p.interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		p.Refresh(ctx)
	})
	return err
}

// SetVisible records whether any dashboard page is currently visible.
// Hidden dashboards skip refreshes; becoming visible triggers an immediate
// one so the page never shows stale counters for a full interval.
func (p *Poller) SetVisible(ctx context.Context, visible bool) {
	p.mu.Lock()
	was := p.visible
	p.visible = visible
	p.mu.Unlock()
	if visible && !was {
		p.Refresh(ctx)
	}
}

// Refresh fetches stats now. Responses belonging to a superseded attempt
// are dropped; last write wins only among current-generation responses.
func (p *Poller) Refresh(ctx context.Context) {
	p.mu.RLock()
	visible := p.visible
	p.mu.RUnlock()
	if !visible {
		log.Ctx(ctx).Debug().Msg("dashboard hidden, skipping stats refresh")
		return
	}

	gen := p.gen.Add(1)
	stats, err := p.fetcher.DashboardStats(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("dashboard stats refresh failed")
		return
	}
	if p.gen.Load() != gen {
		log.Ctx(ctx).Debug().Uint64("generation", gen).Msg("dropping stale stats response")
		return
	}

	p.mu.Lock()
	p.current = stats
	p.updatedAt = time.Now()
	p.populated = true
	p.mu.Unlock()
}

// Snapshot returns the cached stats, when they were fetched, and whether
// the cache has ever been populated.
func (p *Poller) Snapshot() (backend.Stats, time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.updatedAt, p.populated
}
