// Package health provides a cached liveness check of one remote service.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCooldown = 60 * time.Second
	DefaultTimeout  = 3 * time.Second
)

// Probe memoizes the availability of one service for a cooldown window.
// Callers inside the window get the cached answer; concurrent callers after
// it share one in-flight request.
type Probe struct {
	name     string
	url      string
	client   *http.Client
	cooldown time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu        sync.Mutex
	known     bool
	available bool
	checkedAt time.Time

	group singleflight.Group
}

// Option configures a Probe
type Option func(*Probe)

// WithCooldown sets how long a result is reused
func WithCooldown(d time.Duration) Option {
	return func(p *Probe) { p.cooldown = d }
}

// WithTimeout bounds each health request
func WithTimeout(d time.Duration) Option {
	return func(p *Probe) { p.timeout = d }
}

// WithHTTPClient replaces the HTTP client used for probing
func WithHTTPClient(c *http.Client) Option {
	return func(p *Probe) { p.client = c }
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(p *Probe) { p.now = now }
}

// NewProbe creates a probe for the health endpoint at url
func NewProbe(name, url string, opts ...Option) *Probe {
	p := &Probe{
		name:     name,
		url:      url,
		client:   http.DefaultClient,
		cooldown: DefaultCooldown,
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the service name
func (p *Probe) Name() string {
	return p.name
}

// Check reports whether the service is reachable. A caller whose context
// ends first gets false without affecting the cached result.
func (p *Probe) Check(ctx context.Context) bool {
	if available, ok := p.cached(); ok {
		return available
	}

	// The shared request outlives any one caller; only the timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := p.group.DoChan("check", func() (interface{}, error) {
		if available, ok := p.cached(); ok {
			return available, nil
		}
		available := p.probe(shared)
		p.record(available)
		return available, nil
	})
	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		return false
	}
}

// MarkAvailable records a successful call observed elsewhere
func (p *Probe) MarkAvailable() {
	p.record(true)
}

// MarkUnavailable records a failed call observed elsewhere. Check answers
// false without probing until the cooldown elapses.
func (p *Probe) MarkUnavailable() {
	p.record(false)
}

func (p *Probe) cached() (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.known && p.now().Sub(p.checkedAt) < p.cooldown {
		return p.available, true
	}
	return false, false
}

func (p *Probe) record(available bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.known && p.available != available {
		log.Info().Str("service", p.name).Bool("available", available).Msg("Service availability changed")
	}
	p.known = true
	p.available = available
	p.checkedAt = p.now()
}

func (p *Probe) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("service", p.name).Msg("Health check failed")
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
