package site

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusPublishing Status = "publishing"
	StatusPublished  Status = "published"
)

// DefaultPublishDelay is how long the simulated publish takes.
const DefaultPublishDelay = 2000 * time.Millisecond

// Publisher owns the publish status of one site. A publish is a delayed task
// that can be cancelled; a cancelled publish leaves no trace.
type Publisher struct {
	mu       sync.Mutex
	status   Status
	last     *time.Time
	previous Status
	cancel   context.CancelFunc
	gen      uint64
	now      func() time.Time
}

// NewPublisher restores a publisher. A stored publishing status cannot be
// resumed and is read as draft.
func NewPublisher(status Status, last *time.Time) *Publisher {
	if status != StatusPublished {
		status = StatusDraft
	}
	p := &Publisher{status: status, now: time.Now}
	if last != nil {
		t := *last
		p.last = &t
	}
	return p
}

// Status returns the current status and the last publish time.
func (p *Publisher) Status() (Status, *time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return p.status, nil
	}
	t := *p.last
	return p.status, &t
}

// Start switches to publishing and schedules the switch to published after
// delay. onDone runs on the timer goroutine after the status changed, outside
// the publisher lock. Start reports false when a publish is already running.
func (p *Publisher) Start(ctx context.Context, delay time.Duration, onDone func(at time.Time)) bool {
	p.mu.Lock()
	if p.status == StatusPublishing {
		p.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	p.gen++
	gen := p.gen
	p.previous = p.status
	p.status = StatusPublishing
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		defer cancel()
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			p.mu.Lock()
			p.rollbackLocked(gen)
			p.mu.Unlock()
			return
		}

		p.mu.Lock()
		if gen != p.gen || p.status != StatusPublishing || ctx.Err() != nil {
			p.rollbackLocked(gen)
			p.mu.Unlock()
			return
		}
		at := p.now().UTC()
		p.status = StatusPublished
		p.last = &at
		p.cancel = nil
		p.mu.Unlock()
		if onDone != nil {
			onDone(at)
		}
	}()
	return true
}

func (p *Publisher) rollbackLocked(gen uint64) {
	if gen != p.gen || p.status != StatusPublishing {
		return
	}
	p.status = p.previous
	p.cancel = nil
}

// Cancel aborts a running publish and restores the previous status. It is a
// no-op otherwise.
func (p *Publisher) Cancel() {
	p.mu.Lock()
	cancel := p.cancel
	p.rollbackLocked(p.gen)
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Settled is Status with a running publish reported as the status it started
// from. This is what gets persisted.
func (p *Publisher) Settled() (Status, *time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	status := p.status
	if status == StatusPublishing {
		status = p.previous
	}
	if p.last == nil {
		return status, nil
	}
	t := *p.last
	return status, &t
}
