package builder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"school-builder/internal/domain/blocks"
	"school-builder/internal/domain/site"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrClosed is returned once the manager has been closed.
var ErrClosed = errors.New("builder closed")

// DefaultMaxWorkspaces bounds how many workspaces stay in memory.
const DefaultMaxWorkspaces = 1000

const flushTimeout = 10 * time.Second

type Options struct {
	Variant       site.Variant
	PublishDelay  time.Duration
	DocOptions    []site.DocumentOption
	MaxWorkspaces int
}

// Manager keeps recently used workspaces in memory and mirrors them to the
// store on Save. A workspace pushed out of the cache is saved first when it
// has unsaved edits. Each workspace has its own lock.
type Manager struct {
	reg     *blocks.Registry
	shim    *site.Shim
	variant site.Variant
	delay   time.Duration
	docOpts []site.DocumentOption

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions *lru.Cache[string, *session]
	evicted  []evictedSession
	flushing map[string]chan struct{}
	opening  map[string]chan struct{}
	closed   bool
}

type session struct {
	mu   sync.Mutex
	ws   *site.Workspace
	gone bool
}

type evictedSession struct {
	owner string
	s     *session
}

func New(reg *blocks.Registry, store site.Store, opts Options) *Manager {
	if opts.PublishDelay <= 0 {
		opts.PublishDelay = site.DefaultPublishDelay
	}
	if opts.MaxWorkspaces <= 0 {
		opts.MaxWorkspaces = DefaultMaxWorkspaces
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		reg:      reg,
		shim:     site.NewShim(store),
		variant:  opts.Variant,
		delay:    opts.PublishDelay,
		docOpts:  opts.DocOptions,
		ctx:      ctx,
		cancel:   cancel,
		flushing: make(map[string]chan struct{}),
		opening:  make(map[string]chan struct{}),
	}
	// The size is positive, so NewWithEvict cannot fail.
	m.sessions, _ = lru.NewWithEvict[string, *session](opts.MaxWorkspaces, m.onEvict)
	return m
}

func (m *Manager) Registry() *blocks.Registry { return m.reg }

// onEvict runs inside sessions.Add and sessions.Remove, which are only
// called with m.mu held. The flush itself happens in release.
func (m *Manager) onEvict(owner string, s *session) {
	m.evicted = append(m.evicted, evictedSession{owner: owner, s: s})
	m.flushing[owner] = make(chan struct{})
}

func (m *Manager) takeEvictedLocked() []evictedSession {
	ev := m.evicted
	m.evicted = nil
	return ev
}

// release saves evicted workspaces with unsaved edits and cancels their
// publishes.
func (m *Manager) release(evicted []evictedSession) {
	for _, e := range evicted {
		m.flush(e.owner, e.s)
	}
}

func (m *Manager) flush(owner string, s *session) {
	defer func() {
		m.mu.Lock()
		done := m.flushing[owner]
		delete(m.flushing, owner)
		m.mu.Unlock()
		if done != nil {
			close(done)
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gone = true

	if status, _ := s.ws.Publisher().Status(); status == site.StatusPublishing {
		log.Printf("[builder] %s: evicted while publishing, publish cancelled", owner)
	}
	s.ws.Publisher().Cancel()
	if !s.ws.Dirty() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := m.shim.Save(ctx, owner, s.ws.Snapshot()); err != nil {
		log.Printf("[builder] %s: save on evict: %v", owner, err)
		return
	}
	log.Printf("[builder] %s: saved on evict", owner)
}

// open returns the owner's session, restoring it from the store on first use.
// Only one restore per owner runs at a time, and it waits for a pending
// eviction of the same owner to finish saving.
func (m *Manager) open(ctx context.Context, owner string) (*session, error) {
	for {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return nil, ErrClosed
		}
		if s, ok := m.sessions.Get(owner); ok {
			m.mu.Unlock()
			return s, nil
		}
		wait, busy := m.flushing[owner]
		if !busy {
			wait, busy = m.opening[owner]
		}
		if !busy {
			m.opening[owner] = make(chan struct{})
			m.mu.Unlock()
			break
		}
		m.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s, evicted, err := m.restore(ctx, owner)
	m.release(evicted)
	return s, err
}

func (m *Manager) restore(ctx context.Context, owner string) (*session, []evictedSession, error) {
	defer func() {
		m.mu.Lock()
		done := m.opening[owner]
		delete(m.opening, owner)
		m.mu.Unlock()
		close(done)
	}()

	st, found, err := m.shim.Restore(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	var ws *site.Workspace
	if found {
		ws = site.FromState(m.reg, m.variant, st, m.docOpts...)
	} else {
		ws = site.NewWorkspace(m.reg, m.variant, m.docOpts...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, nil, ErrClosed
	}
	s := &session{ws: ws}
	m.sessions.Add(owner, s)
	return s, m.takeEvictedLocked(), nil
}

func (s *session) run(fn func(ws *site.Workspace) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gone {
		return false, nil
	}
	return true, fn(s.ws)
}

// Do runs fn with exclusive access to the owner's workspace.
func (m *Manager) Do(ctx context.Context, owner string, fn func(ws *site.Workspace) error) error {
	for {
		s, err := m.open(ctx, owner)
		if err != nil {
			return err
		}
		// An evicted session is stale; reopen from the store.
		if ran, err := s.run(fn); ran {
			return err
		}
	}
}

// Save persists the owner's workspace. Concurrent saves are not coordinated
// beyond the workspace lock: the last write wins.
func (m *Manager) Save(ctx context.Context, owner string) error {
	return m.Do(ctx, owner, func(ws *site.Workspace) error {
		if err := m.shim.Save(ctx, owner, ws.Snapshot()); err != nil {
			return err
		}
		ws.MarkClean()
		return nil
	})
}

// Saved reads the owner's persisted state, ignoring unsaved edits.
func (m *Manager) Saved(ctx context.Context, owner string) (site.State, bool, error) {
	return m.shim.Restore(ctx, owner)
}

// Published returns the copy served on the public site, or nil.
func (m *Manager) Published(ctx context.Context, owner string) (*site.PublishedSite, error) {
	return m.shim.LoadPublished(ctx, owner)
}

// Publish starts the simulated publish. It reports false when one is already
// running. When the delay elapses the saved pages become the public copy.
func (m *Manager) Publish(ctx context.Context, owner string) (bool, error) {
	var started bool
	err := m.Do(ctx, owner, func(ws *site.Workspace) error {
		started = ws.Publisher().Start(m.ctx, m.delay, func(at time.Time) {
			m.finishPublish(owner, at)
		})
		return nil
	})
	return started, err
}

func (m *Manager) finishPublish(owner string, at time.Time) {
	ctx := m.ctx
	st, found, err := m.shim.Restore(ctx, owner)
	if err != nil {
		log.Printf("[publish] %s: read saved state: %v", owner, err)
		return
	}

	err = m.Do(ctx, owner, func(ws *site.Workspace) error {
		if !found {
			st = ws.Snapshot()
		}
		published := &site.PublishedSite{
			Name:        st.Name,
			Pages:       st.Pages,
			Settings:    st.Settings,
			PublishedAt: at,
		}
		ws.SetPublished(published)
		return m.shim.SavePublish(ctx, owner, site.StatusPublished, &at, published)
	})
	if err != nil {
		log.Printf("[publish] %s: %v", owner, err)
		return
	}
	log.Printf("[publish] %s: published %d page(s)", owner, len(st.Pages))
}

// ApplyTemplate replaces every page with the template. A workspace that
// already has blocks is only overwritten when force is set.
func (m *Manager) ApplyTemplate(ctx context.Context, owner string, tpl site.Template, force bool) error {
	return m.Do(ctx, owner, func(ws *site.Workspace) error {
		if !force && !ws.Empty() {
			return fmt.Errorf("%s: %w", owner, site.ErrSiteNotEmpty)
		}
		ws.ReplacePages(tpl.Instantiate(m.reg, m.docOpts...))
		return nil
	})
}

// Evict drops the owner's in-memory workspace after saving unsaved edits. A
// running publish is cancelled.
func (m *Manager) Evict(owner string) {
	m.mu.Lock()
	m.sessions.Remove(owner)
	evicted := m.takeEvictedLocked()
	m.mu.Unlock()
	m.release(evicted)
}

// Close cancels every pending publish. Later calls fail with ErrClosed.
// Unsaved edits are not written.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	sessions := m.sessions.Values()
	m.mu.Unlock()

	m.cancel()
	for _, s := range sessions {
		s.ws.Publisher().Cancel()
	}
}
