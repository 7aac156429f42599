package builder

import (
	"context"
	"sync"
	"testing"
	"time"

	"school-builder/internal/domain/blocks"
	"school-builder/internal/domain/site"
	"school-builder/internal/infra/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, delay time.Duration) (*Manager, *kvstore.Memory) {
	t.Helper()
	store := kvstore.NewMemory()
	m := New(blocks.DefaultRegistry(), store, Options{Variant: site.VariantBuilder, PublishDelay: delay})
	t.Cleanup(m.Close)
	return m, store
}

func TestOpenCreatesDefaultWorkspace(t *testing.T) {
	m, _ := newTestManager(t, time.Millisecond)
	err := m.Do(context.Background(), "1", func(ws *site.Workspace) error {
		assert.Equal(t, []string{site.DefaultPageName}, ws.Pages())
		assert.True(t, ws.Empty())
		return nil
	})
	require.NoError(t, err)
}

func TestSaveAndReopen(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t, time.Millisecond)

	var id string
	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		id = ws.Editor().Append(blocks.HeroBanner).ID
		return ws.Editor().ApplyEdit(id, blocks.Props{"title": "Visit Us"})
	}))
	require.NoError(t, m.Save(ctx, "1"))
	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		assert.False(t, ws.Dirty())
		return nil
	}))

	other := New(blocks.DefaultRegistry(), store, Options{})
	defer other.Close()
	require.NoError(t, other.Do(ctx, "1", func(ws *site.Workspace) error {
		b, ok := ws.Editor().Block(id)
		require.True(t, ok)
		assert.Equal(t, "Visit Us", b.Props.String("title"))
		return nil
	}))
}

func TestSavedIgnoresUnsavedEdits(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, time.Millisecond)

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		ws.Editor().Append(blocks.HeroBanner)
		return nil
	}))
	require.NoError(t, m.Save(ctx, "1"))
	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		ws.Editor().Append(blocks.ContactForm)
		return nil
	}))

	st, found, err := m.Saved(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, st.CurrentBlocks(), 1)
}

func TestPublishCopiesSavedPages(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, 150*time.Millisecond)

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		ws.Editor().Append(blocks.HeroBanner)
		return nil
	}))
	require.NoError(t, m.Save(ctx, "1"))
	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		ws.Editor().Append(blocks.ContactForm)
		return nil
	}))

	started, err := m.Publish(ctx, "1")
	require.NoError(t, err)
	require.True(t, started)

	again, err := m.Publish(ctx, "1")
	require.NoError(t, err)
	assert.False(t, again)

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		status, _ := ws.Publisher().Status()
		assert.Equal(t, site.StatusPublishing, status)
		return nil
	}))

	var published *site.PublishedSite
	require.Eventually(t, func() bool {
		published, err = m.Published(ctx, "1")
		return err == nil && published != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, published.Pages, 1)
	assert.Len(t, published.Pages[0].Blocks, 1)

	st, _, err := m.Saved(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, site.StatusPublished, st.Status)
	assert.NotNil(t, st.LastPublished)
}

func TestCloseCancelsPublish(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := New(blocks.DefaultRegistry(), store, Options{PublishDelay: 50 * time.Millisecond})

	started, err := m.Publish(ctx, "1")
	require.NoError(t, err)
	require.True(t, started)
	m.Close()

	time.Sleep(120 * time.Millisecond)
	p, err := site.NewShim(store).LoadPublished(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.ErrorIs(t, m.Do(ctx, "1", func(*site.Workspace) error { return nil }), ErrClosed)
}

func TestApplyTemplate(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, time.Millisecond)
	catalog, err := site.LoadCatalog()
	require.NoError(t, err)
	tpl, err := catalog.Get("classic")
	require.NoError(t, err)

	require.NoError(t, m.ApplyTemplate(ctx, "1", tpl, false))
	assert.ErrorIs(t, m.ApplyTemplate(ctx, "1", tpl, false), site.ErrSiteNotEmpty)
	require.NoError(t, m.ApplyTemplate(ctx, "1", tpl, true))

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		assert.Equal(t, []string{"Home", "About", "Contact"}, ws.Pages())
		return nil
	}))
}

func TestConcurrentOwners(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := []string{"1", "2"}[i%2]
			_ = m.Do(ctx, owner, func(ws *site.Workspace) error {
				ws.Editor().Append(blocks.HeroBanner)
				return nil
			})
		}(i)
	}
	wg.Wait()

	for _, owner := range []string{"1", "2"} {
		require.NoError(t, m.Do(ctx, owner, func(ws *site.Workspace) error {
			assert.Equal(t, 10, ws.Editor().Document().Len())
			return nil
		}))
	}
}

func TestEvictSavesDirtyWorkspace(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t, time.Millisecond)

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		ws.Editor().Append(blocks.HeroBanner)
		return nil
	}))
	m.Evict("1")

	values, err := store.GetAll(ctx, "1")
	require.NoError(t, err)
	assert.Contains(t, values[site.KeyComponents], blocks.HeroBanner)

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		assert.Equal(t, 1, ws.Editor().Document().Len())
		assert.False(t, ws.Dirty())
		return nil
	}))
}

func TestLeastRecentWorkspaceIsEvicted(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := New(blocks.DefaultRegistry(), store, Options{Variant: site.VariantBuilder, PublishDelay: time.Hour, MaxWorkspaces: 1})
	t.Cleanup(m.Close)

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		ws.SetName("Green Valley")
		ws.Editor().Append(blocks.AboutSection)
		return nil
	}))
	started, err := m.Publish(ctx, "1")
	require.NoError(t, err)
	require.True(t, started)

	require.NoError(t, m.Do(ctx, "2", func(ws *site.Workspace) error {
		ws.Editor().Append(blocks.HeroBanner)
		return nil
	}))

	st, found, err := m.Saved(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Green Valley", st.Name)
	assert.Equal(t, site.StatusDraft, st.Status)
	require.Len(t, st.Pages, 1)
	require.Len(t, st.Pages[0].Blocks, 1)
	assert.Equal(t, blocks.AboutSection, st.Pages[0].Blocks[0].Type)

	require.NoError(t, m.Do(ctx, "1", func(ws *site.Workspace) error {
		assert.Equal(t, "Green Valley", ws.Name)
		assert.Equal(t, 1, ws.Editor().Document().Len())
		status, _ := ws.Publisher().Status()
		assert.Equal(t, site.StatusDraft, status)
		return nil
	}))

	// Reopening owner 1 pushed owner 2 out in turn.
	values, err := store.GetAll(ctx, "2")
	require.NoError(t, err)
	assert.Contains(t, values[site.KeyComponents], blocks.HeroBanner)
}

func TestEvictWaitsForConcurrentWork(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := New(blocks.DefaultRegistry(), store, Options{Variant: site.VariantBuilder, MaxWorkspaces: 2})
	t.Cleanup(m.Close)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := []string{"1", "2", "3"}[i%3]
			assert.NoError(t, m.Do(ctx, owner, func(ws *site.Workspace) error {
				ws.Editor().Append(blocks.HeroBanner)
				return nil
			}))
		}(i)
	}
	wg.Wait()

	for _, owner := range []string{"1", "2", "3"} {
		require.NoError(t, m.Do(ctx, owner, func(ws *site.Workspace) error {
			assert.Equal(t, 10, ws.Editor().Document().Len(), owner)
			return nil
		}))
	}
}
