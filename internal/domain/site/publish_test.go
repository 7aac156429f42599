package site

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSwitchesImmediatelyThenCompletes(t *testing.T) {
	p := NewPublisher(StatusDraft, nil)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	done := make(chan time.Time, 1)
	require.True(t, p.Start(context.Background(), 30*time.Millisecond, func(at time.Time) { done <- at }))

	status, last := p.Status()
	assert.Equal(t, StatusPublishing, status)
	assert.Nil(t, last)

	select {
	case at := <-done:
		assert.Equal(t, fixed, at)
	case <-time.After(2 * time.Second):
		t.Fatal("publish did not complete")
	}
	status, last = p.Status()
	assert.Equal(t, StatusPublished, status)
	require.NotNil(t, last)
	assert.Equal(t, fixed, *last)
}

func TestPublishNotCompleteBeforeDelay(t *testing.T) {
	p := NewPublisher(StatusDraft, nil)
	require.True(t, p.Start(context.Background(), 200*time.Millisecond, nil))

	time.Sleep(50 * time.Millisecond)
	status, last := p.Status()
	assert.Equal(t, StatusPublishing, status)
	assert.Nil(t, last)

	assert.Eventually(t, func() bool {
		s, _ := p.Status()
		return s == StatusPublished
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPublishWhilePublishingIsRejected(t *testing.T) {
	p := NewPublisher(StatusDraft, nil)
	require.True(t, p.Start(context.Background(), time.Hour, nil))
	assert.False(t, p.Start(context.Background(), time.Millisecond, nil))
	p.Cancel()
}

func TestCancelledPublishHasNoEffect(t *testing.T) {
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPublisher(StatusPublished, &earlier)

	var called atomic.Bool
	require.True(t, p.Start(context.Background(), 30*time.Millisecond, func(time.Time) { called.Store(true) }))
	p.Cancel()

	status, last := p.Status()
	assert.Equal(t, StatusPublished, status)
	require.NotNil(t, last)
	assert.Equal(t, earlier, *last)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, called.Load())
	status, _ = p.Status()
	assert.Equal(t, StatusPublished, status)
}

func TestContextCancelRollsBack(t *testing.T) {
	p := NewPublisher(StatusDraft, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, p.Start(ctx, time.Hour, nil))
	cancel()

	assert.Eventually(t, func() bool {
		s, _ := p.Status()
		return s == StatusDraft
	}, time.Second, 5*time.Millisecond)
}

func TestRestartAfterCancel(t *testing.T) {
	p := NewPublisher(StatusDraft, nil)
	require.True(t, p.Start(context.Background(), time.Hour, nil))
	p.Cancel()
	require.True(t, p.Start(context.Background(), 10*time.Millisecond, nil))

	assert.Eventually(t, func() bool {
		s, _ := p.Status()
		return s == StatusPublished
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSettledHidesRunningPublish(t *testing.T) {
	p := NewPublisher(StatusDraft, nil)
	require.True(t, p.Start(context.Background(), time.Hour, nil))
	defer p.Cancel()

	status, _ := p.Settled()
	assert.Equal(t, StatusDraft, status)
}

func TestStoredPublishingReadsAsDraft(t *testing.T) {
	p := NewPublisher(StatusPublishing, nil)
	status, _ := p.Status()
	assert.Equal(t, StatusDraft, status)
}
