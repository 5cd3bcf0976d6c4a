package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/internal/engine"
	"github.com/mcdev12/courtside/go/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (f *stubFetcher) Fetch(ctx context.Context) feed.Result {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
		}
	}
	return feed.Result{Games: feed.FallbackGames(), Source: clients.ExternalSourceFallback}
}

type recordingSink struct {
	mu        sync.Mutex
	snapshots []engine.Snapshot
}

func (s *recordingSink) SetGames(snapshot engine.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

func TestRefreshAppliesSnapshot(t *testing.T) {
	fetcher := &stubFetcher{}
	sink := &recordingSink{}
	r := NewRefresher(fetcher, sink, clockwork.NewFakeClock(), time.Minute)

	var hooked []feed.Result
	r.OnRefresh(func(result feed.Result) { hooked = append(hooked, result) })

	assert.True(t, r.Refresh(context.Background()))
	require.Equal(t, 1, sink.count())
	assert.Equal(t, clients.ExternalSourceFallback, sink.snapshots[0].Source)
	assert.Len(t, sink.snapshots[0].Games, 3)
	assert.Len(t, hooked, 1)
}

func TestRefreshWhilePendingIsNoop(t *testing.T) {
	fetcher := &stubFetcher{started: make(chan struct{}, 1), release: make(chan struct{})}
	sink := &recordingSink{}
	r := NewRefresher(fetcher, sink, clockwork.NewFakeClock(), time.Minute)

	firstDone := make(chan bool)
	go func() { firstDone <- r.Refresh(context.Background()) }()
	<-fetcher.started

	assert.False(t, r.Refresh(context.Background()))
	assert.Equal(t, int32(1), fetcher.calls.Load())

	close(fetcher.release)
	assert.True(t, <-firstDone)
	assert.Equal(t, 1, sink.count())

	fetcher.started = nil
	assert.True(t, r.Refresh(context.Background()))
	assert.Equal(t, 2, sink.count())
}

func TestRefreshCancelledDiscardsResult(t *testing.T) {
	sink := &recordingSink{}
	r := NewRefresher(&stubFetcher{}, sink, clockwork.NewFakeClock(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, r.Refresh(ctx))
	assert.Equal(t, 0, sink.count())
}

func TestStartPollsOnInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	fetcher := &stubFetcher{}
	sink := &recordingSink{}
	r := NewRefresher(fetcher, sink, clock, DefaultPollInterval)

	require.True(t, r.Start(context.Background()))
	defer r.Stop()

	assert.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond, "immediate fetch")

	clock.Advance(DefaultPollInterval)
	assert.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 5*time.Millisecond)

	clock.Advance(DefaultPollInterval)
	assert.Eventually(t, func() bool { return sink.count() == 3 }, time.Second, 5*time.Millisecond)
}

func TestStopTearsDownPolling(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sink := &recordingSink{}
	r := NewRefresher(&stubFetcher{}, sink, clock, time.Minute)

	require.True(t, r.Start(context.Background()))
	assert.False(t, r.Start(context.Background()), "already running")
	assert.True(t, r.Running())
	assert.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)

	r.Stop()
	assert.False(t, r.Running())

	clock.Advance(time.Hour)
	assert.Never(t, func() bool { return sink.count() > 1 }, 50*time.Millisecond, 5*time.Millisecond)

	r.Stop() // no-op when not running
	require.True(t, r.Start(context.Background()), "restartable")
	r.Stop()
}

func TestNewRefresherDefaults(t *testing.T) {
	r := NewRefresher(&stubFetcher{}, &recordingSink{}, nil, 0)
	assert.Equal(t, DefaultPollInterval, r.interval)
	assert.NotNil(t, r.clock)
}
