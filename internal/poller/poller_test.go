package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
)

type stubLeaderboard struct {
	refreshed chan struct{}
}

func (s *stubLeaderboard) Refresh(ctx context.Context) {
	s.refreshed <- struct{}{}
}

func (s *stubLeaderboard) Snapshot() models.LeaderboardSnapshot {
	return models.LeaderboardSnapshot{State: models.SnapshotEmpty}
}

type stubCountdown struct {
	mu     sync.Mutex
	ticks  int
	doneAt int // Tick reports done on this call number; 0 means never
	ticked chan models.CountdownView
}

func (s *stubCountdown) Tick(ctx context.Context) models.CountdownView {
	s.mu.Lock()
	s.ticks++
	done := s.doneAt > 0 && s.ticks >= s.doneAt
	s.mu.Unlock()

	view := models.CountdownView{Active: true, Display: "1m 0s", Done: done}
	s.ticked <- view
	return view
}

func (s *stubCountdown) View() models.CountdownView {
	return models.CountdownView{}
}

func waitFor[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestPollerRunsBothLoops(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lb := &stubLeaderboard{refreshed: make(chan struct{}, 16)}
	cd := &stubCountdown{ticked: make(chan models.CountdownView, 64)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	New(lb, cd, nil, clock).Start(ctx)

	// Both tasks run once immediately
	waitFor(t, lb.refreshed, "initial refresh")
	waitFor(t, cd.ticked, "initial countdown tick")

	// Wait for both tickers to be armed before advancing the clock
	clock.BlockUntil(2)

	clock.Advance(CountdownInterval)
	waitFor(t, cd.ticked, "second countdown tick")

	for i := 0; i < 29; i++ {
		clock.Advance(CountdownInterval)
		waitFor(t, cd.ticked, "countdown tick")
	}
	// 30s elapsed in total: the leaderboard ticker fires
	waitFor(t, lb.refreshed, "scheduled refresh")
}

func TestCountdownLoopStopsWhenDone(t *testing.T) {
	clock := clockwork.NewFakeClock()
	lb := &stubLeaderboard{refreshed: make(chan struct{}, 16)}
	cd := &stubCountdown{doneAt: 2, ticked: make(chan models.CountdownView, 64)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	New(lb, cd, nil, clock).Start(ctx)

	first := waitFor(t, cd.ticked, "initial countdown tick")
	if first.Done {
		t.Fatalf("first tick must not be done yet")
	}

	clock.BlockUntil(2)
	clock.Advance(CountdownInterval)
	second := waitFor(t, cd.ticked, "final countdown tick")
	if !second.Done {
		t.Fatalf("second tick should report done")
	}

	// The countdown loop has exited; only the leaderboard ticker remains
	clock.BlockUntil(1)
	clock.Advance(CountdownInterval)
	select {
	case <-cd.ticked:
		t.Fatalf("countdown ticked after it ended")
	case <-time.After(100 * time.Millisecond):
	}
}
