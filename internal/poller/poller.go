package poller

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/services"
	"golang.org/x/exp/slog"
)

// Refresh cadences. Fixed, not configurable at runtime.
const (
	LeaderboardInterval = 30 * time.Second
	CountdownInterval   = time.Second
)

// Broadcaster pushes updated view models to connected renderers
type Broadcaster interface {
	BroadcastLeaderboard(models.LeaderboardSnapshot)
	BroadcastCountdown(view models.CountdownView)
}

// Poller drives the two periodic tasks: the leaderboard refresh every 30s and
// the countdown tick every second. The tasks share no state and run on
// independent timers; a slow feed fetch never delays a countdown tick.
type Poller struct {
	leaderboard services.LeaderboardService
	countdown   services.CountdownService
	hub         Broadcaster
	clock       clockwork.Clock
}

// New creates a new Poller. hub may be nil.
func New(leaderboard services.LeaderboardService, countdown services.CountdownService, hub Broadcaster, clock clockwork.Clock) *Poller {
	return &Poller{
		leaderboard: leaderboard,
		countdown:   countdown,
		hub:         hub,
		clock:       clock,
	}
}

// Start launches both loops. They stop when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.leaderboardLoop(ctx)
	go p.countdownLoop(ctx)
}

func (p *Poller) leaderboardLoop(ctx context.Context) {
	// Each refresh runs in its own goroutine so a slow fetch cannot block
	// the cadence; the service drops out-of-order completions by sequence.
	go p.refresh(ctx)

	ticker := p.clock.NewTicker(LeaderboardInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			go p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	p.leaderboard.Refresh(ctx)
	if p.hub != nil {
		p.hub.BroadcastLeaderboard(p.leaderboard.Snapshot())
	}
}

func (p *Poller) countdownLoop(ctx context.Context) {
	if p.tick(ctx) {
		return
	}

	ticker := p.clock.NewTicker(CountdownInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if p.tick(ctx) {
				return
			}
		}
	}
}

// tick runs one countdown tick and reports whether the loop should stop. Only
// an externally owned countdown that has ended stops the loop; every failure
// mode degrades to a placeholder display and the cadence continues.
func (p *Poller) tick(ctx context.Context) bool {
	view := p.countdown.Tick(ctx)
	if p.hub != nil {
		p.hub.BroadcastCountdown(view)
	}
	if view.Done {
		slog.Info("countdown ended, stopping tick loop")
		return true
	}
	return false
}
