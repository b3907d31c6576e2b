package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/utils"
	"golang.org/x/exp/slog"
)

// Placeholder is displayed when a tick fails; the tick cadence continues
const Placeholder = "-"

// EndedLabel is displayed once an externally owned countdown has elapsed
const EndedLabel = "Ended"

// Compile-time check to ensure CountdownServiceImpl implements CountdownService
var _ CountdownService = (*CountdownServiceImpl)(nil)

// CountdownServiceImpl derives the remaining-time display from the injected
// target policy once per tick
type CountdownServiceImpl struct {
	policy    TargetPolicy
	clock     clockwork.Clock
	zoneLabel string

	mu   sync.RWMutex
	view models.CountdownView
}

// NewCountdownService creates a new CountdownServiceImpl
func NewCountdownService(policy TargetPolicy, clock clockwork.Clock, zoneLabel string) *CountdownServiceImpl {
	return &CountdownServiceImpl{
		policy:    policy,
		clock:     clock,
		zoneLabel: zoneLabel,
		view:      models.CountdownView{Display: Placeholder},
	}
}

// Tick recomputes the countdown view
func (s *CountdownServiceImpl) Tick(ctx context.Context) models.CountdownView {
	view := s.compute(ctx)
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return view
}

// View returns the last computed view
func (s *CountdownServiceImpl) View() models.CountdownView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *CountdownServiceImpl) compute(ctx context.Context) models.CountdownView {
	now := s.clock.Now()

	target, ok, err := s.policy.Resolve(ctx, now)
	if err != nil {
		slog.Warn("countdown target resolution failed", "error", err)
		return models.CountdownView{Active: true, Display: Placeholder}
	}
	if !ok {
		return models.CountdownView{Active: false}
	}

	remaining := int64(target.Sub(now).Seconds())
	if remaining <= 0 {
		if s.policy.OwnsCompletion() {
			return models.CountdownView{Active: true, Display: EndedLabel, Target: &target, Done: true}
		}
		remaining = 0
	}

	return models.CountdownView{
		Active:  true,
		Display: s.format(remaining),
		Target:  &target,
	}
}

func (s *CountdownServiceImpl) format(remaining int64) string {
	days, hours, minutes, secs := utils.DecomposeDuration(remaining)

	if s.policy.Style() == StyleCompact {
		switch {
		case days > 0:
			return fmt.Sprintf("%dd %dh", days, hours)
		case hours > 0:
			return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
		case minutes > 0:
			return fmt.Sprintf("%dm %ds", minutes, secs)
		default:
			return fmt.Sprintf("%ds", secs)
		}
	}

	out := fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, secs)
	if s.zoneLabel != "" {
		out += " " + s.zoneLabel
	}
	return out
}
