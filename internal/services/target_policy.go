package services

import (
	"context"
	"time"

	"github.com/luckyorbit/leaderboard-backend/internal/repositories"
)

// Countdown policies
const (
	PolicyMonthly  = "monthly"
	PolicyRolling  = "rolling"
	PolicyExternal = "external"
)

// RollingWindow is the fixed duration of the rolling-window policy
const RollingWindow = 31 * 24 * time.Hour

// DisplayStyle selects how the remaining duration is rendered
type DisplayStyle int

// Display styles. StyleFull always shows all four units plus a zone label;
// StyleCompact shows only the most significant non-zero units.
const (
	StyleFull DisplayStyle = iota
	StyleCompact
)

// TargetPolicy resolves the instant the countdown counts down to. Exactly one
// policy governs a deployment; they are never mixed.
type TargetPolicy interface {
	// Resolve returns the current target. ok is false when no countdown is
	// configured (external policy with no end date stored).
	Resolve(ctx context.Context, now time.Time) (target time.Time, ok bool, err error)

	// Style returns the display style used with this policy
	Style() DisplayStyle

	// OwnsCompletion reports whether an elapsed target ends the countdown
	// permanently instead of being re-derived on the next tick
	OwnsCompletion() bool
}

// MonthlyBoundaryPolicy targets the first day of the next calendar month at
// local midnight in a fixed reference zone. The target is derived from a
// zoned wall-clock read, so it stays correct across DST transitions, and it
// is always strictly in the future: evaluated exactly at a month boundary it
// advances to the following month.
type MonthlyBoundaryPolicy struct {
	loc *time.Location
}

// NewMonthlyBoundaryPolicy creates a MonthlyBoundaryPolicy for the named zone
func NewMonthlyBoundaryPolicy(timezone string) (*MonthlyBoundaryPolicy, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &MonthlyBoundaryPolicy{loc: loc}, nil
}

// Resolve implements TargetPolicy
func (p *MonthlyBoundaryPolicy) Resolve(_ context.Context, now time.Time) (time.Time, bool, error) {
	local := now.In(p.loc)
	// time.Date normalizes month 13 into January of the next year
	target := time.Date(local.Year(), local.Month()+1, 1, 0, 0, 0, 0, p.loc)
	return target, true, nil
}

// Style implements TargetPolicy
func (p *MonthlyBoundaryPolicy) Style() DisplayStyle { return StyleFull }

// OwnsCompletion implements TargetPolicy
func (p *MonthlyBoundaryPolicy) OwnsCompletion() bool { return false }

// RollingWindowPolicy targets a persisted instant a fixed window ahead of the
// moment it was (re)computed. An elapsed or missing target is replaced by
// now + window and persisted before being used.
type RollingWindowPolicy struct {
	repo   repositories.ResetTargetRepository
	window time.Duration
}

// NewRollingWindowPolicy creates a RollingWindowPolicy backed by the given
// repository
func NewRollingWindowPolicy(repo repositories.ResetTargetRepository) *RollingWindowPolicy {
	return &RollingWindowPolicy{repo: repo, window: RollingWindow}
}

// Resolve implements TargetPolicy
func (p *RollingWindowPolicy) Resolve(ctx context.Context, now time.Time) (time.Time, bool, error) {
	stored, err := p.repo.Get(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if stored != nil {
		target, perr := stored.Parse()
		if perr == nil && target.After(now) {
			return target, true, nil
		}
		// Unparseable targets are treated like elapsed ones and replaced
	}

	target := now.Add(p.window)
	if err := p.repo.Save(ctx, target); err != nil {
		return time.Time{}, false, err
	}
	return target, true, nil
}

// Style implements TargetPolicy
func (p *RollingWindowPolicy) Style() DisplayStyle { return StyleFull }

// OwnsCompletion implements TargetPolicy
func (p *RollingWindowPolicy) OwnsCompletion() bool { return false }

// ExternalAuthorityPolicy reads the target from the stored leaderboard
// settings and treats it as authoritative: no end date means no countdown,
// and an elapsed end date ends the countdown for good.
type ExternalAuthorityPolicy struct {
	settings repositories.SettingsRepository
}

// NewExternalAuthorityPolicy creates an ExternalAuthorityPolicy backed by the
// given settings repository
func NewExternalAuthorityPolicy(settings repositories.SettingsRepository) *ExternalAuthorityPolicy {
	return &ExternalAuthorityPolicy{settings: settings}
}

// Resolve implements TargetPolicy
func (p *ExternalAuthorityPolicy) Resolve(ctx context.Context, _ time.Time) (time.Time, bool, error) {
	settings, err := p.settings.GetSettings(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if settings.EndDate == nil {
		return time.Time{}, false, nil
	}
	return *settings.EndDate, true, nil
}

// Style implements TargetPolicy
func (p *ExternalAuthorityPolicy) Style() DisplayStyle { return StyleCompact }

// OwnsCompletion implements TargetPolicy
func (p *ExternalAuthorityPolicy) OwnsCompletion() bool { return true }
