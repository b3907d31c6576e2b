package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/repositories"
	"github.com/luckyorbit/leaderboard-backend/internal/utils"
	"golang.org/x/exp/slog"
)

// Ranking keys
const (
	RankingKeyWager = "wager"
	RankingKeyLevel = "level"
)

// MaxRows is the number of rows the leaderboard is truncated to
const MaxRows = 10

// prizeRankCutoff is the last rank that receives a prize
const prizeRankCutoff = 5

// defaultPrizes is the static per-rank prize table used when no prize tiers
// are stored
var defaultPrizes = map[int]string{
	1: "$500",
	2: "$250",
	3: "$125",
	4: "$75",
	5: "$50",
}

// Compile-time check to ensure LeaderboardServiceImpl implements LeaderboardService
var _ LeaderboardService = (*LeaderboardServiceImpl)(nil)

// LeaderboardServiceImpl fetches raw entries, normalizes and ranks them, and
// holds the snapshot renderers read from
type LeaderboardServiceImpl struct {
	feed       FeedClient
	prizeRepo  repositories.PrizeRepository
	rankingKey string
	clock      clockwork.Clock

	// refreshSeq orders refreshes; a completed refresh is applied only if
	// nothing newer has been applied already, so a slow fetch that resolves
	// after a faster later one is dropped instead of rendering out of order.
	refreshSeq uint64

	mu         sync.RWMutex
	appliedSeq uint64
	snapshot   models.LeaderboardSnapshot
}

// NewLeaderboardService creates a new LeaderboardServiceImpl
func NewLeaderboardService(feed FeedClient, prizeRepo repositories.PrizeRepository, rankingKey string, clock clockwork.Clock) *LeaderboardServiceImpl {
	return &LeaderboardServiceImpl{
		feed:       feed,
		prizeRepo:  prizeRepo,
		rankingKey: rankingKey,
		clock:      clock,
		snapshot: models.LeaderboardSnapshot{
			State: models.SnapshotEmpty,
			Rows:  []models.RankedRow{},
		},
	}
}

// Refresh fetches, ranks and applies a new snapshot
func (s *LeaderboardServiceImpl) Refresh(ctx context.Context) {
	seq := atomic.AddUint64(&s.refreshSeq, 1)

	entries, err := s.feed.FetchEntries(ctx)
	now := s.clock.Now()

	var snap models.LeaderboardSnapshot
	if err != nil {
		slog.Error("leaderboard feed fetch failed", "error", err)
		snap = models.LeaderboardSnapshot{
			State:     models.SnapshotUnavailable,
			Rows:      []models.RankedRow{},
			FetchedAt: now,
		}
	} else {
		rows := s.Rank(ctx, entries)
		state := models.SnapshotOK
		if len(rows) == 0 {
			state = models.SnapshotEmpty
		}
		snap = models.LeaderboardSnapshot{
			State:     state,
			Rows:      rows,
			FetchedAt: now,
		}
	}

	s.apply(seq, snap)
}

// apply installs a snapshot unless a newer refresh has already been applied
func (s *LeaderboardServiceImpl) apply(seq uint64, snap models.LeaderboardSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		slog.Warn("dropping stale leaderboard refresh", "seq", seq, "appliedSeq", s.appliedSeq)
		return
	}
	s.appliedSeq = seq
	s.snapshot = snap
}

// Snapshot returns the last applied snapshot
func (s *LeaderboardServiceImpl) Snapshot() models.LeaderboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Rank normalizes, filters, sorts and truncates raw entries and attaches
// prizes to the top ranks
func (s *LeaderboardServiceImpl) Rank(ctx context.Context, entries []models.Entry) []models.RankedRow {
	normalized := s.normalize(entries)

	sort.SliceStable(normalized, func(i, j int) bool {
		if normalized[i].RankingValue != normalized[j].RankingValue {
			return normalized[i].RankingValue > normalized[j].RankingValue
		}
		// Tier ranking breaks ties alphabetically; wager ranking keeps
		// insertion order among equal values.
		if s.rankingKey == RankingKeyLevel {
			return normalized[i].Username < normalized[j].Username
		}
		return false
	})

	if len(normalized) > MaxRows {
		normalized = normalized[:MaxRows]
	}

	prizes := s.prizeTable(ctx)

	rows := make([]models.RankedRow, 0, len(normalized))
	for i, entry := range normalized {
		rank := i + 1
		row := models.RankedRow{
			Rank:         rank,
			Username:     entry.Username,
			Value:        entry.RankingValue,
			DisplayValue: s.displayValue(entry),
		}
		if rank <= prizeRankCutoff {
			row.Prize = prizes[rank]
		}
		rows = append(rows, row)
	}
	return rows
}

// normalize coerces raw entries and drops the invalid ones: empty usernames
// after trimming, and ranking fields that are present but not numeric
func (s *LeaderboardServiceImpl) normalize(entries []models.Entry) []models.NormalizedEntry {
	normalized := make([]models.NormalizedEntry, 0, len(entries))
	for _, e := range entries {
		username := strings.TrimSpace(string(e.Username))
		if username == "" {
			continue
		}

		field := e.Wager
		if s.rankingKey == RankingKeyLevel {
			field = e.Level
		}
		if field.Present && !field.Valid {
			continue
		}
		value := 0.0
		if field.Present {
			value = field.Value
		}

		normalized = append(normalized, models.NormalizedEntry{
			Username:     username,
			RankingValue: value,
			Level:        e.Level.Value,
			HasLevel:     e.Level.Present && e.Level.Valid,
		})
	}
	return normalized
}

// prizeTable returns rank -> prize, preferring stored tiers over the static
// defaults
func (s *LeaderboardServiceImpl) prizeTable(ctx context.Context) map[int]string {
	if s.prizeRepo != nil {
		tiers, err := s.prizeRepo.FindAll(ctx)
		if err != nil {
			slog.Warn("failed to load prize tiers, using defaults", "error", err)
		} else if len(tiers) > 0 {
			table := make(map[int]string, len(tiers))
			for _, tier := range tiers {
				table[tier.Position] = tier.Prize
			}
			return table
		}
	}
	return defaultPrizes
}

func (s *LeaderboardServiceImpl) displayValue(entry models.NormalizedEntry) string {
	if s.rankingKey == RankingKeyLevel {
		return utils.FormatLevel(entry.Level, entry.HasLevel)
	}
	return utils.FormatUSD(entry.RankingValue)
}
