package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
)

type stubFeed struct {
	entries []models.Entry
	err     error
}

func (f *stubFeed) FetchEntries(ctx context.Context) ([]models.Entry, error) {
	return f.entries, f.err
}

type stubPrizeRepo struct {
	tiers []*models.PrizeTier
	err   error
}

func (r *stubPrizeRepo) FindAll(ctx context.Context) ([]*models.PrizeTier, error) {
	return r.tiers, r.err
}

func (r *stubPrizeRepo) ReplaceAll(ctx context.Context, tiers []*models.PrizeTier) error {
	r.tiers = tiers
	return nil
}

func decodeFeed(t *testing.T, payload string) []models.Entry {
	t.Helper()
	var entries []models.Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		t.Fatalf("failed to decode feed payload: %v", err)
	}
	return entries
}

func newWagerService(feed FeedClient) *LeaderboardServiceImpl {
	return NewLeaderboardService(feed, &stubPrizeRepo{}, RankingKeyWager, clockwork.NewFakeClock())
}

func TestRankTruncatesToMaxRows(t *testing.T) {
	payload := `[
		{"username":"p1","wager":1},{"username":"p2","wager":2},
		{"username":"p3","wager":3},{"username":"p4","wager":4},
		{"username":"p5","wager":5},{"username":"p6","wager":6},
		{"username":"p7","wager":7},{"username":"p8","wager":8},
		{"username":"p9","wager":9},{"username":"p10","wager":10},
		{"username":"p11","wager":11},{"username":"p12","wager":12}
	]`
	svc := newWagerService(nil)
	rows := svc.Rank(context.Background(), decodeFeed(t, payload))
	if len(rows) != MaxRows {
		t.Fatalf("expected %d rows, got %d", MaxRows, len(rows))
	}
	if rows[0].Username != "p12" || rows[0].Rank != 1 {
		t.Fatalf("expected p12 at rank 1, got %q at rank %d", rows[0].Username, rows[0].Rank)
	}
	if rows[9].Username != "p3" {
		t.Fatalf("expected p3 at rank 10, got %q", rows[9].Username)
	}
}

func TestRankWagerSortStableNonIncreasing(t *testing.T) {
	payload := `[
		{"username":"alice","wager":100},
		{"username":"zed","wager":250},
		{"username":"bob","wager":100},
		{"username":"carol","wager":100}
	]`
	svc := newWagerService(nil)
	rows := svc.Rank(context.Background(), decodeFeed(t, payload))

	for i := 1; i < len(rows); i++ {
		if rows[i].Value > rows[i-1].Value {
			t.Fatalf("rows not non-increasing at index %d", i)
		}
	}
	// Equal wagers keep insertion order: alice, bob, carol
	want := []string{"zed", "alice", "bob", "carol"}
	for i, name := range want {
		if rows[i].Username != name {
			t.Fatalf("position %d: got %q want %q", i, rows[i].Username, name)
		}
	}
}

func TestRankLevelTieBreakAlphabetical(t *testing.T) {
	payload := `[
		{"username":"zed","level":40},
		{"username":"alice","level":40},
		{"username":"mike","level":55},
		{"username":"bob","level":40}
	]`
	svc := NewLeaderboardService(nil, &stubPrizeRepo{}, RankingKeyLevel, clockwork.NewFakeClock())
	rows := svc.Rank(context.Background(), decodeFeed(t, payload))

	want := []string{"mike", "alice", "bob", "zed"}
	for i, name := range want {
		if rows[i].Username != name {
			t.Fatalf("position %d: got %q want %q", i, rows[i].Username, name)
		}
	}
	if rows[0].DisplayValue != "55" {
		t.Fatalf("expected level display 55, got %q", rows[0].DisplayValue)
	}
}

func TestRankDropsInvalidEntries(t *testing.T) {
	payload := `[
		{"username":"valid","wager":500},
		{"username":"","wager":900},
		{"username":"   ","wager":900},
		{"username":"garbage","wager":"not-a-number"},
		{"username":"boolwager","wager":true},
		{"username":"stringnum","wager":"750"},
		{"username":"nowager"}
	]`
	svc := newWagerService(nil)
	rows := svc.Rank(context.Background(), decodeFeed(t, payload))

	if len(rows) != 3 {
		t.Fatalf("expected 3 surviving rows, got %d", len(rows))
	}
	// "750" coerces like the browser variants did; absent wager defaults to 0
	want := []string{"stringnum", "valid", "nowager"}
	for i, name := range want {
		if rows[i].Username != name {
			t.Fatalf("position %d: got %q want %q", i, rows[i].Username, name)
		}
	}
	if rows[2].Value != 0 {
		t.Fatalf("absent wager should default to 0, got %v", rows[2].Value)
	}
}

func TestRankPrizeAttachment(t *testing.T) {
	payload := `[
		{"username":"p1","wager":8},{"username":"p2","wager":7},
		{"username":"p3","wager":6},{"username":"p4","wager":5},
		{"username":"p5","wager":4},{"username":"p6","wager":3},
		{"username":"p7","wager":2}
	]`
	svc := newWagerService(nil)
	rows := svc.Rank(context.Background(), decodeFeed(t, payload))

	for _, row := range rows {
		if row.Rank <= 5 && row.Prize == "" {
			t.Fatalf("rank %d missing prize", row.Rank)
		}
		if row.Rank > 5 && row.Prize != "" {
			t.Fatalf("rank %d unexpectedly has prize %q", row.Rank, row.Prize)
		}
	}
}

func TestRankPrizeTiersOverrideDefaults(t *testing.T) {
	repo := &stubPrizeRepo{tiers: []*models.PrizeTier{
		{Position: 1, Prize: "1000 tokens"},
		{Position: 2, Prize: "400 tokens"},
	}}
	svc := NewLeaderboardService(nil, repo, RankingKeyWager, clockwork.NewFakeClock())
	rows := svc.Rank(context.Background(), decodeFeed(t, `[
		{"username":"a","wager":2},{"username":"b","wager":1},{"username":"c","wager":0}
	]`))

	if rows[0].Prize != "1000 tokens" || rows[1].Prize != "400 tokens" {
		t.Fatalf("stored tiers not applied: %q, %q", rows[0].Prize, rows[1].Prize)
	}
	// Stored table has no tier for rank 3
	if rows[2].Prize != "" {
		t.Fatalf("rank 3 should have no prize, got %q", rows[2].Prize)
	}
}

func TestRankCurrencyDisplay(t *testing.T) {
	svc := newWagerService(nil)
	rows := svc.Rank(context.Background(), decodeFeed(t, `[{"username":"whale","wager":1234567.8}]`))
	if rows[0].DisplayValue != "$1,234,568" {
		t.Fatalf("unexpected currency display %q", rows[0].DisplayValue)
	}
}

func TestRefreshStates(t *testing.T) {
	feed := &stubFeed{err: errors.New("boom")}
	svc := newWagerService(feed)

	svc.Refresh(context.Background())
	if snap := svc.Snapshot(); snap.State != models.SnapshotUnavailable {
		t.Fatalf("expected unavailable, got %q", snap.State)
	}

	feed.err = nil
	feed.entries = []models.Entry{}
	svc.Refresh(context.Background())
	if snap := svc.Snapshot(); snap.State != models.SnapshotEmpty {
		t.Fatalf("expected empty, got %q", snap.State)
	}

	feed.entries = decodeFeed(t, `[{"username":"a","wager":10}]`)
	svc.Refresh(context.Background())
	snap := svc.Snapshot()
	if snap.State != models.SnapshotOK || len(snap.Rows) != 1 {
		t.Fatalf("expected ok with 1 row, got %q with %d rows", snap.State, len(snap.Rows))
	}
}

func TestStaleRefreshDropped(t *testing.T) {
	svc := newWagerService(nil)
	now := time.Now()

	newer := models.LeaderboardSnapshot{State: models.SnapshotOK, FetchedAt: now}
	stale := models.LeaderboardSnapshot{State: models.SnapshotUnavailable, FetchedAt: now.Add(-time.Minute)}

	svc.apply(2, newer)
	svc.apply(1, stale)

	if snap := svc.Snapshot(); snap.State != models.SnapshotOK {
		t.Fatalf("stale refresh overwrote newer snapshot: %q", snap.State)
	}
}
