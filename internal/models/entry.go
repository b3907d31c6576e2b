package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Text is a username field as it appears in the feed. Feeds are not strict
// about types, so a JSON string or number is accepted and kept as its text
// form; anything else decodes to the empty string and is filtered out later.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	*t = ""
	return nil
}

// Numeric is a ranking field as it appears in the feed: a JSON number or a
// numeric string. Absent/null is distinguished from present-but-garbage so
// the ranker can default the former to zero and drop the latter.
type Numeric struct {
	Value   float64
	Present bool
	Valid   bool
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Numeric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	n.Present = true

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.Value = f
		n.Valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			n.Value = parsed
			n.Valid = true
		}
		return nil
	}

	// booleans, objects, arrays: present but not coercible
	return nil
}

// Entry is a raw leaderboard record as delivered by the feed
type Entry struct {
	Username Text    `json:"username"`
	Wager    Numeric `json:"wager"`
	Level    Numeric `json:"level"`
}

// NormalizedEntry is an Entry that passed validation: non-empty trimmed
// username and a finite ranking value
type NormalizedEntry struct {
	Username     string
	RankingValue float64
	Level        float64
	HasLevel     bool
}

// RankedRow is one output row of the leaderboard view model
type RankedRow struct {
	Rank         int     `json:"rank"`
	Username     string  `json:"username"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
	Prize        string  `json:"prize,omitempty"`
}

// SnapshotState classifies a leaderboard snapshot for the renderer
type SnapshotState string

// Snapshot states. "empty" is a valid zero-entry feed (renderer shows a
// "no players yet" placeholder, error region hidden); "unavailable" is a
// transport or format failure (placeholder row plus visible error region).
const (
	SnapshotOK          SnapshotState = "ok"
	SnapshotEmpty       SnapshotState = "empty"
	SnapshotUnavailable SnapshotState = "unavailable"
)

// LeaderboardSnapshot is the full state a renderer needs to redraw its
// container. Every refresh replaces the previous snapshot wholesale.
type LeaderboardSnapshot struct {
	State     SnapshotState `json:"state"`
	Rows      []RankedRow   `json:"rows"`
	FetchedAt time.Time     `json:"fetchedAt"`
}
