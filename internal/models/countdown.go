package models

import "time"

// CountdownView is the display state of the reset countdown after a tick.
// Active is false under the external policy when no end date is configured.
// Done is true once an externally owned countdown has ended; no further
// ticks are scheduled after that.
type CountdownView struct {
	Active  bool       `json:"active"`
	Display string     `json:"display"`
	Target  *time.Time `json:"target,omitempty"`
	Done    bool       `json:"done"`
}
