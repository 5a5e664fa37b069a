package domain

import (
	"fmt"
	"time"
)

const (
	StreakCountKey       = "streakCount"
	LastCompletedDateKey = "lastCompletedDate"
	DateLayout           = "2006-01-02"
)

type StreakOutcome string

const (
	StreakStarted   StreakOutcome = "started"
	StreakExtended  StreakOutcome = "extended"
	StreakUnchanged StreakOutcome = "unchanged"
	StreakReset     StreakOutcome = "reset"
	StreakClockSkew StreakOutcome = "clock_skew"
)

// StreakState is the persisted streak of a single player.
// LastCompletedDate is a calendar date: only its year, month and day in its
// own location are meaningful. Count is always 0 when it is nil.
type StreakState struct {
	Count             int        `json:"streak_count"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty"`
}

// StartOfDay truncates t to local midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WholeDaysBetween counts calendar days from a's date to b's date, each read
// in its own location. DST days count as one day.
func WholeDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24)
}

// Normalize clamps values read from storage back into the invariants.
func (s StreakState) Normalize() StreakState {
	if s.Count < 0 || s.LastCompletedDate == nil {
		s.Count = 0
	}
	return s
}

// Advance applies one qualifying completion at now. The calendar is the one
// of now's location. The date always moves to today; on a backward clock the
// count is kept.
func (s StreakState) Advance(now time.Time) (StreakState, StreakOutcome) {
	today := StartOfDay(now)

	next := StreakState{Count: s.Count}
	var outcome StreakOutcome

	if s.LastCompletedDate == nil {
		next.Count = 1
		outcome = StreakStarted
	} else {
		diffDays := WholeDaysBetween(StartOfDay(*s.LastCompletedDate), today)

		switch {
		case diffDays < 0:
			outcome = StreakClockSkew
		case diffDays == 0:
			outcome = StreakUnchanged
		case diffDays == 1:
			next.Count++
			outcome = StreakExtended
		default:
			next.Count = 1
			outcome = StreakReset
		}
	}

	next.LastCompletedDate = &today
	return next, outcome
}

// CompletedOn reports whether the last completion falls on day's calendar date.
func (s StreakState) CompletedOn(day time.Time) bool {
	if s.LastCompletedDate == nil {
		return false
	}
	return WholeDaysBetween(*s.LastCompletedDate, day) == 0
}

func (s StreakState) Label() string {
	if s.Count == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", s.Count)
}
