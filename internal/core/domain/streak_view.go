package domain

import "time"

type StreakView struct {
	PlayerID          string        `json:"player_id"`
	Count             int           `json:"streak_count"`
	LastCompletedDate *string       `json:"last_completed_date,omitempty"`
	Label             string        `json:"label"`
	ActiveToday       bool          `json:"active_today"`
	Outcome           StreakOutcome `json:"outcome,omitempty"`
}

// NewStreakView renders state as seen on the calendar day of now.
func NewStreakView(playerID string, state StreakState, now time.Time, outcome StreakOutcome) *StreakView {
	view := &StreakView{
		PlayerID:    playerID,
		Count:       state.Count,
		Label:       state.Label(),
		ActiveToday: state.CompletedOn(now),
		Outcome:     outcome,
	}

	if state.LastCompletedDate != nil {
		day := state.LastCompletedDate.Format(DateLayout)
		view.LastCompletedDate = &day
	}

	return view
}
