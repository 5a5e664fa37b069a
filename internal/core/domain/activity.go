package domain

import "errors"

var (
	ErrUnknownActivity = errors.New("unknown activity")
	ErrInvalidAnswer   = errors.New("invalid answer submission")
)

type Activity string

const (
	ActivityCodingGame     Activity = "coding_game"
	ActivityCatchTheBug    Activity = "catch_the_bug"
	ActivityEnumEliminator Activity = "enum_eliminator"
)

var knownActivities = map[Activity]bool{
	ActivityCodingGame:     true,
	ActivityCatchTheBug:    true,
	ActivityEnumEliminator: true,
}

func ParseActivity(s string) (Activity, error) {
	a := Activity(s)
	if !knownActivities[a] {
		return "", ErrUnknownActivity
	}
	return a, nil
}

// AnswerSubmission is a single answered question of a mini-game.
// QuestionIndex is 0-based.
type AnswerSubmission struct {
	PlayerID      string
	Activity      Activity
	QuestionIndex int
	QuestionCount int
	Correct       bool
}

func (a AnswerSubmission) Validate() error {
	if a.PlayerID == "" {
		return ErrUnauthorized
	}
	if !knownActivities[a.Activity] {
		return ErrUnknownActivity
	}
	if a.QuestionCount < 1 || a.QuestionIndex < 0 || a.QuestionIndex >= a.QuestionCount {
		return ErrInvalidAnswer
	}
	return nil
}

// CompletesActivity reports whether the answer is the final question of the
// activity answered correctly.
func (a AnswerSubmission) CompletesActivity() bool {
	return a.Correct && a.QuestionIndex == a.QuestionCount-1
}
