package services

import (
	"context"
	"time"

	"github.com/codequest/streak-engine/internal/core/domain"
	"github.com/codequest/streak-engine/internal/observability"
)

type AnswerService struct {
	streaks *StreakService
}

func NewAnswerService(streaks *StreakService) *AnswerService {
	return &AnswerService{
		streaks: streaks,
	}
}

type AnswerResult struct {
	Completed     bool               `json:"completed"`
	StreakUpdated bool               `json:"streak_updated"`
	Streak        *domain.StreakView `json:"streak"`
}

// RecordAnswer counts towards the streak only when the final question of the
// activity is answered correctly.
func (s *AnswerService) RecordAnswer(ctx context.Context, input domain.AnswerSubmission, loc *time.Location) (*AnswerResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	observability.RecordAnswer(input.Activity, input.Correct)

	if !input.CompletesActivity() {
		view, err := s.streaks.GetStreak(ctx, input.PlayerID, loc)
		if err != nil {
			return nil, err
		}
		return &AnswerResult{Streak: view}, nil
	}

	view, err := s.streaks.RecordCompletion(ctx, input.PlayerID, loc)
	if err != nil {
		return nil, err
	}

	return &AnswerResult{
		Completed:     true,
		StreakUpdated: view.Outcome != domain.StreakUnchanged && view.Outcome != domain.StreakClockSkew,
		Streak:        view,
	}, nil
}
