package models

import "time"

// Session is one timed study run against a deck. Counters and CardResults
// are kept in lockstep: CardsStudied == CorrectAnswers + IncorrectAnswers ==
// len(CardResults) after every update.
type Session struct {
	ID               int64        `json:"id"`
	UserID           int64        `json:"user_id"`
	DeckID           int64        `json:"deck_id"`
	StartTime        time.Time    `json:"start_time"`
	EndTime          *time.Time   `json:"end_time,omitempty"`
	CardsStudied     int          `json:"cards_studied"`
	CorrectAnswers   int          `json:"correct_answers"`
	IncorrectAnswers int          `json:"incorrect_answers"`
	CardResults      []CardResult `json:"card_results,omitempty"`
}

// CardResult is one answer within a session, in submission order.
type CardResult struct {
	CardID      int64 `json:"card_id"`
	IsCorrect   bool  `json:"is_correct"`
	TimeSpentMs int   `json:"time_spent_ms"`
}

// DurationMinutes returns the session length in minutes, zero while the
// session is still active.
func (s Session) DurationMinutes() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Minutes()
}

// SuccessRate returns the percentage of correct answers, zero when nothing
// has been studied yet.
func (s Session) SuccessRate() float64 {
	if s.CardsStudied == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.CardsStudied) * 100
}

// Ended reports whether the session has been finalized.
func (s Session) Ended() bool {
	return s.EndTime != nil
}
