package models

import "time"

// Card is a question/answer pair with its own review schedule. Difficulty
// moves up on correct answers and down on incorrect ones; NextReview starts
// at creation time so new cards are immediately due.
type Card struct {
	ID          int64     `json:"id"`
	DeckID      int64     `json:"deck_id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Difficulty  float64   `json:"difficulty"`
	NextReview  time.Time `json:"next_review"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CardUpdate carries the fields of a partial card edit; nil fields are left
// unchanged. The review schedule is only ever changed by studying.
type CardUpdate struct {
	Question *string
	Answer   *string
}
