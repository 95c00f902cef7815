package study

import (
	"time"

	"github.com/lucasmv/flashdeck/internal/models"
)

const (
	maxIntervalDays   = 30
	difficultyStep    = 0.4
	difficultyPenalty = 0.3
)

// Review updates a card's review schedule after an answer. Correct answers
// back off exponentially: the interval doubles with each consecutive review,
// capped at 30 days. Incorrect answers reset the card to tomorrow.
//
// Difficulty moves by +0.4 / -0.3 behind a pre-check guard (increment only
// while difficulty < 5, decrement only while > 0), so values may land
// slightly outside [0, 5]. The guard is intentional soft-bound behavior.
//
// The decision depends only on (isCorrect, ReviewCount, Difficulty, now).
func Review(card models.Card, isCorrect bool, now time.Time) models.Card {
	card.ReviewCount++

	if isCorrect {
		days := maxIntervalDays
		// 2^(reviewCount-1) stays under the cap through the fifth review.
		if card.ReviewCount <= 5 {
			days = 1 << (card.ReviewCount - 1)
		}
		card.NextReview = now.Add(time.Duration(days) * 24 * time.Hour)

		if card.Difficulty < 5 {
			card.Difficulty += difficultyStep
		}
	} else {
		card.NextReview = now.Add(24 * time.Hour)

		if card.Difficulty > 0 {
			card.Difficulty -= difficultyPenalty
		}
	}

	return card
}
