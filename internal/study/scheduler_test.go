package study_test

import (
	"testing"
	"time"

	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/study"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestReview_FirstCorrectAnswer(t *testing.T) {
	card := models.Card{Difficulty: 0, ReviewCount: 0}

	updated := study.Review(card, true, testNow)

	assert.Equal(t, 1, updated.ReviewCount)
	assert.Equal(t, testNow.Add(24*time.Hour), updated.NextReview, "first correct answer schedules +1 day")
	assert.InDelta(t, 0.4, updated.Difficulty, 1e-9)
}

func TestReview_SecondCorrectAnswer(t *testing.T) {
	card := models.Card{Difficulty: 0.4, ReviewCount: 1}

	updated := study.Review(card, true, testNow)

	assert.Equal(t, 2, updated.ReviewCount)
	assert.Equal(t, testNow.Add(2*24*time.Hour), updated.NextReview, "second correct answer schedules +2 days")
	assert.InDelta(t, 0.8, updated.Difficulty, 1e-9)
}

func TestReview_CorrectIntervalLadder(t *testing.T) {
	// Consecutive correct answers from a fresh card walk the interval
	// ladder 1, 2, 4, 8, 16 and then cap at 30 days.
	wantDays := []int{1, 2, 4, 8, 16, 30, 30, 30}

	card := models.Card{Difficulty: 0, ReviewCount: 0}
	for i, days := range wantDays {
		card = study.Review(card, true, testNow)

		assert.Equal(t, i+1, card.ReviewCount)
		assert.Equal(t, testNow.Add(time.Duration(days)*24*time.Hour), card.NextReview,
			"answer %d should schedule +%d days", i+1, days)
	}
}

func TestReview_DifficultyIncrementGuard(t *testing.T) {
	// Difficulty climbs by 0.4 while below 5, and the increment is guarded
	// by a pre-check rather than a clamp: a value just under 5 still gets
	// the full step and may overshoot, after which it holds.
	card := models.Card{Difficulty: 4.9, ReviewCount: 10}

	card = study.Review(card, true, testNow)
	assert.InDelta(t, 5.3, card.Difficulty, 1e-9, "pre-check guard allows overshoot past 5")

	card = study.Review(card, true, testNow)
	assert.InDelta(t, 5.3, card.Difficulty, 1e-9, "no increment once at or above 5")
}

func TestReview_IncorrectAlwaysOneDay(t *testing.T) {
	tests := []struct {
		name        string
		reviewCount int
	}{
		{name: "fresh card", reviewCount: 0},
		{name: "a few reviews", reviewCount: 4},
		{name: "long history", reviewCount: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := models.Card{Difficulty: 2, ReviewCount: tt.reviewCount}

			updated := study.Review(card, false, testNow)

			assert.Equal(t, tt.reviewCount+1, updated.ReviewCount)
			assert.Equal(t, testNow.Add(24*time.Hour), updated.NextReview,
				"incorrect answer resets to tomorrow regardless of history")
		})
	}
}

func TestReview_DifficultyDecrementGuard(t *testing.T) {
	// From 0.2, the first incorrect answer drops difficulty to -0.1; the
	// guard (decrement only while > 0) then holds it there. This documents
	// the soft lower bound.
	card := models.Card{Difficulty: 0.2, ReviewCount: 0}

	card = study.Review(card, false, testNow)
	assert.InDelta(t, -0.1, card.Difficulty, 1e-9)

	for i := 0; i < 5; i++ {
		card = study.Review(card, false, testNow)
		assert.InDelta(t, -0.1, card.Difficulty, 1e-9, "difficulty holds once at or below zero")
	}
}

func TestReview_DoesNotMutateInput(t *testing.T) {
	card := models.Card{Difficulty: 1.0, ReviewCount: 3, NextReview: testNow}

	_ = study.Review(card, true, testNow)

	assert.Equal(t, 3, card.ReviewCount)
	assert.InDelta(t, 1.0, card.Difficulty, 1e-9)
	assert.Equal(t, testNow, card.NextReview)
}

func TestReview_Deterministic(t *testing.T) {
	card := models.Card{Difficulty: 1.2, ReviewCount: 2}

	a := study.Review(card, true, testNow)
	b := study.Review(card, true, testNow)

	assert.Equal(t, a, b)
}
