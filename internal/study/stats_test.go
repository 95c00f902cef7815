package study_test

import (
	"testing"
	"time"

	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Empty(t *testing.T) {
	stats := study.Summarize(nil)

	assert.Equal(t, models.StudyStats{}, stats)
}

func TestSummarize_MixedSessions(t *testing.T) {
	// A 10-card session at 80% and an empty session average to 40%.
	sessions := []models.Session{
		{CardsStudied: 10, CorrectAnswers: 8, IncorrectAnswers: 2, StartTime: testNow},
		{CardsStudied: 0, StartTime: testNow.Add(time.Hour)},
	}

	stats := study.Summarize(sessions)

	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 10, stats.TotalCardsStudied)
	assert.Equal(t, 8, stats.TotalCorrect)
	assert.Equal(t, 2, stats.TotalIncorrect)
	assert.InDelta(t, 40.0, stats.AverageSuccessRate, 1e-9)
}

func TestSummarize_StudyTimeCountsEndedOnly(t *testing.T) {
	ended := testNow.Add(30 * time.Minute)
	sessions := []models.Session{
		{StartTime: testNow, EndTime: &ended, CardsStudied: 5, CorrectAnswers: 5},
		{StartTime: testNow, CardsStudied: 3, CorrectAnswers: 1, IncorrectAnswers: 2}, // still active
	}

	stats := study.Summarize(sessions)

	assert.InDelta(t, 30.0, stats.TotalStudyTimeMinutes, 1e-9, "active sessions contribute no study time")
}

func TestRecent_NewestFirst(t *testing.T) {
	sessions := []models.Session{
		{ID: 1, StartTime: testNow},
		{ID: 2, StartTime: testNow.Add(2 * time.Hour)},
		{ID: 3, StartTime: testNow.Add(time.Hour)},
	}

	recent := study.Recent(sessions, 2)

	require.Len(t, recent, 2)
	assert.Equal(t, int64(2), recent[0].ID)
	assert.Equal(t, int64(3), recent[1].ID)

	// Input order is untouched.
	assert.Equal(t, int64(1), sessions[0].ID)
}

func TestRecent_FewerThanRequested(t *testing.T) {
	sessions := []models.Session{{ID: 1, StartTime: testNow}}

	recent := study.Recent(sessions, 5)

	assert.Len(t, recent, 1)
}
