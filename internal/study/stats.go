package study

import (
	"sort"

	"github.com/lucasmv/flashdeck/internal/models"
)

// Summarize folds a user's sessions into aggregate statistics. The average
// success rate is the mean of per-session rates, counting sessions with no
// studied cards as 0. Only ended sessions contribute study time. An empty
// input yields zero stats.
func Summarize(sessions []models.Session) models.StudyStats {
	stats := models.StudyStats{TotalSessions: len(sessions)}

	var rateSum float64
	for _, s := range sessions {
		stats.TotalCardsStudied += s.CardsStudied
		stats.TotalCorrect += s.CorrectAnswers
		stats.TotalIncorrect += s.IncorrectAnswers
		if s.CardsStudied > 0 {
			rateSum += float64(s.CorrectAnswers) / float64(s.CardsStudied)
		}
		if s.EndTime != nil {
			stats.TotalStudyTimeMinutes += s.EndTime.Sub(s.StartTime).Minutes()
		}
	}

	if len(sessions) > 0 {
		stats.AverageSuccessRate = rateSum / float64(len(sessions)) * 100
	}
	return stats
}

// Recent returns the n most recently started sessions, newest first. The
// input is not modified.
func Recent(sessions []models.Session, n int) []models.Session {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
