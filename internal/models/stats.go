package models

// StudyStats summarizes a user's study history across sessions.
type StudyStats struct {
	TotalSessions         int     `json:"total_sessions"`
	TotalCardsStudied     int     `json:"total_cards_studied"`
	TotalCorrect          int     `json:"total_correct"`
	TotalIncorrect        int     `json:"total_incorrect"`
	AverageSuccessRate    float64 `json:"average_success_rate"`
	TotalStudyTimeMinutes float64 `json:"total_study_time_minutes"`
}
