package model

import "time"

// InterviewExport is the top-level JSON structure for result export.
type InterviewExport struct {
	ExportedAt time.Time         `json:"exported_at"`
	Interviews []InterviewResult `json:"interviews"`
}

// InterviewResult holds one interview's data for export.
type InterviewResult struct {
	ID             int64            `json:"id"`
	Username       string           `json:"username"`
	DisplayName    string           `json:"display_name"`
	Title          string           `json:"title"`
	JobRole        string           `json:"job_role"`
	Company        string           `json:"company,omitempty"`
	Difficulty     Difficulty       `json:"difficulty"`
	Status         InterviewStatus  `json:"status"`
	StartedAt      *time.Time       `json:"started_at,omitempty"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	Questions      []ExportQuestion `json:"questions"`
	OverallScore   *float64         `json:"overall_score,omitempty"`
	OverallFeedback string          `json:"overall_feedback,omitempty"`
}

// ExportQuestion holds per-question data for export.
type ExportQuestion struct {
	Text           string       `json:"text"`
	Type           QuestionType `json:"type"`
	ExpectedAnswer string       `json:"expected_answer,omitempty"`
	TimeLimit      int          `json:"time_limit,omitempty"`
	Answer         string       `json:"answer,omitempty"`
	TimeSpent      int          `json:"time_spent,omitempty"`
	Score          *float64     `json:"score,omitempty"`
	Feedback       string       `json:"feedback,omitempty"`
}
