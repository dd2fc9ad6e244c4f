package model

import (
	"context"
	"time"
)

// UserRole represents a user's access level.
type UserRole string

const (
	// UserRoleCandidate is a regular interview-practice user.
	UserRoleCandidate UserRole = "candidate"
	// UserRoleAdmin is an admin user role.
	UserRoleAdmin UserRole = "admin"
)

// User represents a system user.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

// InterviewStatus represents the lifecycle state of an interview.
type InterviewStatus string

const (
	StatusPending    InterviewStatus = "pending"
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

// Difficulty represents the interview difficulty level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// QuestionType represents a question category.
type QuestionType string

const (
	TypeTechnical   QuestionType = "technical"
	TypeBehavioral  QuestionType = "behavioral"
	TypeSituational QuestionType = "situational"
	TypeCoding      QuestionType = "coding"
)

// Interview represents one practice session owned by a user.
type Interview struct {
	ID                   int64           `json:"id"`
	UserID               int64           `json:"user_id"`
	Title                string          `json:"title"`
	JobRole              string          `json:"job_role"`
	Company              string          `json:"company,omitempty"`
	Difficulty           Difficulty      `json:"difficulty"`
	Status               InterviewStatus `json:"status"`
	TotalQuestions       int             `json:"total_questions"`
	CurrentQuestionIndex int             `json:"current_question_index"`
	Score                *float64        `json:"score,omitempty"`
	Feedback             *string         `json:"feedback,omitempty"`
	StartedAt            *time.Time      `json:"started_at,omitempty"`
	CompletedAt          *time.Time      `json:"completed_at,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// Question represents one prompt presented during an interview.
// Position is 0-based and unique per interview; it defines the
// presentation sequence.
type Question struct {
	ID             int64        `json:"id"`
	InterviewID    int64        `json:"interview_id"`
	QuestionText   string       `json:"question_text"`
	QuestionType   QuestionType `json:"question_type"`
	Difficulty     Difficulty   `json:"difficulty"`
	Position       int          `json:"position"`
	ExpectedAnswer string       `json:"expected_answer,omitempty"`
	TimeLimit      int          `json:"time_limit,omitempty"` // seconds
}

// Response represents one answer to one question. Score and Feedback
// stay nil until the evaluation job completes.
type Response struct {
	ID          int64     `json:"id"`
	InterviewID int64     `json:"interview_id"`
	QuestionID  int64     `json:"question_id"`
	UserID      int64     `json:"user_id"`
	Answer      string    `json:"answer"`
	TimeSpent   int       `json:"time_spent"` // seconds
	Score       *float64  `json:"score,omitempty"`
	Feedback    *string   `json:"feedback,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// QuestionResult pairs a question with its (possibly pending) evaluation
// for the results view.
type QuestionResult struct {
	Question     string       `json:"question"`
	QuestionType QuestionType `json:"question_type"`
	Answer       string       `json:"answer"`
	Score        *float64     `json:"score,omitempty"`
	Feedback     *string      `json:"feedback,omitempty"`
	TimeSpent    int          `json:"time_spent"`
}

// InterviewResults is the completed-interview results view.
type InterviewResults struct {
	Interview       Interview        `json:"interview"`
	Results         []QuestionResult `json:"results"`
	OverallScore    *float64         `json:"overall_score,omitempty"`
	OverallFeedback *string          `json:"overall_feedback,omitempty"`
}

// CurrentQuestion is the in-progress position view.
type CurrentQuestion struct {
	Question       *Question `json:"question"`
	CurrentIndex   int       `json:"current_index"`
	TotalQuestions int       `json:"total_questions"`
	Progress       float64   `json:"progress"` // percent
}

// SubmitResult reports the cursor state after an answer submission.
type SubmitResult struct {
	IsCompleted       bool `json:"is_completed"`
	NextQuestionIndex int  `json:"next_question_index"`
}

// AppConfig holds runtime parameters set via CLI flags.
type AppConfig struct {
	Addr          string
	DBPath        string
	Lang          string
	SecureCookies bool // Set Secure flag on cookies (disable for local dev)
}
