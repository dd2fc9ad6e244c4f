// Package interview implements the interview lifecycle: creation,
// start, answer submission with cursor advancement, and the deferred
// evaluation pipeline behind it.
package interview

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavelanni/interviewer/internal/jobs"
	"github.com/pavelanni/interviewer/internal/model"
	"github.com/pavelanni/interviewer/internal/store"
)

// Delays configures how long each deferred job waits before running.
// Feedback synthesis trails the final answer's evaluation so the report
// sees the per-answer scores.
type Delays struct {
	Evaluate      time.Duration
	Feedback      time.Duration
	RetryFeedback time.Duration
}

// DefaultDelays returns the production delays.
func DefaultDelays() Delays {
	return Delays{
		Evaluate:      0,
		Feedback:      3 * time.Second,
		RetryFeedback: 5 * time.Second,
	}
}

// Service coordinates interview state changes and enqueues the pipeline
// jobs that follow them.
type Service struct {
	store  *store.Store
	queue  *jobs.Queue
	runner *jobs.Runner
	delays Delays
}

// NewService creates a service.
func NewService(st *store.Store, queue *jobs.Queue, runner *jobs.Runner, delays Delays) *Service {
	return &Service{store: st, queue: queue, runner: runner, delays: delays}
}

// CreateParams are the caller-supplied fields of a new interview.
type CreateParams struct {
	Title          string
	JobRole        string
	Company        string
	Difficulty     model.Difficulty
	TotalQuestions int
}

// Create inserts a pending interview and enqueues question generation.
// TotalQuestions must be at least 1; progress math divides by it later.
func (s *Service) Create(ctx context.Context, userID int64, p CreateParams) (int64, error) {
	if p.TotalQuestions < 1 {
		return 0, fmt.Errorf("total questions %d: %w", p.TotalQuestions, model.ErrValidation)
	}
	id, err := s.store.CreateInterview(model.Interview{
		UserID:         userID,
		Title:          p.Title,
		JobRole:        p.JobRole,
		Company:        p.Company,
		Difficulty:     p.Difficulty,
		TotalQuestions: p.TotalQuestions,
	})
	if err != nil {
		return 0, fmt.Errorf("create interview: %w", err)
	}

	s.queue.Enqueue("generate-questions", 0, func(ctx context.Context) {
		s.runner.GenerateQuestions(ctx, id)
	})
	slog.Info("created interview", "interview_id", id, "user_id", userID, "job_role", p.JobRole)
	return id, nil
}

// Get returns an interview owned by userID.
func (s *Service) Get(ctx context.Context, userID, interviewID int64) (model.Interview, error) {
	return s.owned(userID, interviewID)
}

// List returns the user's interviews, newest first.
func (s *Service) List(ctx context.Context, userID int64) ([]model.Interview, error) {
	return s.store.ListInterviewsForUser(userID)
}

// Questions returns an interview's questions in presentation order.
func (s *Service) Questions(ctx context.Context, userID, interviewID int64) ([]model.Question, error) {
	if _, err := s.owned(userID, interviewID); err != nil {
		return nil, err
	}
	return s.store.ListQuestionsForInterview(interviewID)
}

// Start moves a pending interview to in_progress.
func (s *Service) Start(ctx context.Context, userID, interviewID int64) (model.Interview, error) {
	iv, err := s.owned(userID, interviewID)
	if err != nil {
		return model.Interview{}, err
	}
	if iv.Status != model.StatusPending {
		return model.Interview{}, fmt.Errorf("interview %d is %s: %w", interviewID, iv.Status, model.ErrInvalidTransition)
	}
	if err := s.store.StartInterview(interviewID); err != nil {
		return model.Interview{}, fmt.Errorf("start interview: %w", err)
	}
	slog.Info("started interview", "interview_id", interviewID)
	return s.store.GetInterview(interviewID)
}

// SubmitAnswer records an answer, advances the question cursor and
// enqueues evaluation. Submitting the final answer completes the
// interview and additionally enqueues report synthesis; the feedback
// delay keeps synthesis behind the last evaluation.
func (s *Service) SubmitAnswer(ctx context.Context, userID, interviewID, questionID int64, answer string, timeSpent int) (model.SubmitResult, error) {
	iv, err := s.owned(userID, interviewID)
	if err != nil {
		return model.SubmitResult{}, err
	}
	if iv.Status != model.StatusInProgress {
		return model.SubmitResult{}, fmt.Errorf("interview %d is %s: %w", interviewID, iv.Status, model.ErrInvalidTransition)
	}

	question, err := s.store.GetQuestion(questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SubmitResult{}, fmt.Errorf("question %d: %w", questionID, model.ErrNotFound)
		}
		return model.SubmitResult{}, fmt.Errorf("load question: %w", err)
	}
	if question.InterviewID != interviewID {
		return model.SubmitResult{}, fmt.Errorf("question %d: %w", questionID, model.ErrNotFound)
	}

	existing, err := s.store.GetResponseForQuestion(interviewID, questionID)
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("check existing response: %w", err)
	}
	if existing != nil {
		return model.SubmitResult{}, fmt.Errorf("question %d: %w", questionID, model.ErrAlreadyAnswered)
	}

	responseID, err := s.store.InsertResponse(model.Response{
		InterviewID: interviewID,
		QuestionID:  questionID,
		UserID:      userID,
		Answer:      answer,
		TimeSpent:   timeSpent,
	})
	if err != nil {
		return model.SubmitResult{}, fmt.Errorf("save response: %w", err)
	}

	nextIndex := iv.CurrentQuestionIndex + 1
	completed := nextIndex >= iv.TotalQuestions
	if err := s.store.AdvanceInterview(interviewID, nextIndex, completed); err != nil {
		return model.SubmitResult{}, fmt.Errorf("advance interview: %w", err)
	}

	s.queue.Enqueue("evaluate-answer", s.delays.Evaluate, func(ctx context.Context) {
		s.runner.EvaluateAnswer(ctx, responseID, questionID, answer)
	})
	if completed {
		s.queue.Enqueue("synthesize-feedback", s.delays.Feedback, func(ctx context.Context) {
			s.runner.SynthesizeFeedback(ctx, interviewID)
		})
		slog.Info("completed interview", "interview_id", interviewID)
	}

	return model.SubmitResult{IsCompleted: completed, NextQuestionIndex: nextIndex}, nil
}

// CurrentQuestion returns the question at the cursor. Question is nil when
// the cursor is past the last question or generation has not finished.
func (s *Service) CurrentQuestion(ctx context.Context, userID, interviewID int64) (model.CurrentQuestion, error) {
	iv, err := s.owned(userID, interviewID)
	if err != nil {
		return model.CurrentQuestion{}, err
	}
	questions, err := s.store.ListQuestionsForInterview(interviewID)
	if err != nil {
		return model.CurrentQuestion{}, fmt.Errorf("load questions: %w", err)
	}

	cq := model.CurrentQuestion{
		CurrentIndex:   iv.CurrentQuestionIndex,
		TotalQuestions: iv.TotalQuestions,
		Progress:       float64(iv.CurrentQuestionIndex) / float64(iv.TotalQuestions) * 100,
	}
	if iv.CurrentQuestionIndex < len(questions) {
		cq.Question = &questions[iv.CurrentQuestionIndex]
	}
	return cq, nil
}

// Results returns the completed-interview results view: every question
// paired with its response and evaluation, plus the overall score and
// report when synthesis has finished.
func (s *Service) Results(ctx context.Context, userID, interviewID int64) (model.InterviewResults, error) {
	iv, err := s.owned(userID, interviewID)
	if err != nil {
		return model.InterviewResults{}, err
	}
	if iv.Status != model.StatusCompleted {
		return model.InterviewResults{}, fmt.Errorf("interview %d is %s: %w", interviewID, iv.Status, model.ErrInvalidTransition)
	}

	questions, err := s.store.ListQuestionsForInterview(interviewID)
	if err != nil {
		return model.InterviewResults{}, fmt.Errorf("load questions: %w", err)
	}
	responses, err := s.store.ListResponsesForInterview(interviewID)
	if err != nil {
		return model.InterviewResults{}, fmt.Errorf("load responses: %w", err)
	}
	byQuestion := make(map[int64]model.Response, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = r
	}

	results := make([]model.QuestionResult, len(questions))
	for i, q := range questions {
		qr := model.QuestionResult{
			Question:     q.QuestionText,
			QuestionType: q.QuestionType,
		}
		if r, ok := byQuestion[q.ID]; ok {
			qr.Answer = r.Answer
			qr.Score = r.Score
			qr.Feedback = r.Feedback
			qr.TimeSpent = r.TimeSpent
		}
		results[i] = qr
	}

	return model.InterviewResults{
		Interview:       iv,
		Results:         results,
		OverallScore:    iv.Score,
		OverallFeedback: iv.Feedback,
	}, nil
}

// RetryEvaluation re-enqueues evaluation for every unscored response of a
// completed interview, followed by report synthesis.
func (s *Service) RetryEvaluation(ctx context.Context, userID, interviewID int64) error {
	iv, err := s.owned(userID, interviewID)
	if err != nil {
		return err
	}
	if iv.Status != model.StatusCompleted {
		return fmt.Errorf("interview %d is %s: %w", interviewID, iv.Status, model.ErrInvalidTransition)
	}

	responses, err := s.store.ListResponsesForInterview(interviewID)
	if err != nil {
		return fmt.Errorf("load responses: %w", err)
	}
	retried := 0
	for _, r := range responses {
		if r.Score != nil {
			continue
		}
		responseID, questionID, answer := r.ID, r.QuestionID, r.Answer
		s.queue.Enqueue("evaluate-answer", s.delays.Evaluate, func(ctx context.Context) {
			s.runner.EvaluateAnswer(ctx, responseID, questionID, answer)
		})
		retried++
	}

	s.queue.Enqueue("synthesize-feedback", s.delays.RetryFeedback, func(ctx context.Context) {
		s.runner.SynthesizeFeedback(ctx, interviewID)
	})
	slog.Info("retrying evaluation", "interview_id", interviewID, "responses", retried)
	return nil
}

// owned loads an interview and checks ownership. Both failure modes map
// to the same HTTP status so another user's interview reads as missing.
func (s *Service) owned(userID, interviewID int64) (model.Interview, error) {
	iv, err := s.store.GetInterview(interviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Interview{}, fmt.Errorf("interview %d: %w", interviewID, model.ErrNotFound)
		}
		return model.Interview{}, fmt.Errorf("load interview: %w", err)
	}
	if iv.UserID != userID {
		return model.Interview{}, fmt.Errorf("interview %d: %w", interviewID, model.ErrAccessDenied)
	}
	return iv, nil
}
