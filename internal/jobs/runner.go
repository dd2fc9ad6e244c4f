package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/pavelanni/interviewer/internal/heuristic"
	"github.com/pavelanni/interviewer/internal/llm"
	"github.com/pavelanni/interviewer/internal/llm/prompts"
	"github.com/pavelanni/interviewer/internal/model"
	"github.com/pavelanni/interviewer/internal/store"
)

// Runner implements the job bodies of the interview pipeline. Each job
// tries the language model first and falls back to the deterministic
// heuristics on any failure; a nil client skips the model entirely.
//
// Runner methods are only called from the queue's single worker, so the
// random source needs no locking.
type Runner struct {
	store  *store.Store
	client *llm.Client
	rng    *rand.Rand
}

// NewRunner creates a runner. client may be nil to disable the language
// model and always use the heuristics.
func NewRunner(st *store.Store, client *llm.Client, rng *rand.Rand) *Runner {
	return &Runner{store: st, client: client, rng: rng}
}

// GenerateQuestions builds and stores the question set for an interview,
// from the model when available and from the built-in pools otherwise.
func (r *Runner) GenerateQuestions(ctx context.Context, interviewID int64) {
	iv, err := r.store.GetInterview(interviewID)
	if err != nil {
		slog.Error("load interview for question generation", "interview_id", interviewID, "error", err)
		return
	}

	if r.client == nil {
		slog.Info("language model not configured, using question pools", "interview_id", interviewID)
		r.insertPoolQuestions(iv)
		return
	}

	generated, err := r.client.GenerateQuestions(ctx, iv.JobRole, iv.Difficulty, iv.TotalQuestions)
	if err != nil {
		slog.Error("generate questions", "interview_id", interviewID, "error", err)
		r.insertPoolQuestions(iv)
		return
	}

	for i, g := range generated {
		_, err := r.store.InsertQuestion(model.Question{
			InterviewID:    interviewID,
			QuestionText:   g.QuestionText,
			QuestionType:   model.QuestionType(g.QuestionType),
			Difficulty:     iv.Difficulty,
			Position:       i,
			ExpectedAnswer: g.ExpectedAnswer,
			TimeLimit:      g.TimeLimit,
		})
		if err != nil {
			slog.Error("save generated question", "interview_id", interviewID, "position", i, "error", err)
			return
		}
	}
	slog.Info("generated questions", "interview_id", interviewID, "count", len(generated), "job_role", iv.JobRole)
}

func (r *Runner) insertPoolQuestions(iv model.Interview) {
	questions := heuristic.SelectQuestions(r.rng, iv.JobRole, iv.Difficulty, iv.TotalQuestions)
	for _, q := range questions {
		q.InterviewID = iv.ID
		if _, err := r.store.InsertQuestion(q); err != nil {
			slog.Error("save pool question", "interview_id", iv.ID, "position", q.Position, "error", err)
			return
		}
	}
	slog.Info("selected pool questions", "interview_id", iv.ID, "count", len(questions))
}

// EvaluateAnswer scores one submitted answer and stores the result.
func (r *Runner) EvaluateAnswer(ctx context.Context, responseID, questionID int64, answer string) {
	question, err := r.store.GetQuestion(questionID)
	if err != nil {
		slog.Error("load question for evaluation", "question_id", questionID, "error", err)
		return
	}

	if r.client == nil {
		score, feedback := heuristic.Score(answer, question.QuestionType)
		r.storeEvaluation(responseID, score, feedback)
		return
	}

	eval, err := r.client.EvaluateAnswer(ctx, question, answer)
	if err != nil {
		slog.Error("evaluate answer", "response_id", responseID, "error", err)
		score, feedback := heuristic.Score(answer, question.QuestionType)
		r.storeEvaluation(responseID, score, feedback)
		return
	}
	r.storeEvaluation(responseID, eval.Score, eval.Feedback)
}

func (r *Runner) storeEvaluation(responseID int64, score float64, feedback string) {
	if err := r.store.UpdateResponseResult(responseID, score, feedback); err != nil {
		slog.Error("store evaluation", "response_id", responseID, "error", err)
		return
	}
	slog.Debug("stored evaluation", "response_id", responseID, "score", score)
}

// SynthesizeFeedback produces the overall score and report for a finished
// interview from its responses.
func (r *Runner) SynthesizeFeedback(ctx context.Context, interviewID int64) {
	responses, err := r.store.ListResponsesForInterview(interviewID)
	if err != nil {
		slog.Error("load responses for feedback", "interview_id", interviewID, "error", err)
		return
	}
	if len(responses) == 0 {
		slog.Error("no responses found for interview", "interview_id", interviewID)
		return
	}

	average := heuristic.AverageScore(responses)
	rounded := math.Round(average*10) / 10

	feedback, err := r.synthesize(ctx, interviewID, responses, average)
	if err != nil {
		slog.Error("synthesize feedback", "interview_id", interviewID, "error", err)
		feedback = heuristic.BuildReport(responses, average)
	}

	if err := r.store.UpdateInterviewResult(interviewID, rounded, feedback); err != nil {
		slog.Error("store interview result", "interview_id", interviewID, "error", err)
		return
	}
	slog.Info("stored interview result", "interview_id", interviewID, "score", rounded)
}

func (r *Runner) synthesize(ctx context.Context, interviewID int64, responses []model.Response, average float64) (string, error) {
	if r.client == nil {
		return heuristic.BuildReport(responses, average), nil
	}

	questions, err := r.store.ListQuestionsForInterview(interviewID)
	if err != nil {
		return "", fmt.Errorf("load questions for feedback: %w", err)
	}
	questionText := make(map[int64]string, len(questions))
	for _, q := range questions {
		questionText[q.ID] = q.QuestionText
	}

	entries := make([]prompts.TranscriptEntry, len(responses))
	for i, resp := range responses {
		score := "pending"
		if resp.Score != nil {
			score = fmt.Sprintf("%g", *resp.Score)
		}
		feedback := ""
		if resp.Feedback != nil {
			feedback = *resp.Feedback
		}
		entries[i] = prompts.TranscriptEntry{
			Number:       i + 1,
			QuestionText: questionText[resp.QuestionID],
			Answer:       resp.Answer,
			Score:        score,
			Feedback:     feedback,
		}
	}
	return r.client.SynthesizeFeedback(ctx, entries, average)
}
