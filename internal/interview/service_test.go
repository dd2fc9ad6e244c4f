package interview

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/pavelanni/interviewer/internal/jobs"
	"github.com/pavelanni/interviewer/internal/model"
	"github.com/pavelanni/interviewer/internal/store"
)

// newTestService wires a service with an in-memory store, a running queue,
// no language model and zero delays, so tests can drive the whole pipeline
// synchronously with queue.Wait.
func newTestService(t *testing.T) (*Service, *store.Store, *jobs.Queue) {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("newTestService: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	queue := jobs.NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go queue.Run(ctx)

	runner := jobs.NewRunner(s, nil, rand.New(rand.NewPCG(1, 1)))
	svc := NewService(s, queue, runner, Delays{})
	return svc, s, queue
}

func createTestUser(t *testing.T, s *store.Store, username string) int64 {
	t.Helper()
	id, err := s.CreateUser(model.User{
		Username:     username,
		PasswordHash: "x",
		Role:         model.UserRoleCandidate,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("createTestUser: %v", err)
	}
	return id
}

func createReadyInterview(t *testing.T, svc *Service, queue *jobs.Queue, userID int64, total int) int64 {
	t.Helper()
	id, err := svc.Create(context.Background(), userID, CreateParams{
		Title:          "Practice",
		JobRole:        "Software Engineer",
		Difficulty:     model.DifficultyIntermediate,
		TotalQuestions: total,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	queue.Wait() // question generation
	return id
}

func TestCreateRejectsBadQuestionCount(t *testing.T) {
	svc, s, _ := newTestService(t)
	userID := createTestUser(t, s, "alice")

	for _, total := range []int{0, -1} {
		_, err := svc.Create(context.Background(), userID, CreateParams{
			Title:          "Practice",
			JobRole:        "Software Engineer",
			Difficulty:     model.DifficultyIntermediate,
			TotalQuestions: total,
		})
		if !errors.Is(err, model.ErrValidation) {
			t.Errorf("Create with %d questions: err = %v, want ErrValidation", total, err)
		}
	}

	interviews, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(interviews) != 0 {
		t.Errorf("rejected create still inserted %d interviews", len(interviews))
	}
}

func TestCreateGeneratesQuestions(t *testing.T) {
	svc, s, queue := newTestService(t)
	userID := createTestUser(t, s, "alice")

	id := createReadyInterview(t, svc, queue, userID, 5)

	iv, err := svc.Get(context.Background(), userID, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if iv.Status != model.StatusPending {
		t.Errorf("new interview status = %s, want pending", iv.Status)
	}
	if iv.CurrentQuestionIndex != 0 {
		t.Errorf("new interview cursor = %d, want 0", iv.CurrentQuestionIndex)
	}

	questions, err := svc.Questions(context.Background(), userID, id)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(questions) != 5 {
		t.Errorf("got %d questions, want 5", len(questions))
	}
}

func TestStartTransition(t *testing.T) {
	svc, s, queue := newTestService(t)
	userID := createTestUser(t, s, "alice")
	id := createReadyInterview(t, svc, queue, userID, 2)

	iv, err := svc.Start(context.Background(), userID, id)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if iv.Status != model.StatusInProgress {
		t.Errorf("status = %s, want in_progress", iv.Status)
	}
	if iv.StartedAt == nil {
		t.Error("StartedAt not stamped")
	}

	if _, err := svc.Start(context.Background(), userID, id); !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("second Start error = %v, want ErrInvalidTransition", err)
	}
}

func TestOwnershipGuards(t *testing.T) {
	svc, s, queue := newTestService(t)
	alice := createTestUser(t, s, "alice")
	mallory := createTestUser(t, s, "mallory")
	id := createReadyInterview(t, svc, queue, alice, 2)

	if _, err := svc.Get(context.Background(), mallory, id); !errors.Is(err, model.ErrAccessDenied) {
		t.Errorf("foreign Get error = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.Get(context.Background(), alice, 9999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("missing Get error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Start(context.Background(), mallory, id); !errors.Is(err, model.ErrAccessDenied) {
		t.Errorf("foreign Start error = %v, want ErrAccessDenied", err)
	}
}

func TestSubmitAnswerLifecycle(t *testing.T) {
	svc, s, queue := newTestService(t)
	userID := createTestUser(t, s, "alice")
	id := createReadyInterview(t, svc, queue, userID, 3)
	ctx := context.Background()

	questions, err := svc.Questions(ctx, userID, id)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}

	// Submitting before start is rejected.
	if _, err := svc.SubmitAnswer(ctx, userID, id, questions[0].ID, "a", 10); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("submit before start error = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Start(ctx, userID, id); err != nil {
		t.Fatalf("Start: %v", err)
	}

	res, err := svc.SubmitAnswer(ctx, userID, id, questions[0].ID, "my first answer", 30)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.IsCompleted || res.NextQuestionIndex != 1 {
		t.Errorf("first submit = %+v, want next index 1, not completed", res)
	}

	// Same question twice is rejected.
	if _, err := svc.SubmitAnswer(ctx, userID, id, questions[0].ID, "again", 5); !errors.Is(err, model.ErrAlreadyAnswered) {
		t.Errorf("duplicate submit error = %v, want ErrAlreadyAnswered", err)
	}

	if _, err := svc.SubmitAnswer(ctx, userID, id, questions[1].ID, "second answer", 30); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	res, err = svc.SubmitAnswer(ctx, userID, id, questions[2].ID, "final answer", 30)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !res.IsCompleted || res.NextQuestionIndex != 3 {
		t.Errorf("final submit = %+v, want next index 3, completed", res)
	}

	iv, err := svc.Get(ctx, userID, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if iv.Status != model.StatusCompleted {
		t.Errorf("status = %s, want completed", iv.Status)
	}
	if iv.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}

	// No further submissions once completed.
	if _, err := svc.SubmitAnswer(ctx, userID, id, questions[2].ID, "late", 5); !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("submit after completion error = %v, want ErrInvalidTransition", err)
	}
}

func TestSubmitAnswerForeignQuestion(t *testing.T) {
	svc, s, queue := newTestService(t)
	userID := createTestUser(t, s, "alice")
	first := createReadyInterview(t, svc, queue, userID, 2)
	second := createReadyInterview(t, svc, queue, userID, 2)
	ctx := context.Background()

	if _, err := svc.Start(ctx, userID, first); err != nil {
		t.Fatalf("Start: %v", err)
	}
	otherQuestions, err := svc.Questions(ctx, userID, second)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}

	_, err = svc.SubmitAnswer(ctx, userID, first, otherQuestions[0].ID, "a", 10)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("cross-interview submit error = %v, want ErrNotFound", err)
	}
}

func TestCurrentQuestionProgress(t *testing.T) {
	svc, s, queue := newTestService(t)
	userID := createTestUser(t, s, "alice")
	id := createReadyInterview(t, svc, queue, userID, 4)
	ctx := context.Background()

	cq, err := svc.CurrentQuestion(ctx, userID, id)
	if err != nil {
		t.Fatalf("CurrentQuestion: %v", err)
	}
	if cq.Question == nil || cq.CurrentIndex != 0 || cq.Progress != 0 {
		t.Errorf("initial position = %+v, want index 0, progress 0", cq)
	}

	if _, err := svc.Start(ctx, userID, id); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, userID, id, cq.Question.ID, "answer", 10); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	cq, err = svc.CurrentQuestion(ctx, userID, id)
	if err != nil {
		t.Fatalf("CurrentQuestion: %v", err)
	}
	if cq.CurrentIndex != 1 || cq.Progress != 25 {
		t.Errorf("after one answer: index = %d, progress = %v, want 1 and 25", cq.CurrentIndex, cq.Progress)
	}
	if cq.Question == nil || cq.Question.Position != 1 {
		t.Errorf("cursor question = %+v, want position 1", cq.Question)
	}
}

func TestResultsPipeline(t *testing.T) {
	svc, s, queue := newTestService(t)
	userID := createTestUser(t, s, "alice")
	id := createReadyInterview(t, svc, queue, userID, 2)
	ctx := context.Background()

	if _, err := svc.Results(ctx, userID, id); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("Results before completion error = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Start(ctx, userID, id); err != nil {
		t.Fatalf("Start: %v", err)
	}
	questions, err := svc.Questions(ctx, userID, id)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	for _, q := range questions {
		if _, err := svc.SubmitAnswer(ctx, userID, id, q.ID, "I solved a similar problem by designing a plan and measuring the results over 3 months.", 45); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}
	queue.Wait() // evaluations and report synthesis

	results, err := svc.Results(ctx, userID, id)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(results.Results))
	}
	for i, r := range results.Results {
		if r.Score == nil || *r.Score < 1 || *r.Score > 10 {
			t.Errorf("result %d score = %v, want in [1, 10]", i, r.Score)
		}
		if r.Feedback == nil || *r.Feedback == "" {
			t.Errorf("result %d has no feedback", i)
		}
	}
	if results.OverallScore == nil || *results.OverallScore < 1 || *results.OverallScore > 10 {
		t.Errorf("overall score = %v, want in [1, 10]", results.OverallScore)
	}
	if results.OverallFeedback == nil || !strings.Contains(*results.OverallFeedback, "Overall Performance Summary:") {
		t.Error("overall feedback missing report sections")
	}
}

func TestRetryEvaluation(t *testing.T) {
	svc, s, queue := newTestService(t)
	userID := createTestUser(t, s, "alice")
	id := createReadyInterview(t, svc, queue, userID, 1)
	ctx := context.Background()

	if err := svc.RetryEvaluation(ctx, userID, id); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("retry on pending error = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Start(ctx, userID, id); err != nil {
		t.Fatalf("Start: %v", err)
	}
	questions, err := svc.Questions(ctx, userID, id)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, userID, id, questions[0].ID, "an answer", 10); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	queue.Wait()

	if err := svc.RetryEvaluation(ctx, userID, id); err != nil {
		t.Fatalf("RetryEvaluation: %v", err)
	}
	queue.Wait()

	results, err := svc.Results(ctx, userID, id)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if results.OverallScore == nil {
		t.Error("overall score missing after retry")
	}
}
