package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pavelanni/interviewer/internal/llm/prompts"
	"github.com/pavelanni/interviewer/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// GeneratedQuestion is one question in the model's generated set.
type GeneratedQuestion struct {
	QuestionText   string `json:"questionText"`
	QuestionType   string `json:"questionType"`
	ExpectedAnswer string `json:"expectedAnswer"`
	TimeLimit      int    `json:"timeLimit"`
}

// Evaluation holds the model's assessment of a single answer.
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new LLM client.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping checks that the API endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM endpoint unreachable: %w", err)
	}
	return nil
}

// GenerateQuestions asks the model for a complete question set for the role
// and difficulty. Errors, including malformed model output, are returned so
// the caller can fall back to the built-in question pools.
func (c *Client) GenerateQuestions(ctx context.Context, jobRole string, difficulty model.Difficulty, totalQuestions int) ([]GeneratedQuestion, error) {
	prompt, err := prompts.BuildGeneratePrompt(jobRole, difficulty, totalQuestions)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM question generation response", "raw", raw)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("parse LLM questions: %w (raw: %s)", err, raw)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("LLM returned an empty question set")
	}
	for i, q := range questions {
		if q.QuestionText == "" {
			return nil, fmt.Errorf("LLM question %d has empty text (raw: %s)", i, raw)
		}
	}
	return questions, nil
}

// EvaluateAnswer asks the model to score one answer. The score is clamped
// to [1, 10].
func (c *Client) EvaluateAnswer(ctx context.Context, question model.Question, answer string) (*Evaluation, error) {
	prompt, err := prompts.BuildEvaluatePrompt(question, answer)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM evaluation API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices for evaluation")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM evaluation response", "raw", raw)

	var eval Evaluation
	if err := json.Unmarshal([]byte(raw), &eval); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w (raw: %s)", err, raw)
	}
	if eval.Feedback == "" {
		return nil, fmt.Errorf("LLM evaluation has no feedback (raw: %s)", raw)
	}
	eval.Score = max(1, min(10, eval.Score))
	return &eval, nil
}

// SynthesizeFeedback asks the model for the overall interview report from
// the full transcript. The report is free-form text, not JSON.
func (c *Client) SynthesizeFeedback(ctx context.Context, entries []prompts.TranscriptEntry, averageScore float64) (string, error) {
	prompt, err := prompts.BuildFeedbackPrompt(entries, averageScore)
	if err != nil {
		return "", err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("LLM feedback API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices for feedback")
	}

	feedback := resp.Choices[0].Message.Content
	if feedback == "" {
		return "", fmt.Errorf("LLM returned empty feedback")
	}
	return feedback, nil
}
