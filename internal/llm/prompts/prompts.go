package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"github.com/pavelanni/interviewer/internal/model"
)

//go:embed templates/*.txt
var templateFS embed.FS

var (
	candidateAnswerRegex    = regexp.MustCompile(`(?i)</?\s*candidate-answer\b[^>]*>`)
	systemInstructionsRegex = regexp.MustCompile(`(?i)</?\s*system-instructions\b[^>]*>`)
)

var (
	loadOnce         sync.Once
	loadErr          error
	generateTemplate *template.Template
	evaluateTemplate *template.Template
	feedbackTemplate *template.Template
)

// GenerateData holds template data for the question-generation prompt.
type GenerateData struct {
	JobRole        string
	Difficulty     model.Difficulty
	TotalQuestions int
}

// EvaluateData holds template data for the answer-evaluation prompt.
type EvaluateData struct {
	QuestionText   string
	QuestionType   model.QuestionType
	ExpectedAnswer string
	Answer         string
}

// TranscriptEntry is one question/answer pair in the overall-feedback prompt.
type TranscriptEntry struct {
	Number       int
	QuestionText string
	Answer       string
	Score        string
	Feedback     string
}

type feedbackData struct {
	Entries      []TranscriptEntry
	AverageScore string
}

// Load parses the embedded prompt templates. It uses sync.Once so the
// templates are parsed only once.
func Load() error {
	loadOnce.Do(func() {
		parse := func(name string) *template.Template {
			if loadErr != nil {
				return nil
			}
			content, err := templateFS.ReadFile("templates/" + name + ".txt")
			if err != nil {
				loadErr = fmt.Errorf("read prompt template %s: %w", name, err)
				return nil
			}
			tmpl, err := template.New(name).Parse(string(content))
			if err != nil {
				loadErr = fmt.Errorf("parse prompt template %s: %w", name, err)
				return nil
			}
			return tmpl
		}
		generateTemplate = parse("generate")
		evaluateTemplate = parse("evaluate")
		feedbackTemplate = parse("feedback")
	})
	return loadErr
}

// BuildGeneratePrompt builds the prompt asking for a full question set.
func BuildGeneratePrompt(jobRole string, difficulty model.Difficulty, totalQuestions int) (string, error) {
	if err := Load(); err != nil {
		return "", err
	}
	return execute(generateTemplate, GenerateData{
		JobRole:        jobRole,
		Difficulty:     difficulty,
		TotalQuestions: totalQuestions,
	})
}

// BuildEvaluatePrompt builds the prompt asking for a score and feedback on
// one answer. The answer is sanitized before interpolation.
func BuildEvaluatePrompt(question model.Question, answer string) (string, error) {
	if err := Load(); err != nil {
		return "", err
	}
	expected := question.ExpectedAnswer
	if expected == "" {
		expected = "General interview best practices"
	}
	return execute(evaluateTemplate, EvaluateData{
		QuestionText:   question.QuestionText,
		QuestionType:   question.QuestionType,
		ExpectedAnswer: expected,
		Answer:         SanitizeAnswer(answer),
	})
}

// BuildFeedbackPrompt builds the prompt asking for the overall interview
// report from the full transcript.
func BuildFeedbackPrompt(entries []TranscriptEntry, averageScore float64) (string, error) {
	if err := Load(); err != nil {
		return "", err
	}
	sanitized := make([]TranscriptEntry, len(entries))
	for i, e := range entries {
		e.Answer = SanitizeAnswer(e.Answer)
		sanitized[i] = e
	}
	return execute(feedbackTemplate, feedbackData{
		Entries:      sanitized,
		AverageScore: fmt.Sprintf("%.1f", averageScore),
	})
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SanitizeAnswer strips prompt-structure markup from candidate text and
// bounds its length before it is interpolated into a prompt.
func SanitizeAnswer(answer string) string {
	answer = candidateAnswerRegex.ReplaceAllString(answer, "")
	answer = systemInstructionsRegex.ReplaceAllString(answer, "")
	answer = strings.TrimSpace(answer)

	if answer == "" {
		return "[No answer provided]"
	}

	if utf8.RuneCountInString(answer) > 10000 {
		runes := []rune(answer)
		runes = runes[:10000]
		answer = string(runes) + "\n\n[Answer truncated due to length]"
	}

	return answer
}
