package heuristic

import (
	"strings"
	"testing"

	"github.com/pavelanni/interviewer/internal/model"
)

func scored(answer string, score float64) model.Response {
	return model.Response{Answer: answer, Score: &score}
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name      string
		responses []model.Response
		want      float64
	}{
		{
			name: "mixed scores",
			responses: []model.Response{
				scored("a", 6), scored("b", 8), scored("c", 4),
			},
			want: 6,
		},
		{
			name:      "no scored responses",
			responses: []model.Response{{Answer: "a"}, {Answer: "b"}},
			want:      5,
		},
		{
			name:      "empty",
			responses: nil,
			want:      5,
		},
		{
			name: "unscored responses excluded",
			responses: []model.Response{
				scored("a", 8), {Answer: "b"}, scored("c", 0),
			},
			want: 8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageScore(tt.responses); got != tt.want {
				t.Errorf("AverageScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildReportSections(t *testing.T) {
	responses := []model.Response{
		scored("a detailed answer about my experience", 7),
		scored("another thoughtful answer", 6),
	}
	report := BuildReport(responses, 6.5)
	for _, section := range []string{
		"Overall Performance Summary:",
		"Key Strengths:",
		"Areas for Improvement:",
		"Recommendations for Future Interviews:",
	} {
		if !strings.Contains(report, section) {
			t.Errorf("report missing section %q", section)
		}
	}
	if !strings.Contains(report, "6.5/10") {
		t.Errorf("report does not mention the average score:\n%s", report)
	}
	if !strings.Contains(report, "Good Performance") {
		t.Errorf("average 6.5 should read as Good Performance")
	}
	if !strings.Contains(report, "you addressed all 2 questions") {
		t.Errorf("report missing completion bullet:\n%s", report)
	}
}

func TestBuildReportPerformanceTiers(t *testing.T) {
	responses := []model.Response{scored("answer", 5)}
	tests := []struct {
		avg  float64
		want string
	}{
		{9, "Outstanding Performance"},
		{6.5, "Good Performance"},
		{4.5, "Developing Performance"},
		{2, "Areas for Growth"},
	}
	for _, tt := range tests {
		report := BuildReport(responses, tt.avg)
		if !strings.Contains(report, tt.want) {
			t.Errorf("avg %v: report missing %q", tt.avg, tt.want)
		}
	}
}

func TestBuildReportUnanswered(t *testing.T) {
	responses := []model.Response{
		scored("a real answer", 6),
		{Answer: "No answer provided"},
		{Answer: ""},
	}
	report := BuildReport(responses, 6)
	if !strings.Contains(report, "Attempted 1 out of 3 questions") {
		t.Errorf("report missing attempted bullet:\n%s", report)
	}
	if !strings.Contains(report, "2 questions were left unanswered") {
		t.Errorf("report missing unanswered bullet:\n%s", report)
	}
}

func TestBuildReportLowScoreAdvice(t *testing.T) {
	responses := []model.Response{scored("short", 3), scored("terse", 3)}
	report := BuildReport(responses, 3)
	if !strings.Contains(report, "Provide more specific examples") {
		t.Errorf("low average should add example advice")
	}
	if !strings.Contains(report, "Expand your answers") {
		t.Errorf("mostly short answers should add expansion advice")
	}
	if !strings.Contains(report, "Work on structuring your answers") {
		t.Errorf("average below 7 should add structuring advice")
	}
}
