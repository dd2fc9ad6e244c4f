package heuristic

import (
	"fmt"
	"strings"

	"github.com/pavelanni/interviewer/internal/model"
)

// AverageScore returns the arithmetic mean over responses with a positive
// score set, or 5.0 when none have been scored yet. The result is not
// rounded; callers round when persisting.
func AverageScore(responses []model.Response) float64 {
	var sum float64
	var n int
	for _, r := range responses {
		if r.Score != nil && *r.Score > 0 {
			sum += *r.Score
			n++
		}
	}
	if n == 0 {
		return 5
	}
	return sum / float64(n)
}

// BuildReport synthesizes the four-section overall feedback document from
// the stored responses and their average score. Section structure and
// order are fixed; bullet content is chosen by score thresholds and
// answer-length counts.
func BuildReport(responses []model.Response, averageScore float64) string {
	totalQuestions := len(responses)
	answered := 0
	longAnswers := 0
	shortAnswers := 0
	for _, r := range responses {
		trimmed := strings.TrimSpace(r.Answer)
		if trimmed != "" && trimmed != noAnswerPlaceholder {
			answered++
		}
		words := len(strings.Fields(r.Answer))
		if trimmed != "" && words > 50 {
			longAnswers++
		}
		if trimmed != "" && words < 20 {
			shortAnswers++
		}
	}

	var b strings.Builder
	b.WriteString("Overall Performance Summary:\n")
	switch {
	case averageScore >= 8:
		fmt.Fprintf(&b, "Outstanding Performance: You demonstrated excellent knowledge and communication skills throughout the interview with an overall score of %.1f/10. Your responses showed depth, clarity, and strong professional experience.\n\n", averageScore)
	case averageScore >= 6:
		fmt.Fprintf(&b, "Good Performance: You showed solid understanding and provided thoughtful responses with an overall score of %.1f/10. Your answers demonstrate competence and good communication skills.\n\n", averageScore)
	case averageScore >= 4:
		fmt.Fprintf(&b, "Developing Performance: You have a foundation to build upon with an overall score of %.1f/10. There are clear opportunities to strengthen your interview responses.\n\n", averageScore)
	default:
		fmt.Fprintf(&b, "Areas for Growth: There are significant opportunities to strengthen your interview skills with an overall score of %.1f/10. Focus on preparation and practice will help improve your performance.\n\n", averageScore)
	}

	b.WriteString("Key Strengths:\n")
	if answered == totalQuestions {
		fmt.Fprintf(&b, "• Excellent completion rate - you addressed all %d questions\n", totalQuestions)
	} else {
		fmt.Fprintf(&b, "• Attempted %d out of %d questions\n", answered, totalQuestions)
	}
	if averageScore >= 7 {
		b.WriteString("• Strong communication and articulation skills\n")
		b.WriteString("• Good depth in your responses\n")
	} else if averageScore >= 5 {
		b.WriteString("• Clear effort to provide detailed responses\n")
		b.WriteString("• Basic understanding of interview expectations\n")
	}
	if longAnswers > 0 {
		fmt.Fprintf(&b, "• Provided comprehensive answers for %d questions\n", longAnswers)
	}

	b.WriteString("\nAreas for Improvement:\n")
	if answered < totalQuestions {
		fmt.Fprintf(&b, "• Complete all questions - %d questions were left unanswered\n", totalQuestions-answered)
	}
	if averageScore < 6 {
		b.WriteString("• Provide more specific examples and details in your responses\n")
		b.WriteString("• Practice articulating your thoughts more clearly\n")
	}
	if shortAnswers*2 > totalQuestions {
		b.WriteString("• Expand your answers with more detail and examples\n")
	}

	b.WriteString("\nRecommendations for Future Interviews:\n")
	b.WriteString("• Prepare specific examples from your experience using the STAR method\n")
	b.WriteString("• Practice common interview questions for your field\n")
	b.WriteString("• Research the company and role thoroughly before interviews\n")
	if averageScore < 7 {
		b.WriteString("• Work on structuring your answers more clearly\n")
		b.WriteString("• Practice explaining complex concepts in simple terms\n")
	}
	b.WriteString("• Continue practicing mock interviews to build confidence\n")
	b.WriteString("\nRemember: Interview skills improve with practice. Keep working on your responses and you'll see continued improvement. Good luck with your job search!")

	return b.String()
}
