// Package heuristic implements the deterministic, rule-based algorithms an
// interview falls back on when the text-generation service is unconfigured,
// errors, or returns malformed output: a bounded answer scorer, a
// category-balanced question selector, and an overall-report synthesizer.
package heuristic

import (
	"math"
	"regexp"
	"strings"

	"github.com/pavelanni/interviewer/internal/model"
)

const noAnswerPlaceholder = "No answer provided"

const noAnswerFeedback = "No answer was provided for this question. Consider taking time to think through your response and provide specific examples or explanations that demonstrate your knowledge and experience."

var (
	actionVerbRegex = regexp.MustCompile(`\b(implement|develop|design|manage|lead|create|build|analyze|optimize|solve)\b`)
	digitRegex      = regexp.MustCompile(`\d`)
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
)

// Score maps an answer and question type to a score in [1,10] and an
// explanatory feedback paragraph. It is pure: identical inputs always
// produce identical output.
func Score(answer string, questionType model.QuestionType) (float64, string) {
	return scoreAnswer(answer, questionType), feedbackFor(answer, questionType)
}

func scoreAnswer(answer string, questionType model.QuestionType) float64 {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" || trimmed == noAnswerPlaceholder {
		return 1
	}

	lower := strings.ToLower(answer)
	wordCount := len(strings.Fields(trimmed))
	hasExamples := strings.Contains(lower, "example") || strings.Contains(lower, "instance") ||
		strings.Contains(lower, "time when") || strings.Contains(lower, "experience")
	hasNumbers := digitRegex.MatchString(answer)
	hasActionVerbs := actionVerbRegex.MatchString(lower)
	hasSTAR := strings.Contains(lower, "situation") ||
		(strings.Contains(lower, "task") && strings.Contains(lower, "action"))

	var base float64
	switch {
	case wordCount < 10:
		base = 2
	case wordCount < 30:
		base = 4
	case wordCount < 80:
		base = 6
	case wordCount < 150:
		base = 7
	default:
		base = 8
	}

	switch questionType {
	case model.TypeTechnical:
		if hasActionVerbs {
			base += 1
		}
		if hasNumbers {
			base += 0.5
		}
		if wordCount < 40 {
			base -= 1 // technical questions need more detail
		}
	case model.TypeBehavioral:
		if hasExamples {
			base += 1
		}
		if hasSTAR {
			base += 1
		}
		if hasNumbers {
			base += 0.5 // quantified results
		}
		if wordCount < 50 {
			base -= 1 // behavioral needs examples
		}
	case model.TypeSituational:
		if hasActionVerbs {
			base += 0.5
		}
		if strings.Contains(lower, "would") || strings.Contains(lower, "approach") {
			base += 0.5
		}
		if wordCount < 40 {
			base -= 0.5
		}
	case model.TypeCoding:
		if hasActionVerbs {
			base += 1
		}
		if strings.Contains(lower, "complexity") || strings.Contains(lower, "efficient") {
			base += 1
		}
		if wordCount < 30 {
			base -= 1 // coding needs explanation
		}
	}

	if hasExamples && questionType != model.TypeCoding {
		base += 0.5
	}
	if hasNumbers {
		base += 0.3
	}
	if countSentences(answer) > 1 {
		base += 0.2
	}

	return math.Max(1, math.Min(10, math.Round(base*10)/10))
}

func countSentences(answer string) int {
	count := 0
	for _, s := range sentenceSplit.Split(answer, -1) {
		if strings.TrimSpace(s) != "" {
			count++
		}
	}
	return count
}

// feedbackFor produces the per-answer advice paragraph. The wording for a
// given (answer, type) pair is fixed; the word-count buckets (<20, <50,
// >=50) and the two trailing append rules are the contract.
func feedbackFor(answer string, questionType model.QuestionType) string {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" || trimmed == noAnswerPlaceholder {
		return noAnswerFeedback
	}

	lower := strings.ToLower(answer)
	wordCount := len(strings.Fields(trimmed))
	hasExamples := strings.Contains(lower, "example") || strings.Contains(lower, "instance") ||
		strings.Contains(lower, "time when")
	hasNumbers := digitRegex.MatchString(answer)
	detailed := len(answer) > 50

	var feedback string
	switch questionType {
	case model.TypeTechnical:
		switch {
		case wordCount < 20:
			feedback = "Your technical answer needs more depth. Consider explaining the concept step-by-step, mentioning specific technologies or methodologies you've used, and providing concrete examples from your experience."
		case wordCount < 50:
			feedback = "Good start on the technical explanation. To strengthen your answer, add more specific details about implementation, challenges you've faced, and how you solved them. Mention relevant tools or frameworks."
		default:
			feedback = "Solid technical response with good detail. "
			if detailed {
				feedback += "Your answer shows good technical depth. "
			} else {
				feedback += "Consider adding more specific technical terms and methodologies. "
			}
			feedback += "For even stronger answers, include metrics or outcomes when possible."
		}
	case model.TypeBehavioral:
		switch {
		case wordCount < 20:
			feedback = "Behavioral questions require specific examples. Use the STAR method (Situation, Task, Action, Result) to structure your response. Describe a real situation, what you did, and what the outcome was."
		case wordCount < 50:
			feedback = "Your answer has a good foundation. To improve, provide more context about the situation, explain your specific actions and decision-making process, and quantify the results when possible."
		default:
			feedback = "Well-structured behavioral response. "
			if hasExamples {
				feedback += "Good use of specific examples. "
			} else {
				feedback += "Consider adding more concrete examples. "
			}
			feedback += "Strong answers also include lessons learned and how you'd apply this experience in future situations."
		}
	case model.TypeSituational:
		switch {
		case wordCount < 20:
			feedback = "Situational questions need detailed problem-solving approaches. Explain how you would assess the situation, what steps you'd take, who you'd involve, and how you'd measure success."
		case wordCount < 50:
			feedback = "Good approach to the scenario. Enhance your answer by explaining your reasoning, discussing potential challenges, and describing how you'd adapt if your initial approach didn't work."
		default:
			feedback = "Comprehensive situational response. "
			if detailed {
				feedback += "You've shown good analytical thinking. "
			} else {
				feedback += "Consider adding more strategic thinking elements. "
			}
			feedback += "Excellent situational answers also address risk management and stakeholder communication."
		}
	case model.TypeCoding:
		switch {
		case wordCount < 20:
			feedback = "Coding questions require clear problem-solving logic. Explain your approach, walk through your solution step-by-step, mention time/space complexity, and discuss alternative approaches or optimizations."
		case wordCount < 50:
			feedback = "Good start on the coding solution. Strengthen your answer by explaining edge cases, discussing algorithm efficiency, and mentioning how you would test your solution."
		default:
			feedback = "Detailed coding response. "
			if hasNumbers {
				feedback += "Good attention to complexity analysis. "
			} else {
				feedback += "Consider discussing time/space complexity. "
			}
			feedback += "Strong coding answers also cover error handling and potential optimizations."
		}
	default:
		if wordCount < 20 {
			feedback = "Your answer needs more elaboration. Provide specific examples, explain your reasoning, and connect your response to relevant experience or knowledge."
		} else {
			feedback = "Solid response with good detail. Consider adding more specific examples and quantifiable results to make your answer even more compelling."
		}
	}

	if !hasExamples && questionType != model.TypeTechnical && questionType != model.TypeCoding {
		feedback += " Remember to include specific examples from your experience to make your answers more credible and memorable."
	}
	if !hasNumbers && (questionType == model.TypeTechnical || questionType == model.TypeBehavioral) {
		feedback += " When possible, include metrics, percentages, or timeframes to quantify your impact and achievements."
	}

	return feedback
}
