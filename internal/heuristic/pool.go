package heuristic

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/pavelanni/interviewer/internal/model"
)

var behavioralPool = []string{
	"Tell me about yourself and your background.",
	"What interests you about this role?",
	"What are your greatest strengths and weaknesses?",
	"Describe a time when you had to work with a difficult team member.",
	"Tell me about a time you made a mistake and how you handled it.",
	"What motivates you in your work?",
	"How do you handle criticism or feedback?",
	"Describe your ideal work environment.",
	"Where do you see yourself in 5 years?",
	"Why are you leaving your current position?",
	"What accomplishment are you most proud of?",
	"How do you prioritize your work when you have multiple deadlines?",
}

var situationalPool = []string{
	"Describe a challenging project you worked on recently.",
	"How do you handle working under pressure?",
	"Tell me about a time you had to learn something new quickly.",
	"Describe a situation where you had to work with limited resources.",
	"How would you handle a conflict with a colleague?",
	"Tell me about a time you had to make a difficult decision.",
	"Describe a situation where you had to adapt to change.",
	"How do you handle multiple competing priorities?",
	"Tell me about a time you had to persuade someone to see your point of view.",
	"Describe a situation where you exceeded expectations.",
	"How would you approach a project with unclear requirements?",
	"Tell me about a time you had to work with someone from a different background.",
}

var technicalPools = map[string][]string{
	"software": {
		"Explain the difference between synchronous and asynchronous programming.",
		"What is the difference between SQL and NoSQL databases?",
		"How do you ensure code quality in your projects?",
		"Explain the concept of version control and its importance.",
		"What are the key principles of object-oriented programming?",
		"How do you approach debugging complex issues?",
		"What is the importance of testing in software development?",
		"Explain the concept of API design and best practices.",
		"How do you handle security considerations in your applications?",
		"What are the benefits of using design patterns?",
	},
	"marketing": {
		"How do you measure the success of a marketing campaign?",
		"Explain the difference between B2B and B2C marketing strategies.",
		"What role does data analytics play in modern marketing?",
		"How do you approach customer segmentation?",
		"What are the key components of a successful content strategy?",
		"How do you stay current with marketing trends and tools?",
		"Explain the customer journey and how to optimize it.",
		"What metrics do you consider most important for digital marketing?",
		"How do you approach A/B testing for marketing campaigns?",
		"What is the role of social media in modern marketing?",
	},
	"sales": {
		"How do you approach qualifying leads?",
		"Describe your sales process from prospect to close.",
		"How do you handle objections from potential customers?",
		"What tools do you use to track and manage your sales pipeline?",
		"How do you build rapport with new prospects?",
		"What strategies do you use to overcome price objections?",
		"How do you stay motivated during slow periods?",
		"Describe your approach to following up with prospects.",
		"How do you identify customer pain points?",
		"What role does social selling play in your strategy?",
	},
	"general": {
		"How do you stay updated with industry trends?",
		"What tools and technologies are you familiar with?",
		"How do you approach problem-solving in your field?",
		"What professional development have you pursued recently?",
		"How do you measure success in your role?",
		"What industry challenges are you most interested in solving?",
		"How do you collaborate with other departments?",
		"What best practices do you follow in your work?",
		"How do you ensure quality in your deliverables?",
		"What emerging trends excite you most about your field?",
	},
}

var codingPool = []string{
	"Write a function to reverse a string without using built-in methods.",
	"How would you find the largest element in an array?",
	"Explain how you would implement a simple caching mechanism.",
	"Write pseudocode for a function that checks if a string is a palindrome.",
	"How would you approach sorting an array of objects by a specific property?",
	"Describe how you would implement a basic search functionality.",
	"Write a function to remove duplicates from an array.",
	"How would you validate user input in a form?",
	"Explain how you would implement pagination for a large dataset.",
	"Describe your approach to handling errors in your code.",
}

var expectedAnswers = map[model.QuestionType]string{
	model.TypeTechnical:   "Demonstrate technical knowledge and problem-solving approach",
	model.TypeBehavioral:  "Provide specific examples and demonstrate soft skills",
	model.TypeSituational: "Use STAR method (Situation, Task, Action, Result)",
	model.TypeCoding:      "Write clean, working code with good logic",
}

// timeLimits maps (type, difficulty) to an answer time budget in seconds.
var timeLimits = map[model.QuestionType]map[model.Difficulty]int{
	model.TypeTechnical:   {model.DifficultyBeginner: 120, model.DifficultyIntermediate: 150, model.DifficultyAdvanced: 180},
	model.TypeBehavioral:  {model.DifficultyBeginner: 90, model.DifficultyIntermediate: 120, model.DifficultyAdvanced: 150},
	model.TypeSituational: {model.DifficultyBeginner: 120, model.DifficultyIntermediate: 180, model.DifficultyAdvanced: 240},
	model.TypeCoding:      {model.DifficultyBeginner: 180, model.DifficultyIntermediate: 240, model.DifficultyAdvanced: 300},
}

// TechnicalPoolFor selects the technical sub-pool for a job role by
// case-insensitive substring match.
func TechnicalPoolFor(jobRole string) []string {
	role := strings.ToLower(jobRole)
	switch {
	case strings.Contains(role, "developer") || strings.Contains(role, "engineer") || strings.Contains(role, "programmer"):
		return technicalPools["software"]
	case strings.Contains(role, "marketing") || strings.Contains(role, "digital"):
		return technicalPools["marketing"]
	case strings.Contains(role, "sales") || strings.Contains(role, "account"):
		return technicalPools["sales"]
	default:
		return technicalPools["general"]
	}
}

// SelectQuestions builds a category-balanced question set of exactly total
// questions for the given role and difficulty. The target mix is 40%
// technical, 30% behavioral, 20% situational and 10% coding (rounded up
// except coding); when the rounded quotas exceed the total, the coding
// quota absorbs the overflow. Questions never repeat within a category.
// The random source is injected so the selection is reproducible in tests.
func SelectQuestions(rng *rand.Rand, jobRole string, difficulty model.Difficulty, total int) []model.Question {
	counts := map[model.QuestionType]int{
		model.TypeTechnical:   int(math.Ceil(float64(total) * 0.4)),
		model.TypeBehavioral:  int(math.Ceil(float64(total) * 0.3)),
		model.TypeSituational: int(math.Ceil(float64(total) * 0.2)),
		model.TypeCoding:      max(1, int(math.Floor(float64(total)*0.1))),
	}
	sum := 0
	for _, c := range counts {
		sum += c
	}
	if sum > total {
		counts[model.TypeCoding] = max(0, counts[model.TypeCoding]-(sum-total))
	}

	var mix []model.Question
	pick := func(pool []string, qType model.QuestionType) {
		shuffled := shuffledCopy(rng, pool)
		for i := 0; i < min(counts[qType], len(shuffled)); i++ {
			mix = append(mix, model.Question{
				QuestionText:   shuffled[i],
				QuestionType:   qType,
				Difficulty:     difficulty,
				ExpectedAnswer: expectedAnswers[qType],
				TimeLimit:      timeLimits[qType][difficulty],
			})
		}
	}
	pick(TechnicalPoolFor(jobRole), model.TypeTechnical)
	pick(behavioralPool, model.TypeBehavioral)
	pick(situationalPool, model.TypeSituational)
	if counts[model.TypeCoding] > 0 {
		pick(codingPool, model.TypeCoding)
	}

	rng.Shuffle(len(mix), func(i, j int) {
		mix[i], mix[j] = mix[j], mix[i]
	})
	if len(mix) > total {
		mix = mix[:total]
	}
	for i := range mix {
		mix[i].Position = i
	}
	return mix
}

func shuffledCopy(rng *rand.Rand, pool []string) []string {
	out := make([]string, len(pool))
	copy(out, pool)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// DefaultQuestions returns the first total questions from a small fixed,
// non-randomized set. It is the secondary fallback kept for deterministic
// scenarios such as smoke tests and seeded demos.
func DefaultQuestions(difficulty model.Difficulty, total int) []model.Question {
	defaults := []model.Question{
		{
			QuestionText:   "Tell me about yourself and your background.",
			QuestionType:   model.TypeBehavioral,
			TimeLimit:      120,
			ExpectedAnswer: "Professional background, relevant experience, career goals",
		},
		{
			QuestionText:   "What interests you about this role?",
			QuestionType:   model.TypeBehavioral,
			TimeLimit:      90,
			ExpectedAnswer: "Specific aspects of the role, company alignment, growth opportunities",
		},
		{
			QuestionText:   "Describe a challenging project you worked on recently.",
			QuestionType:   model.TypeSituational,
			TimeLimit:      180,
			ExpectedAnswer: "Project details, challenges faced, solutions implemented, outcomes",
		},
		{
			QuestionText:   "What are your greatest strengths and weaknesses?",
			QuestionType:   model.TypeBehavioral,
			TimeLimit:      120,
			ExpectedAnswer: "Honest self-assessment with examples and improvement plans",
		},
		{
			QuestionText:   "How do you handle working under pressure?",
			QuestionType:   model.TypeSituational,
			TimeLimit:      90,
			ExpectedAnswer: "Specific strategies, examples, stress management techniques",
		},
	}

	n := min(total, len(defaults))
	out := defaults[:n]
	for i := range out {
		out[i].Difficulty = difficulty
		out[i].Position = i
	}
	return out
}
