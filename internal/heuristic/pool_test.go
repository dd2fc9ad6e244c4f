package heuristic

import (
	"math/rand/v2"
	"testing"

	"github.com/pavelanni/interviewer/internal/model"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSelectQuestionsCount(t *testing.T) {
	rng := testRand()
	for total := 1; total <= 20; total++ {
		questions := SelectQuestions(rng, "Software Engineer", model.DifficultyIntermediate, total)
		if len(questions) != total {
			t.Errorf("SelectQuestions(total=%d) returned %d questions", total, len(questions))
		}
		for i, q := range questions {
			if q.Position != i {
				t.Errorf("total=%d: question %d has position %d", total, i, q.Position)
			}
			if q.Difficulty != model.DifficultyIntermediate {
				t.Errorf("total=%d: question %d has difficulty %s", total, i, q.Difficulty)
			}
			if q.TimeLimit <= 0 {
				t.Errorf("total=%d: question %d has time limit %d", total, i, q.TimeLimit)
			}
			if q.ExpectedAnswer == "" {
				t.Errorf("total=%d: question %d has empty expected answer", total, i)
			}
		}
	}
}

func TestSelectQuestionsNoDuplicates(t *testing.T) {
	rng := testRand()
	questions := SelectQuestions(rng, "Software Engineer", model.DifficultyBeginner, 10)
	seen := make(map[string]bool)
	for _, q := range questions {
		if seen[q.QuestionText] {
			t.Errorf("duplicate question %q", q.QuestionText)
		}
		seen[q.QuestionText] = true
	}
}

func TestSelectQuestionsMix(t *testing.T) {
	rng := testRand()
	questions := SelectQuestions(rng, "Software Engineer", model.DifficultyAdvanced, 10)
	counts := make(map[model.QuestionType]int)
	for _, q := range questions {
		counts[q.QuestionType]++
	}
	// 40/30/20/10 split at 10 questions.
	want := map[model.QuestionType]int{
		model.TypeTechnical:   4,
		model.TypeBehavioral:  3,
		model.TypeSituational: 2,
		model.TypeCoding:      1,
	}
	for qt, n := range want {
		if counts[qt] != n {
			t.Errorf("type %s: got %d questions, want %d", qt, counts[qt], n)
		}
	}
}

func TestSelectQuestionsSmallTotal(t *testing.T) {
	// Rounded quotas for 3 sum to 2+1+1+1=5; coding absorbs the overflow
	// and the final truncation trims the rest.
	rng := testRand()
	questions := SelectQuestions(rng, "Project Coordinator", model.DifficultyBeginner, 3)
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	for _, q := range questions {
		if q.QuestionType == model.TypeCoding {
			t.Errorf("coding question selected with total=3: %q", q.QuestionText)
		}
	}
}

func TestTechnicalPoolRouting(t *testing.T) {
	tests := []struct {
		jobRole  string
		wantPool string
	}{
		{"Senior Software Engineer", "software"},
		{"Backend Developer", "software"},
		{"Marketing Manager", "marketing"},
		{"Digital Strategist", "marketing"},
		{"Sales Representative", "sales"},
		{"Account Executive", "sales"},
		{"Project Coordinator", "general"},
		{"", "general"},
	}
	for _, tt := range tests {
		got := TechnicalPoolFor(tt.jobRole)
		want := technicalPools[tt.wantPool]
		if len(got) == 0 || got[0] != want[0] {
			t.Errorf("TechnicalPoolFor(%q): got pool starting %q, want %s pool", tt.jobRole, got[0], tt.wantPool)
		}
	}
}

func TestSelectQuestionsReproducible(t *testing.T) {
	a := SelectQuestions(rand.New(rand.NewPCG(7, 7)), "Engineer", model.DifficultyIntermediate, 8)
	b := SelectQuestions(rand.New(rand.NewPCG(7, 7)), "Engineer", model.DifficultyIntermediate, 8)
	for i := range a {
		if a[i].QuestionText != b[i].QuestionText {
			t.Fatalf("selection not reproducible at index %d: %q vs %q", i, a[i].QuestionText, b[i].QuestionText)
		}
	}
}

func TestDefaultQuestions(t *testing.T) {
	questions := DefaultQuestions(model.DifficultyBeginner, 3)
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	if questions[0].QuestionText != "Tell me about yourself and your background." {
		t.Errorf("first default question = %q", questions[0].QuestionText)
	}
	for i, q := range questions {
		if q.Position != i {
			t.Errorf("question %d has position %d", i, q.Position)
		}
		if q.Difficulty != model.DifficultyBeginner {
			t.Errorf("question %d has difficulty %s", i, q.Difficulty)
		}
	}
}
