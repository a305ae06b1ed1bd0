package correction_test

import (
	"context"
	"strings"
	"testing"

	"github.com/acadflow/acadflow-backend/internal/correction"
	"github.com/acadflow/acadflow-backend/internal/quiz"
)

func choiceQuestion() quiz.Question {
	return quiz.Question{
		ID:   "q1",
		Type: quiz.TypeChoice,
		Options: []quiz.Option{
			{ID: "a", Text: "Paris", Correct: true},
			{ID: "b", Text: "Lyon"},
			{ID: "c", Text: "Marseille"},
		},
		Points: 2,
	}
}

func TestChoiceCorrectOption(t *testing.T) {
	g := correction.NewGrader()
	res, err := g.Score(context.Background(), choiceQuestion(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCorrect || res.Score != 1.0 {
		t.Fatalf("correct option: isCorrect=%v score=%v", res.IsCorrect, res.Score)
	}
	if res.PointsEarned != 2 || res.MaxPoints != 2 {
		t.Fatalf("points: earned=%v max=%v", res.PointsEarned, res.MaxPoints)
	}
	if res.CorrectAnswer != "Paris" {
		t.Fatalf("correct answer echo = %q", res.CorrectAnswer)
	}
}

func TestChoiceWrongOption(t *testing.T) {
	g := correction.NewGrader()
	for _, answer := range []string{"b", "c", "zzz"} {
		res, err := g.Score(context.Background(), choiceQuestion(), answer)
		if err != nil {
			t.Fatal(err)
		}
		if res.IsCorrect || res.Score != 0.0 || res.PointsEarned != 0 {
			t.Fatalf("answer %q: isCorrect=%v score=%v", answer, res.IsCorrect, res.Score)
		}
		if !strings.Contains(res.Feedback, "Paris") {
			t.Fatalf("feedback omits correct answer text: %q", res.Feedback)
		}
	}
}

func TestChoiceFirstFlaggedOptionWins(t *testing.T) {
	q := choiceQuestion()
	q.Options[2].Correct = true // malformed bank: two flags

	g := correction.NewGrader()
	res, err := g.Score(context.Background(), q, "a")
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCorrect {
		t.Fatal("first flagged option should win the tie-break")
	}
}

func TestChoiceNoCorrectOptionErrors(t *testing.T) {
	q := choiceQuestion()
	for i := range q.Options {
		q.Options[i].Correct = false
	}
	g := correction.NewGrader()
	if _, err := g.Score(context.Background(), q, "a"); err == nil {
		t.Fatal("expected error for a question without a correct option")
	}
}

func TestTrueFalse(t *testing.T) {
	q := quiz.Question{ID: "q2", Type: quiz.TypeTrueFalse, CorrectAnswer: "vrai", Points: 1}
	g := correction.NewGrader()

	res, err := g.Score(context.Background(), q, "Vrai")
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCorrect || res.Score != 1.0 {
		t.Fatalf("case-insensitive match failed: %+v", res)
	}

	res, err = g.Score(context.Background(), q, "faux")
	if err != nil {
		t.Fatal(err)
	}
	if res.IsCorrect || res.Score != 0.0 {
		t.Fatalf("wrong answer accepted: %+v", res)
	}
}

func TestUnknownTypeErrors(t *testing.T) {
	q := quiz.Question{ID: "q3", Type: "dessin", Points: 1}
	g := correction.NewGrader()
	if _, err := g.Score(context.Background(), q, "x"); err == nil {
		t.Fatal("expected error for unknown question type")
	}
}

func TestOpenAnswerIdenticalToReference(t *testing.T) {
	q := quiz.Question{
		ID:            "q4",
		Type:          quiz.TypeFreeText,
		CorrectAnswer: "La mitochondrie produit l'énergie de la cellule",
		Points:        3,
	}
	g := correction.NewGrader()
	res, err := g.Score(context.Background(), q, q.CorrectAnswer)
	if err != nil {
		t.Fatal(err)
	}
	if res.SemanticScore == nil || res.KeywordScore == nil {
		t.Fatal("sub-scores missing from result")
	}
	if *res.KeywordScore != 1.0 {
		t.Fatalf("keyword score = %v, want 1.0", *res.KeywordScore)
	}
	if *res.SemanticScore != 1.0 {
		t.Fatalf("semantic score = %v, want 1.0", *res.SemanticScore)
	}
	if !res.IsCorrect {
		t.Fatal("identical answer not accepted")
	}
	if res.Score < 0 || res.Score > 1 {
		t.Fatalf("combined score %v out of [0,1]", res.Score)
	}
}

func TestOpenAnswerUnrelatedText(t *testing.T) {
	q := quiz.Question{
		ID:            "q5",
		Type:          quiz.TypeFreeText,
		CorrectAnswer: "La mitochondrie produit l'énergie de la cellule",
		Points:        3,
	}
	g := correction.NewGrader()
	res, err := g.Score(context.Background(), q, "zzz")
	if err != nil {
		t.Fatal(err)
	}
	if res.IsCorrect {
		t.Fatalf("unrelated answer accepted: %+v", res)
	}
	if !strings.Contains(res.Feedback, "needs review") {
		t.Fatalf("feedback wording = %q", res.Feedback)
	}
}

func TestOpenAnswerThresholdControlsWording(t *testing.T) {
	q := quiz.Question{ID: "q6", Type: quiz.TypeFreeText, CorrectAnswer: "photosynthèse", Points: 1}

	strict := correction.NewGrader(correction.WithPassThreshold(1.01))
	res, err := strict.Score(context.Background(), q, "photosynthèse")
	if err != nil {
		t.Fatal(err)
	}
	if res.IsCorrect || !strings.Contains(res.Feedback, "needs review") {
		t.Fatalf("unreachable threshold still accepted: %+v", res)
	}

	lax := correction.NewGrader(correction.WithPassThreshold(0))
	res, err = lax.Score(context.Background(), q, "zzz")
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsCorrect || !strings.Contains(res.Feedback, "accepted") {
		t.Fatalf("zero threshold rejected answer: %+v", res)
	}
}
