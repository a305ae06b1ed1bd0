package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/acadflow/acadflow-backend/internal/quiz"
)

func sample() quiz.Quiz {
	return quiz.Quiz{
		ID:    "qz",
		Title: "Sample",
		Questions: []quiz.Question{
			{
				ID:   "q1",
				Type: quiz.TypeChoice,
				Options: []quiz.Option{
					{ID: "a", Text: "A", Correct: true},
					{ID: "b", Text: "B"},
				},
				Points: 2,
			},
			{ID: "q2", Type: quiz.TypeFreeText, CorrectAnswer: "une réponse", Points: 3},
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := quiz.NewMemoryStore()
	if err := s.PutQuiz(ctx, sample()); err != nil {
		t.Fatal(err)
	}

	qz, err := s.GetQuiz(ctx, "qz")
	if err != nil {
		t.Fatal(err)
	}
	if len(qz.Questions) != 2 || qz.Title != "Sample" {
		t.Fatalf("quiz = %+v", qz)
	}

	q, err := s.GetQuestion(ctx, "q2")
	if err != nil {
		t.Fatal(err)
	}
	if q.CorrectAnswer != "une réponse" || q.Points != 3 {
		t.Fatalf("question = %+v", q)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := quiz.NewMemoryStore()
	if _, err := s.GetQuiz(ctx, "nope"); !errors.Is(err, quiz.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.GetQuestion(ctx, "nope"); !errors.Is(err, quiz.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestTotalPoints(t *testing.T) {
	if got := sample().TotalPoints(); got != 5 {
		t.Fatalf("total points = %v, want 5", got)
	}
	if got := (quiz.Quiz{}).TotalPoints(); got != 0 {
		t.Fatalf("empty quiz total = %v", got)
	}
}

func TestSanitizedStripsKeys(t *testing.T) {
	qz := sample()
	out := qz.Sanitized()
	for _, q := range out.Questions {
		if q.CorrectAnswer != "" {
			t.Fatalf("question %s keeps correct answer", q.ID)
		}
		for _, o := range q.Options {
			if o.Correct {
				t.Fatalf("question %s keeps flagged option", q.ID)
			}
		}
	}
	// Original untouched.
	if !qz.Questions[0].Options[0].Correct || qz.Questions[1].CorrectAnswer == "" {
		t.Fatal("Sanitized mutated its receiver")
	}
}
