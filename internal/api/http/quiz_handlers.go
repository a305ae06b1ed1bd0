package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/acadflow/acadflow-backend/internal/quiz"
)

// POST /quizzes
func UploadQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if q.ID == "" || len(q.Questions) == 0 {
			http.Error(w, "id and questions required", http.StatusBadRequest)
			return
		}
		for _, qs := range q.Questions {
			if err := validateQuestion(qs); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			http.Error(w, "store quiz: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": q.ID})
	}
}

// GET /quizzes/{quizID} — answer keys stripped for students.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "quizID"))
		if id == "" {
			http.Error(w, "quizID required", http.StatusBadRequest)
			return
		}
		q, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, "quiz not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(q.Sanitized())
	}
}

// validateQuestion enforces the authoring-time invariants the correction
// engine relies on, in particular exactly one correct option per qcm question.
func validateQuestion(q quiz.Question) error {
	if q.ID == "" {
		return errors.New("question id required")
	}
	if q.Points <= 0 {
		return errors.New("question " + q.ID + ": points must be positive")
	}
	switch q.Type {
	case quiz.TypeChoice:
		correct := 0
		for _, o := range q.Options {
			if o.Correct {
				correct++
			}
		}
		if correct != 1 {
			return errors.New("question " + q.ID + ": exactly one correct option required")
		}
	case quiz.TypeTrueFalse, quiz.TypeFreeText:
		if q.CorrectAnswer == "" {
			return errors.New("question " + q.ID + ": correct_answer required")
		}
	default:
		return errors.New("question " + q.ID + ": unknown type " + q.Type)
	}
	return nil
}
