package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("not found")

type memoryStore struct {
	mu          sync.RWMutex
	quizzes     map[string]Quiz
	questionIdx map[string]Question // questionID -> question, across quizzes
}

// NewMemoryStore is the offline/dev store; also used by tests.
func NewMemoryStore() Store {
	return &memoryStore{
		quizzes:     map[string]Quiz{},
		questionIdx: map[string]Question{},
	}
}

func (m *memoryStore) PutQuiz(_ context.Context, q Quiz) error {
	if q.ID == "" {
		return errors.New("quiz id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = q
	for _, qs := range q.Questions {
		m.questionIdx[qs.ID] = qs
	}
	return nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, fmt.Errorf("quiz %q: %w", id, ErrNotFound)
	}
	return q, nil
}

func (m *memoryStore) GetQuestion(_ context.Context, id string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qs, ok := m.questionIdx[id]
	if !ok {
		return Question{}, fmt.Errorf("question %q: %w", id, ErrNotFound)
	}
	return qs, nil
}
