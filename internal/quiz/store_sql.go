package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,questions_json,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, questions_json=EXCLUDED.questions_json`,
		q.ID, q.Title, string(qj), time.Now().Unix())
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,questions_json,created_at FROM quizzes WHERE id=$1`, id)
	var q Quiz
	var qjson string
	if err := row.Scan(&q.ID, &q.Title, &qjson, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, fmt.Errorf("quiz %q: %w", id, ErrNotFound)
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// GetQuestion scans quizzes for a question id. The question bank is small
// enough that an extra index table is not worth the schema churn yet.
func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT questions_json FROM quizzes`)
	if err != nil {
		return Question{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var qjson string
		if err := rows.Scan(&qjson); err != nil {
			return Question{}, err
		}
		var questions []Question
		if err := json.Unmarshal([]byte(qjson), &questions); err != nil {
			continue
		}
		for _, qs := range questions {
			if qs.ID == id {
				return qs, nil
			}
		}
	}
	if err := rows.Err(); err != nil {
		return Question{}, err
	}
	return Question{}, fmt.Errorf("question %q: %w", id, ErrNotFound)
}
