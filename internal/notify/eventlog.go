package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	EventCorrectionCompleted = "correction.completed"
	EventCorrectionFailed    = "correction.failed"
)

type Event struct {
	Offset    int64
	Type      string
	TaskID    string
	QuizID    string
	DataJSON  string
	CreatedAt int64
	// SentAt stays NULL until the delivery collaborator stamps it.
	SentAt *int64
}

// EventRepo appends correction outcomes to the event log the notification
// service drains. It records, it does not deliver.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) CorrectionCompleted(ctx context.Context, taskID, quizID string, result interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.append(ctx, Event{
		Type:     EventCorrectionCompleted,
		TaskID:   taskID,
		QuizID:   quizID,
		DataJSON: string(data),
	})
}

func (r *EventRepo) CorrectionFailed(ctx context.Context, taskID, quizID, reason string) error {
	data, _ := json.Marshal(map[string]string{"error": reason})
	return r.append(ctx, Event{
		Type:     EventCorrectionFailed,
		TaskID:   taskID,
		QuizID:   quizID,
		DataJSON: string(data),
	})
}

func (r *EventRepo) append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO correction_events (typ, task_id, quiz_id, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.Type, e.TaskID, e.QuizID, e.DataJSON, time.Now().Unix())
	return err
}

// MarkSent is called by the delivery stage once the notification went out.
func (r *EventRepo) MarkSent(ctx context.Context, offset int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE correction_events SET sent_at=$1 WHERE "offset"=$2`,
		time.Now().Unix(), offset)
	return err
}

// Unsent returns pending events oldest first, up to limit.
func (r *EventRepo) Unsent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", typ, task_id, quiz_id, data, created_at
		 FROM correction_events WHERE sent_at IS NULL ORDER BY "offset" LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.Type, &e.TaskID, &e.QuizID, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
