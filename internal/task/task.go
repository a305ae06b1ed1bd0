package task

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusProgress Status = "PROGRESS"
	StatusSuccess  Status = "SUCCESS"
	StatusFailure  Status = "FAILURE"
)

// Terminal reports whether no further mutation is permitted.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// record is the registry-owned mutable state of one background job.
// It never leaves the registry; readers get a Snapshot copy.
type record struct {
	id        string
	status    Status
	progress  int
	message   string
	result    interface{}
	errMsg    string
	startedAt time.Time
	estimated time.Duration // 0 = no estimate supplied
}

// Snapshot is an immutable copy of a task's state at read time,
// augmented with the derived timing fields.
type Snapshot struct {
	ID       string      `json:"task_id"`
	Status   Status      `json:"status"`
	Progress int         `json:"progress"`
	Message  string      `json:"message,omitempty"`
	Result   interface{} `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`

	StartedAt      time.Time `json:"started_at"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	// EstimatedRemainingSeconds is nil unless an estimate was attached
	// via SetEstimatedDuration.
	EstimatedRemainingSeconds *float64 `json:"estimated_remaining_seconds,omitempty"`
}

func (r *record) snapshot(now time.Time) Snapshot {
	s := Snapshot{
		ID:             r.id,
		Status:         r.status,
		Progress:       r.progress,
		Message:        r.message,
		Result:         r.result,
		Error:          r.errMsg,
		StartedAt:      r.startedAt,
		ElapsedSeconds: now.Sub(r.startedAt).Seconds(),
	}
	if r.estimated > 0 {
		rem := (r.estimated - now.Sub(r.startedAt)).Seconds()
		if rem < 0 {
			rem = 0
		}
		s.EstimatedRemainingSeconds = &rem
	}
	return s
}
