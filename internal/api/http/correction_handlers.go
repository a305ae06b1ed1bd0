package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/acadflow/acadflow-backend/internal/correction"
	"github.com/acadflow/acadflow-backend/internal/task"
)

// POST /corrections/answers  { "question_id": "...", "answer": "..." }
//
// Validation is synchronous: no task is created for a malformed request. An
// answer must be present, but an empty string is a legitimate submission.
func SubmitAnswerHandler(svc *correction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID string  `json:"question_id"`
			Answer     *string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.QuestionID) == "" {
			http.Error(w, "question_id required", http.StatusBadRequest)
			return
		}
		if req.Answer == nil {
			http.Error(w, "answer required", http.StatusBadRequest)
			return
		}
		taskID := svc.SubmitAnswer(req.QuestionID, *req.Answer)
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"task_id": taskID,
			"status":  string(task.StatusPending),
		})
	}
}

// POST /corrections/batches  { "quiz_id": "...", "answers": { qid: answer } }
func SubmitBatchHandler(svc *correction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID  string            `json:"quiz_id"`
			Answers map[string]string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.QuizID) == "" {
			http.Error(w, "quiz_id required", http.StatusBadRequest)
			return
		}
		if len(req.Answers) == 0 {
			http.Error(w, "answers required", http.StatusBadRequest)
			return
		}
		taskID := svc.SubmitBatch(req.QuizID, req.Answers)
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"task_id": taskID,
			"status":  string(task.StatusPending),
			"quiz_id": req.QuizID,
		})
	}
}

// GET /corrections/tasks/{taskID}
//
// Unknown ids (including cleaned-up tasks) are 404, never an error payload.
func TaskStatusHandler(svc *correction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := strings.TrimSpace(chi.URLParam(r, "taskID"))
		if taskID == "" {
			http.Error(w, "taskID required", http.StatusBadRequest)
			return
		}
		snap, ok := svc.TaskStatus(taskID)
		if !ok {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(snap)
	}
}
