package correction

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/acadflow/acadflow-backend/internal/quiz"
	"github.com/acadflow/acadflow-backend/internal/task"
)

// Notifier is the external notification collaborator. It owns delivery and the
// delivery timestamp; a nil Notifier disables event recording.
type Notifier interface {
	CorrectionCompleted(ctx context.Context, taskID, quizID string, result interface{}) error
	CorrectionFailed(ctx context.Context, taskID, quizID, reason string) error
}

// perQuestionEstimate feeds the remaining-time hint for batch corrections.
const perQuestionEstimate = 150 * time.Millisecond

// Service submits correction work to the task registry and exposes polling.
// It is the single entry point the HTTP layer talks to.
type Service struct {
	store    quiz.Store
	grader   Grader
	registry *task.Registry
	batch    *Orchestrator
	notifier Notifier
}

func NewService(store quiz.Store, grader Grader, registry *task.Registry, notifier Notifier) *Service {
	return &Service{
		store:    store,
		grader:   grader,
		registry: registry,
		batch:    NewOrchestrator(store, grader),
		notifier: notifier,
	}
}

// SubmitAnswer schedules the grading of a single answer and returns the task
// id immediately. Question resolution happens inside the task: an unknown
// question id surfaces as a FAILURE observed via polling, not here.
func (s *Service) SubmitAnswer(questionID, answer string) string {
	return s.registry.Submit(func(ctx context.Context, taskID string) (interface{}, error) {
		q, err := s.store.GetQuestion(ctx, questionID)
		if err != nil {
			s.notifyFailure(ctx, taskID, "", err)
			return nil, fmt.Errorf("resolve question: %w", err)
		}
		res, err := s.grader.Score(ctx, q, answer)
		if err != nil {
			s.notifyFailure(ctx, taskID, "", err)
			return nil, err
		}
		s.notifySuccess(ctx, taskID, "", res)
		return res, nil
	})
}

// SubmitBatch schedules the correction of a full quiz attempt.
func (s *Service) SubmitBatch(quizID string, answers map[string]string) string {
	return s.registry.Submit(func(ctx context.Context, taskID string) (interface{}, error) {
		s.registry.SetEstimatedDuration(taskID, time.Duration(len(answers))*perQuestionEstimate)

		report, err := s.batch.CorrectBatch(ctx, quizID, answers, func(pct int, msg string) {
			s.registry.UpdateProgress(taskID, pct, msg)
		})
		if err != nil {
			s.notifyFailure(ctx, taskID, quizID, err)
			return nil, err
		}
		s.notifySuccess(ctx, taskID, quizID, report)
		return report, nil
	})
}

// TaskStatus returns the polled snapshot for a task id.
func (s *Service) TaskStatus(taskID string) (task.Snapshot, bool) {
	return s.registry.GetStatus(taskID)
}

func (s *Service) notifySuccess(ctx context.Context, taskID, quizID string, result interface{}) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CorrectionCompleted(ctx, taskID, quizID, result); err != nil {
		log.Printf("correction: notify completed %s: %v", taskID, err)
	}
}

func (s *Service) notifyFailure(ctx context.Context, taskID, quizID string, cause error) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CorrectionFailed(ctx, taskID, quizID, cause.Error()); err != nil {
		log.Printf("correction: notify failed %s: %v", taskID, err)
	}
}
