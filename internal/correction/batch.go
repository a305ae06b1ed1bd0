package correction

import (
	"context"
	"fmt"
	"time"

	"github.com/acadflow/acadflow-backend/internal/quiz"
)

// BatchResult is the aggregate report for one quiz attempt. NotifiedAt is
// deliberately left nil here: the notification collaborator stamps it when the
// report is actually delivered.
type BatchResult struct {
	Status            string     `json:"status"`
	QuizID            string     `json:"quiz_id"`
	TotalQuestions    int        `json:"total_questions"`
	QuestionsAnswered int        `json:"questions_answered"`
	Results           []Result   `json:"results"`
	TotalScore        float64    `json:"total_score"`
	TotalPoints       float64    `json:"total_points"`
	ScorePercentage   float64    `json:"score_percentage"`
	GlobalFeedback    string     `json:"global_feedback"`
	NotifiedAt        *time.Time `json:"notified_at,omitempty"`
}

// ProgressFunc reports incremental advancement to whoever scheduled the batch.
type ProgressFunc func(percent int, message string)

// Orchestrator grades every answer of a batch against its question and folds
// the results into one report. It runs as the work unit of a background task.
type Orchestrator struct {
	store  quiz.Store
	grader Grader
}

func NewOrchestrator(store quiz.Store, grader Grader) *Orchestrator {
	return &Orchestrator{store: store, grader: grader}
}

// CorrectBatch grades the answered questions of the quiz in quiz order.
// A single question failing to grade degrades to a zero-score result; only a
// quiz that cannot be resolved at all fails the batch.
func (o *Orchestrator) CorrectBatch(ctx context.Context, quizID string, answers map[string]string, progress ProgressFunc) (*BatchResult, error) {
	qz, err := o.store.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("resolve quiz: %w", err)
	}
	if progress == nil {
		progress = func(int, string) {}
	}

	br := &BatchResult{
		Status:         "completed",
		QuizID:         quizID,
		TotalQuestions: len(qz.Questions),
		Results:        make([]Result, 0, len(answers)),
	}

	graded := 0
	for _, q := range qz.Questions {
		br.TotalPoints += q.Points

		answer, answered := answers[q.ID]
		if answered {
			br.QuestionsAnswered++
			br.Results = append(br.Results, o.scoreOne(ctx, q, answer))
		}

		graded++
		progress(graded*100/len(qz.Questions),
			fmt.Sprintf("graded %d/%d questions", graded, len(qz.Questions)))
	}

	// Answers referencing question ids outside the quiz degrade to failed
	// results instead of silently disappearing.
	for id := range answers {
		if !quizHasQuestion(qz, id) {
			br.QuestionsAnswered++
			br.Results = append(br.Results, Result{
				QuestionID: id,
				Feedback:   "Correction failed: question not found in quiz.",
			})
		}
	}

	for _, r := range br.Results {
		br.TotalScore += r.PointsEarned
	}
	if br.TotalPoints > 0 {
		br.ScorePercentage = br.TotalScore / br.TotalPoints * 100
	}
	br.GlobalFeedback = globalFeedback(br.ScorePercentage)
	return br, nil
}

// scoreOne degrades a strategy failure into a zero-score result.
func (o *Orchestrator) scoreOne(ctx context.Context, q quiz.Question, answer string) Result {
	res, err := o.grader.Score(ctx, q, answer)
	if err != nil {
		return Result{
			QuestionID: q.ID,
			MaxPoints:  q.Points,
			Feedback:   "Correction failed: " + err.Error(),
		}
	}
	return res
}

// globalFeedback tiers are monotonic in the score percentage.
func globalFeedback(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent work, nearly flawless."
	case pct >= 75:
		return "Very good overall performance."
	case pct >= 60:
		return "Satisfactory, with room to improve."
	case pct >= 40:
		return "Needs improvement on several topics."
	default:
		return "Insufficient. A thorough review is recommended."
	}
}

func quizHasQuestion(qz quiz.Quiz, id string) bool {
	for _, q := range qz.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
