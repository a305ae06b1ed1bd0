package correction

import (
	"context"
	"fmt"

	"github.com/acadflow/acadflow-backend/internal/quiz"
)

// Result is the outcome of grading one answer. Score is normalized to [0,1];
// PointsEarned is Score scaled by the question's max points.
type Result struct {
	QuestionID    string  `json:"question_id"`
	IsCorrect     bool    `json:"is_correct"`
	Score         float64 `json:"score"`
	Feedback      string  `json:"feedback"`
	CorrectAnswer string  `json:"correct_answer,omitempty"`
	MaxPoints     float64 `json:"max_points"`
	PointsEarned  float64 `json:"points_earned"`

	// Sub-scores of the hybrid open-answer strategy; nil for exact-match types.
	SemanticScore *float64 `json:"semantic_score,omitempty"`
	KeywordScore  *float64 `json:"keyword_score,omitempty"`
}

// Strategy grades one answer against one question's reference data. Strategies
// are pure: no shared state, no knowledge of tasks or other questions.
type Strategy interface {
	Score(ctx context.Context, q quiz.Question, answer string) (Result, error)
}

// Grader routes by question type to the matching Strategy.
type Grader interface {
	Score(ctx context.Context, q quiz.Question, answer string) (Result, error)
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Score(ctx context.Context, q quiz.Question, answer string) (Result, error) {
	s, ok := g.strategies[q.Type]
	if !ok {
		return Result{}, fmt.Errorf("no strategy for question type %q", q.Type)
	}
	return s.Score(ctx, q, answer)
}

// Grader options

type Option func(*config)

type config struct {
	SemanticWeight float64
	KeywordWeight  float64
	PassThreshold  float64
	MinTokenLen    int
}

func WithWeights(semantic, keyword float64) Option {
	return func(c *config) { c.SemanticWeight, c.KeywordWeight = semantic, keyword }
}
func WithPassThreshold(t float64) Option { return func(c *config) { c.PassThreshold = t } }
func WithMinTokenLen(n int) Option       { return func(c *config) { c.MinTokenLen = n } }

// NewGrader installs the built-in strategies for the three question types.
func NewGrader(opts ...Option) Grader {
	cfg := &config{
		SemanticWeight: defaultSemanticWeight,
		KeywordWeight:  defaultKeywordWeight,
		PassThreshold:  defaultPassThreshold,
		MinTokenLen:    defaultMinTokenLen,
	}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultGrader{
		strategies: map[string]Strategy{
			quiz.TypeChoice:    choiceStrategy{},
			quiz.TypeTrueFalse: trueFalseStrategy{},
			quiz.TypeFreeText: openAnswerStrategy{
				semanticWeight: cfg.SemanticWeight,
				keywordWeight:  cfg.KeywordWeight,
				passThreshold:  cfg.PassThreshold,
				minTokenLen:    cfg.MinTokenLen,
			},
		},
	}
}

// --- Exact-match strategies ---

type choiceStrategy struct{}

func (choiceStrategy) Score(_ context.Context, q quiz.Question, answer string) (Result, error) {
	res := Result{QuestionID: q.ID, MaxPoints: q.Points}

	// First flagged option wins if the bank ever holds more than one.
	var correct *quiz.Option
	for i := range q.Options {
		if q.Options[i].Correct {
			correct = &q.Options[i]
			break
		}
	}
	if correct == nil {
		return res, fmt.Errorf("question %s has no correct option", q.ID)
	}

	res.CorrectAnswer = correct.Text
	if answer == correct.ID {
		res.IsCorrect = true
		res.Score = 1.0
		res.Feedback = "Correct answer."
	} else {
		res.Feedback = fmt.Sprintf("Incorrect. The correct answer was: %s", correct.Text)
	}
	res.PointsEarned = res.Score * res.MaxPoints
	return res, nil
}

type trueFalseStrategy struct{}

func (trueFalseStrategy) Score(_ context.Context, q quiz.Question, answer string) (Result, error) {
	res := Result{QuestionID: q.ID, MaxPoints: q.Points, CorrectAnswer: q.CorrectAnswer}
	if q.CorrectAnswer == "" {
		return res, fmt.Errorf("question %s has no reference answer", q.ID)
	}
	if normalize(answer) == normalize(q.CorrectAnswer) {
		res.IsCorrect = true
		res.Score = 1.0
		res.Feedback = "Correct answer."
	} else {
		res.Feedback = fmt.Sprintf("Incorrect. The correct answer was: %s", q.CorrectAnswer)
	}
	res.PointsEarned = res.Score * res.MaxPoints
	return res, nil
}
