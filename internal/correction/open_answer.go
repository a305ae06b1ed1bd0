package correction

import (
	"context"
	"fmt"

	"github.com/acadflow/acadflow-backend/internal/quiz"
)

// Tunables for the hybrid free-text scorer. The combined score is a fixed
// weighted blend of the two sub-scores; an answer passes at the midpoint.
const (
	defaultSemanticWeight = 0.7
	defaultKeywordWeight  = 0.3
	defaultPassThreshold  = 0.5
)

// openAnswerStrategy grades texte_libre questions with two independent
// sub-scores: a normalized string similarity against the reference answer and
// the proportion of reference keywords the submission covers.
type openAnswerStrategy struct {
	semanticWeight float64
	keywordWeight  float64
	passThreshold  float64
	minTokenLen    int
}

func (s openAnswerStrategy) Score(_ context.Context, q quiz.Question, answer string) (Result, error) {
	res := Result{QuestionID: q.ID, MaxPoints: q.Points, CorrectAnswer: q.CorrectAnswer}
	if q.CorrectAnswer == "" {
		return res, fmt.Errorf("question %s has no reference answer", q.ID)
	}

	semantic := textSimilarity(answer, q.CorrectAnswer)
	keyword := keywordOverlap(
		extractKeywords(q.CorrectAnswer, s.minTokenLen),
		extractKeywords(answer, s.minTokenLen),
	)
	combined := s.semanticWeight*semantic + s.keywordWeight*keyword

	res.SemanticScore = &semantic
	res.KeywordScore = &keyword
	res.Score = combined
	res.PointsEarned = combined * res.MaxPoints
	res.IsCorrect = combined >= s.passThreshold
	if res.IsCorrect {
		res.Feedback = fmt.Sprintf("Answer accepted (similarity %.0f%%, keyword coverage %.0f%%).",
			semantic*100, keyword*100)
	} else {
		res.Feedback = fmt.Sprintf("Answer needs review (similarity %.0f%%, keyword coverage %.0f%%).",
			semantic*100, keyword*100)
	}
	return res, nil
}
