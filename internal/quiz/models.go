package quiz

import "context"

// Question types understood by the correction engine.
const (
	TypeChoice    = "qcm"
	TypeTrueFalse = "vrai_faux"
	TypeFreeText  = "texte_libre"
)

type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

type Question struct {
	ID     string `json:"id"`
	Type   string `json:"type"` // qcm, vrai_faux, texte_libre
	Prompt string `json:"prompt,omitempty"`

	Options       []Option `json:"options,omitempty"` // qcm only
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Points        float64  `json:"points"`
}

type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt int64      `json:"created_at,omitempty"`
}

// TotalPoints sums max points over every question, answered or not.
func (q Quiz) TotalPoints() float64 {
	total := 0.0
	for _, qs := range q.Questions {
		total += qs.Points
	}
	return total
}

// Sanitized returns a deep copy with grading reference data stripped, safe to
// serve to students without leaking the stored quiz's answer keys.
func (q Quiz) Sanitized() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, qs := range q.Questions {
		cp := qs
		cp.CorrectAnswer = ""
		cp.Options = make([]Option, len(qs.Options))
		for j, o := range qs.Options {
			o.Correct = false
			cp.Options[j] = o
		}
		out.Questions[i] = cp
	}
	return out
}

// Store is the question bank the correction core reads from. Implementations
// must never let graders mutate stored questions.
type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	GetQuestion(ctx context.Context, id string) (Question, error)
}
