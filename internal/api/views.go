package api

import (
	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
)

// questionView is a question as the learner sees it: no answer, no
// tense, no explanation.
type questionView struct {
	Index       int      `json:"index"`
	ID          int      `json:"id"`
	Kind        string   `json:"kind"`
	Sentence    string   `json:"sentence"`
	Options     []string `json:"options,omitempty"`
	Tokens      []string `json:"tokens,omitempty"`
	WrongPart   string   `json:"wrongPart,omitempty"`
	TargetTense string   `json:"targetTense,omitempty"`
}

func newQuestionView(q catalog.Question, index int) *questionView {
	kind := "choice"
	if q.Kind() == catalog.KindAssemble {
		kind = "assemble"
	}
	return &questionView{
		Index:       index,
		ID:          q.ID,
		Kind:        kind,
		Sentence:    q.Sentence,
		Options:     q.Options,
		Tokens:      q.Tokens,
		WrongPart:   q.WrongPart,
		TargetTense: q.TargetTense,
	}
}

// resultView reports a judged answer.
type resultView struct {
	Index       int    `json:"index"`
	Correct     bool   `json:"correct"`
	Expected    string `json:"expected"`
	Explanation string `json:"explanation,omitempty"`
	Solved      string `json:"solved"`
}

func newResultView(o quiz.Outcome) *resultView {
	return &resultView{
		Index:       o.Index,
		Correct:     o.Correct,
		Expected:    o.Expected,
		Explanation: o.Explanation,
		Solved:      o.Question.Solved(),
	}
}

type sessionView struct {
	ID            string        `json:"id"`
	Mode          string        `json:"mode"`
	Phase         string        `json:"phase"`
	Index         int           `json:"index"`
	Total         int           `json:"total"`
	Score         *int          `json:"score,omitempty"`
	Timed         bool          `json:"timed"`
	RemainingSecs int           `json:"remainingSecs,omitempty"`
	Question      *questionView `json:"question,omitempty"`
	Feedback      *resultView   `json:"feedback,omitempty"`
}

func newSessionView(id string, ls *liveSession) sessionView {
	s := ls.session
	phase := s.Phase()
	v := sessionView{
		ID:    id,
		Mode:  ls.round.Mode.ID,
		Phase: phase.String(),
		Total: s.Len(),
		Timed: s.Timed(),
	}
	if ls.round.Mode.Feedback != quiz.FeedbackHidden {
		score := s.Score()
		v.Score = &score
	}
	if v.Timed {
		v.RemainingSecs = int(s.Remaining().Seconds())
	}
	if q, idx, ok := s.Current(); ok {
		v.Index = idx
		v.Question = newQuestionView(q, idx)
	} else {
		v.Index = v.Total
	}
	if phase == quiz.PhaseFeedback {
		if o, ok := s.LastOutcome(); ok {
			v.Feedback = newResultView(o)
		}
	}
	return v
}

type answerView struct {
	Result  *resultView `json:"result,omitempty"`
	Session sessionView `json:"session"`
}

type referenceView struct {
	Label  string `json:"label"`
	Found  bool   `json:"found"`
	Tense  string `json:"tense,omitempty"`
	Lesson string `json:"lesson,omitempty"`
}

func newReferenceViews(refs []catalog.Reference) []referenceView {
	out := make([]referenceView, 0, len(refs))
	for _, r := range refs {
		v := referenceView{Label: r.Label, Found: r.Found}
		if r.Found {
			v.Tense = r.Tense.ID
			v.Lesson = r.Tense.Name
		}
		out = append(out, v)
	}
	return out
}

type completeView struct {
	Report      quiz.Report            `json:"report"`
	Earned      []string               `json:"earned"`
	Remediation []referenceView        `json:"remediation"`
	Progress    *progress.UserProgress `json:"progress,omitempty"`
	Warning     string                 `json:"warning,omitempty"`
}

type tenseSummary struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Era  catalog.Era `json:"era"`
}
