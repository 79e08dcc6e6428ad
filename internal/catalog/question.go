package catalog

import "strings"

// Blank marks the gap in fill-in sentences.
const Blank = "___"

// Kind describes how a question is answered.
type Kind int

const (
	KindChoice   Kind = iota // Pick one of Options
	KindAssemble             // Arrange Tokens into a sentence
)

// Question is one evaluable prompt. Questions are never mutated after
// they are loaded.
type Question struct {
	ID          int      `json:"id"`
	Sentence    string   `json:"sentence"`
	Correct     string   `json:"correct"`
	Options     []string `json:"options,omitempty"`
	Tokens      []string `json:"tokens,omitempty"`
	Tense       string   `json:"tense"`
	WrongPart   string   `json:"wrongPart,omitempty"`
	TargetTense string   `json:"targetTense,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Kind reports whether the question is answered by choice or assembly.
func (q Question) Kind() Kind {
	if len(q.Tokens) > 0 {
		return KindAssemble
	}
	return KindChoice
}

// Pool names.
const (
	PoolPreTest   = "pre-test"
	PoolPostTest  = "post-test"
	PoolGarden    = "garden"
	PoolMachine   = "machine"
	PoolQuest     = "quest"
	PoolScramble  = "scramble"
	PoolMatch     = "match"
	PoolSniper    = "sniper"
	PoolSentences = "sentences"
)

// Pool is a named, ordered collection of questions.
type Pool struct {
	Name      string
	Questions []Question
}

// Len returns the number of questions in the pool.
func (p Pool) Len() int { return len(p.Questions) }

// Solved returns the sentence as it reads once answered correctly. Tense
// matching questions have nothing to fill in and return the sentence
// unchanged.
func (q Question) Solved() string {
	switch {
	case strings.Contains(q.Sentence, Blank):
		return strings.Replace(q.Sentence, Blank, q.Correct, 1)
	case q.WrongPart != "":
		return strings.Replace(q.Sentence, q.WrongPart, q.Correct, 1)
	case q.TargetTense != "", q.Kind() == KindAssemble:
		return q.Correct
	default:
		return q.Sentence
	}
}
