// Package quiz runs one attempt over a sampled subset of a question pool:
// sampling, answer checking, scoring, the optional countdown, and the
// final report.
package quiz

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tensebunny/tensebunny/internal/catalog"
)

var (
	// ErrNotAccepting is returned when an answer arrives while the
	// session is not waiting for one.
	ErrNotAccepting = errors.New("quiz: session is not accepting answers")

	// ErrStaleAnswer is returned when an answer targets a question the
	// cursor has already moved past.
	ErrStaleAnswer = errors.New("quiz: answer is for a question that is no longer current")

	// ErrNoFeedback is returned by Advance outside the feedback step.
	ErrNoFeedback = errors.New("quiz: no feedback step to advance past")

	// ErrNotCompleted is returned by Complete before the session ends.
	ErrNotCompleted = errors.New("quiz: session has not completed")

	// ErrAlreadyReported is returned by Complete on its second call.
	ErrAlreadyReported = errors.New("quiz: session already reported")
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFeedback
	PhaseCompleted
	PhaseAbandoned
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseFeedback:
		return "feedback"
	case PhaseCompleted:
		return "completed"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Options tune a session.
type Options struct {
	// Feedback pauses after each answer until Advance is called.
	Feedback bool

	// XPPerCorrect is multiplied by the score in the report.
	XPPerCorrect int

	// Timer enables the countdown when non-nil.
	Timer *TimerConfig

	// Rand drives sampling. Nil uses the global generator.
	Rand *rand.Rand
}

// Outcome describes the result of one submitted answer.
type Outcome struct {
	Index       int
	Question    catalog.Question
	Answer      string
	Correct     bool
	Expected    string
	Explanation string
	Phase       Phase
	Score       int
	Remaining   time.Duration
}

// Session is a single attempt. All methods are safe for concurrent use;
// the countdown and the answering party are serialized by one mutex.
type Session struct {
	mu        sync.Mutex
	questions []catalog.Question
	cursor    int
	score     int
	answered  int
	missed    []string
	missedSet map[string]struct{}
	phase     Phase
	last      *Outcome
	xpPer     int
	feedback  bool
	clock     *Countdown
	reported  bool
}

// Start samples count questions from pool and begins the session. An
// empty sample produces a session that is already completed.
func Start(pool []catalog.Question, count int, opts Options) *Session {
	s := &Session{
		questions: Sample(pool, count, opts.Rand),
		missedSet: make(map[string]struct{}),
		xpPer:     max(0, opts.XPPerCorrect),
		feedback:  opts.Feedback,
		phase:     PhaseInProgress,
	}
	if opts.Timer != nil {
		s.clock = NewCountdown(*opts.Timer)
	}
	if len(s.questions) == 0 {
		s.phase = PhaseCompleted
	}
	return s
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Current returns the question under the cursor. The second result is
// false once the session is over.
func (s *Session) Current() (catalog.Question, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress && s.phase != PhaseFeedback {
		return catalog.Question{}, s.cursor, false
	}
	return s.questions[s.cursor], s.cursor, true
}

// Len returns the number of sampled questions.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Questions returns a copy of the sampled sequence.
func (s *Session) Questions() []catalog.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Answered returns how many questions have been answered so far,
// including one whose feedback is still showing.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered
}

// Timed reports whether the session runs a countdown.
func (s *Session) Timed() bool {
	return s.clock != nil
}

// Remaining returns the time left on the countdown, or zero when untimed.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clock == nil {
		return 0
	}
	return s.clock.Remaining()
}

// LastOutcome returns the most recent outcome, if any.
func (s *Session) LastOutcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Outcome{}, false
	}
	return *s.last, true
}

// Submit answers the current question.
func (s *Session) Submit(answer string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submit(s.cursor, answer)
}

// SubmitAt answers the question at index. It fails with ErrStaleAnswer
// when index is not the current question, which makes duplicate UI
// events harmless.
func (s *Session) SubmitAt(index int, answer string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submit(index, answer)
}

func (s *Session) submit(index int, answer string) (Outcome, error) {
	if s.phase != PhaseInProgress {
		return Outcome{}, ErrNotAccepting
	}
	if index != s.cursor {
		return Outcome{}, ErrStaleAnswer
	}

	q := s.questions[s.cursor]
	correct := answer == q.Correct
	s.answered++
	if correct {
		s.score++
	} else {
		s.recordMiss(q.Tense)
	}

	if s.clock != nil {
		if correct {
			s.clock.Reward()
		} else {
			s.clock.Penalize()
		}
	}

	switch {
	case s.clock != nil && s.clock.Expired():
		s.phase = PhaseCompleted
	case s.feedback:
		s.phase = PhaseFeedback
	default:
		s.advance()
	}

	out := Outcome{
		Index:       index,
		Question:    q,
		Answer:      answer,
		Correct:     correct,
		Expected:    q.Correct,
		Explanation: q.Explanation,
		Phase:       s.phase,
		Score:       s.score,
	}
	if s.clock != nil {
		out.Remaining = s.clock.Remaining()
	}
	s.last = &out
	return out, nil
}

func (s *Session) recordMiss(label string) {
	if _, ok := s.missedSet[label]; ok {
		return
	}
	s.missedSet[label] = struct{}{}
	s.missed = append(s.missed, label)
}

// Advance leaves the feedback step and moves to the next question, or
// completes the session after the last one.
func (s *Session) Advance() (Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseFeedback {
		return s.phase, ErrNoFeedback
	}
	s.advance()
	return s.phase, nil
}

func (s *Session) advance() {
	s.cursor++
	if s.cursor >= len(s.questions) {
		s.cursor = len(s.questions)
		s.phase = PhaseCompleted
		return
	}
	s.phase = PhaseInProgress
}

// Tick advances the countdown by one interval. When it runs out the
// session completes immediately. Ticks on untimed or finished sessions
// change nothing.
func (s *Session) Tick() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clock == nil {
		return 0, s.finished()
	}
	if s.finished() {
		return s.clock.Remaining(), true
	}
	s.clock.Tick()
	if s.clock.Expired() {
		s.phase = PhaseCompleted
	}
	return s.clock.Remaining(), s.finished()
}

func (s *Session) finished() bool {
	return s.phase == PhaseCompleted || s.phase == PhaseAbandoned
}

// Abandon discards the session. No report can be produced afterwards.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reported {
		return
	}
	s.phase = PhaseAbandoned
}

// Complete returns the final report. It succeeds exactly once, after
// the session has completed.
func (s *Session) Complete() (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reported {
		return Report{}, ErrAlreadyReported
	}
	if s.phase != PhaseCompleted {
		return Report{}, ErrNotCompleted
	}
	s.reported = true

	r := Report{
		Score:    s.score,
		Total:    len(s.questions),
		Answered: s.answered,
		Missed:   append([]string(nil), s.missed...),
		XP:       s.score * s.xpPer,
		Timed:    s.clock != nil,
	}
	if s.clock != nil {
		r.TimeLeftSecs = int(s.clock.Remaining().Seconds())
	}
	return r, nil
}
