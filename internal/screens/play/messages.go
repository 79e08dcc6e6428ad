package play

import "github.com/tensebunny/tensebunny/internal/quiz"

// clockTickMsg drives the countdown of a timed session. It carries the
// session it was scheduled for so ticks from an earlier round are
// ignored.
type clockTickMsg struct {
	sess *quiz.Session
}

// speechDoneMsg is sent when a spoken sentence finished or failed.
type speechDoneMsg struct {
	Err error
}
