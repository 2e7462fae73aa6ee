package quiz

import (
	"github.com/abhisek/sparky/internal/practice"
)

// poolLoadedMsg is sent when today's pool is available or failed to load.
type poolLoadedMsg struct {
	Err error
}

// completedMsg carries the outcome of applying a finished quiz.
type completedMsg struct {
	Outcome practice.Outcome
	Err     error
}

// abandonedMsg is sent once an abandoned session has been dropped.
type abandonedMsg struct{}
