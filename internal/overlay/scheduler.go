package overlay

import "time"

// Timer is a pending one-shot task.
type Timer interface {
	// Stop cancels the task. It returns false if the task already ran or was stopped.
	Stop() bool
}

// Scheduler runs one-shot tasks after a delay on the host's UI thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Dispatcher hands a function to the host's UI thread.
type Dispatcher func(func())

type timeScheduler struct {
	dispatch Dispatcher
}

// NewScheduler returns a Scheduler backed by time.AfterFunc whose callbacks
// are marshalled through dispatch. A nil dispatch runs callbacks on the timer
// goroutine.
func NewScheduler(dispatch Dispatcher) Scheduler {
	return &timeScheduler{dispatch: dispatch}
}

func (s *timeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if s.dispatch == nil {
		return time.AfterFunc(d, fn)
	}
	dispatch := s.dispatch
	return time.AfterFunc(d, func() { dispatch(fn) })
}
