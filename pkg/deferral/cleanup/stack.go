package cleanup

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// step is one pending revert action.
type step struct {
	id   string
	name string
	fn   func() error
}

// Stack is a LIFO stack of named revert actions guarding a multi-step
// acquisition. A Stack runs its steps at most once: after Run or Release it
// is spent and further pushes are rejected.
type Stack struct {
	mu     sync.Mutex
	logger *slog.Logger
	steps  []step
	spent  bool
}

// NewStack creates an empty rollback stack. A nil logger defaults to
// slog.Default().
func NewStack(logger *slog.Logger) *Stack {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stack{logger: logger}
}

// Push registers a revert action for a resource that was just acquired and
// returns a handle usable with Pop. Pushing onto a spent stack returns an
// empty handle and the action is never run.
func (s *Stack) Push(name string, fn func() error) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spent || fn == nil {
		return ""
	}
	id := uuid.New().String()
	s.steps = append(s.steps, step{id: id, name: name, fn: fn})
	return id
}

// Pop removes the step with the given handle without running it. Returns
// true if the step was found and removed.
func (s *Stack) Pop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, st := range s.steps {
		if st.id == id {
			s.steps = append(s.steps[:i], s.steps[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of pending steps.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Release discards all pending steps without running them and marks the
// stack spent. Idempotent.
func (s *Stack) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.steps = nil
	s.spent = true
}

// Run executes the pending steps in reverse push order and marks the stack
// spent. Every step runs even if earlier ones fail; failures are logged and
// returned joined into a single error. Running a spent stack is a no-op
// returning nil.
func (s *Stack) Run() error {
	s.mu.Lock()
	steps := s.steps
	spent := s.spent
	s.steps = nil
	s.spent = true
	s.mu.Unlock()

	if spent {
		return nil
	}

	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		st := steps[i]
		if err := st.fn(); err != nil {
			s.logger.Error("rollback step failed",
				"step", st.name,
				"step_id", st.id,
				"error", err)
			errs = append(errs, fmt.Errorf("%s: %w", st.name, err))
		}
	}
	return errors.Join(errs...)
}

// Exit ends the stack's protected region: it runs the stack when the scope
// is failing (the tracked error is non-nil, or a panic is unwinding through
// the deferred call) and discards it otherwise. Rollback failures are logged
// rather than returned, since Exit runs on the way out of an already failing
// scope. A detected panic is re-raised.
//
// Exit must be deferred directly (defer st.Exit(&err)) for panic detection
// to work.
func (s *Stack) Exit(errp *error) {
	if r := recover(); r != nil {
		s.runLogged()
		panic(r)
	}
	if errp != nil && *errp != nil {
		s.runLogged()
		return
	}
	s.Release()
}

func (s *Stack) runLogged() {
	if err := s.Run(); err != nil {
		s.logger.Error("rollback completed with failures", "error", err)
	}
}
