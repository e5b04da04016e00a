package deferral

// Scope collects guards registered during a Do body. When the body returns
// or panics, the scope fires its guards in reverse registration order with
// the body's outcome as the failure state.
//
// A Scope is valid only inside the Do call that created it and must not be
// retained or shared.
type Scope struct {
	guards []*Guard
}

// Do runs body with a fresh Scope, then fires every guard registered on it
// in reverse registration order. The scope counts as failing when the body
// returned a non-nil error or panicked. Do returns the body's error
// unchanged; a panic is re-raised after fail guards have run.
func Do(body func(*Scope) error) (err error) {
	s := &Scope{}
	defer s.exit(&err)
	return body(s)
}

// OnExit registers an action that fires when the scope ends for any reason,
// unless released first.
func (s *Scope) OnExit(action func()) *Guard {
	return s.add(newGuard(PolicyExit, nil, action))
}

// OnFail registers an action that fires only when the scope ends failing.
func (s *Scope) OnFail(action func()) *Guard {
	return s.add(newGuard(PolicyFail, nil, action))
}

// OnSuccess registers an action that fires only when the scope ends without
// failure.
func (s *Scope) OnSuccess(action func()) *Guard {
	return s.add(newGuard(PolicySuccess, nil, action))
}

// Defer registers an action that fires unconditionally when the scope ends
// and cannot be released.
func (s *Scope) Defer(action func()) {
	s.add(newGuard(PolicyAlways, nil, action))
}

func (s *Scope) add(g *Guard) *Guard {
	s.guards = append(s.guards, g)
	return g
}

// exit fires the scope's guards. Deferred directly by Do so recover can
// observe a panic unwinding out of the body.
func (s *Scope) exit(errp *error) {
	if r := recover(); r != nil {
		s.unwind(true)
		panic(r)
	}
	s.unwind(*errp != nil)
}

func (s *Scope) unwind(failed bool) {
	for i := len(s.guards) - 1; i >= 0; i-- {
		s.guards[i].finish(failed)
	}
}
