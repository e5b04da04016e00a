package deferral

// Policy identifies the triggering variant a guard was constructed with.
type Policy string

const (
	// PolicyAlways fires unconditionally at scope exit and cannot be released.
	PolicyAlways Policy = "always"

	// PolicyExit fires unconditionally at scope exit unless released.
	PolicyExit Policy = "on_exit"

	// PolicyFail fires only when the scope is failing at exit time.
	PolicyFail Policy = "on_fail"

	// PolicySuccess fires only when the scope is not failing at exit time.
	PolicySuccess Policy = "on_success"
)

// trigger holds the per-guard policy state: which variant was chosen and
// whether the guard is still armed.
type trigger struct {
	policy Policy
	armed  bool
}

func newTrigger(p Policy) trigger {
	return trigger{policy: p, armed: true}
}

// shouldFire reports whether an armed guard must run its action given the
// failure state of the exiting scope. Idempotent and side-effect free.
func (t *trigger) shouldFire(failed bool) bool {
	if !t.armed {
		return false
	}
	switch t.policy {
	case PolicyFail:
		return failed
	case PolicySuccess:
		return !failed
	default:
		return true
	}
}

// disarm permanently suppresses firing. Irreversible. The always variant
// ignores it.
func (t *trigger) disarm() {
	if t.policy == PolicyAlways {
		return
	}
	t.armed = false
}
