package deferral

// Guard binds one deferred action to one triggering policy. It fires the
// action at most once over its entire lifetime, at the moment its deferred
// Exit call runs.
//
// A Guard is a single-owner value: it is only ever handed out as a pointer,
// must not be copied, and must not be shared between goroutines. Ownership
// can be transferred with Handoff, which permanently disarms the source.
type Guard struct {
	action func()
	trig   trigger

	// errp is the error tracked by fail/success guards; nil for exit/always.
	errp *error

	// hadErr records whether *errp was already non-nil at construction, so
	// that pre-existing errors are never attributed to this guard.
	hadErr bool

	// spent is set once the guard has been consulted at scope exit (whether
	// or not the action ran) or handed off.
	spent bool
}

func newGuard(p Policy, errp *error, action func()) *Guard {
	if action == nil {
		panic("deferral: nil action")
	}
	g := &Guard{action: action, trig: newTrigger(p), errp: errp}
	if errp != nil && *errp != nil {
		g.hadErr = true
	}
	recordArmed(p)
	return g
}

// Release permanently disarms the guard so that Exit never runs the action.
// Idempotent; releasing an already released or fired guard has no effect.
// Guards built with the always policy ignore Release.
func (g *Guard) Release() {
	if g.trig.armed && !g.spent && g.trig.policy != PolicyAlways {
		recordReleased(g.trig.policy)
	}
	g.trig.disarm()
}

// Exit ends the guard's protected region: it consults the policy and, if the
// guard is still armed and the policy says to fire, runs the action exactly
// once. After Exit returns the guard is spent and further Exit calls are
// no-ops.
//
// Exit must be deferred directly (defer g.Exit()) for panic detection to
// work: only then can it observe a panic unwinding through the declaring
// scope. A detected panic marks the scope as failing, and is re-raised after
// the guard has been consulted. When no panic is unwinding, the scope counts
// as failing if the tracked error became non-nil after the guard was
// constructed.
func (g *Guard) Exit() {
	if r := recover(); r != nil {
		g.finish(true)
		panic(r)
	}
	g.finish(g.errorArrived())
}

// Handoff transfers the firing obligation to a new Guard and permanently
// disarms the receiver. The action is not invoked during the transfer, and
// at most one of the two guards can ever fire it. Handing off a released or
// spent guard yields an equally inert guard.
func (g *Guard) Handoff() *Guard {
	ng := &Guard{
		action: g.action,
		trig:   g.trig,
		errp:   g.errp,
		hadErr: g.hadErr,
		spent:  g.spent,
	}
	g.spent = true
	g.action = nil
	return ng
}

// Policy returns the triggering variant this guard was built with.
func (g *Guard) Policy() Policy {
	return g.trig.policy
}

// errorArrived reports whether the tracked error turned non-nil after the
// guard was constructed.
func (g *Guard) errorArrived() bool {
	return g.errp != nil && *g.errp != nil && !g.hadErr
}

// finish runs the action if the policy fires for the given failure state.
// The guard is spent afterwards regardless of whether the action ran.
func (g *Guard) finish(failed bool) {
	if g.spent {
		return
	}
	g.spent = true
	if g.trig.shouldFire(failed) && g.action != nil {
		recordFired(g.trig.policy)
		g.action()
	}
}
