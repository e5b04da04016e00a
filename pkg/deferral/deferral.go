package deferral

// OnExit returns a guard that fires its action unconditionally when the
// scope exits, unless Release was called first. Panics if action is nil.
//
//	g := deferral.OnExit(func() { conn.Close() })
//	defer g.Exit()
func OnExit(action func()) *Guard {
	return newGuard(PolicyExit, nil, action)
}

// OnFail returns a guard that fires only when the declaring scope is failing
// at exit time: either errp points to an error that became non-nil after the
// guard was constructed, or a panic is unwinding through the deferred Exit
// call. errp is typically the address of the function's named error return;
// it may be nil, in which case only panics count as failure.
//
//	func provision(name string) (err error) {
//	    id, err := create(name)
//	    if err != nil {
//	        return err
//	    }
//	    g := deferral.OnFail(&err, func() { destroy(id) })
//	    defer g.Exit()
//	    return configure(id)
//	}
func OnFail(errp *error, action func()) *Guard {
	return newGuard(PolicyFail, errp, action)
}

// OnSuccess returns the mirror of OnFail: a guard that fires only when the
// declaring scope exits without a new error and without a panic unwinding.
// For a single scope exit, an OnFail and an OnSuccess guard created together
// are mutually exclusive.
func OnSuccess(errp *error, action func()) *Guard {
	return newGuard(PolicySuccess, errp, action)
}

// Always returns a guard that fires unconditionally at scope exit and cannot
// be disarmed: Release is a no-op. Use it for cleanup that must never be
// skipped.
func Always(action func()) *Guard {
	return newGuard(PolicyAlways, nil, action)
}
