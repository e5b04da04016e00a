// Package deferral provides scope-bound deferred execution: guards that bind
// a cleanup action to the scope that declared them and run it exactly once
// when that scope ends, conditioned on how the scope ended.
//
// # Overview
//
// A Guard owns one zero-argument action and one triggering policy. Four
// policies are available:
//
//   - OnExit: fires unconditionally at scope exit unless released
//   - OnFail: fires only when the scope is failing (new error or panic)
//   - OnSuccess: fires only when the scope is not failing
//   - Always: like OnExit, but Release is a no-op
//
// Guards are armed at construction and fired by a deferred Exit call:
//
//	func copyFile(dst, src string) (err error) {
//	    out, err := os.Create(dst)
//	    if err != nil {
//	        return err
//	    }
//	    defer out.Close()
//
//	    // Remove the partial file if anything below fails.
//	    g := deferral.OnFail(&err, func() { os.Remove(dst) })
//	    defer g.Exit()
//
//	    _, err = io.Copy(out, in)
//	    return err
//	}
//
// # Failure Detection
//
// Go exposes no live count of propagating errors, so guards detect failure
// through two explicit channels:
//
//   - An *error captured at construction by OnFail and OnSuccess. The guard
//     records whether the error was already non-nil at that moment, so an
//     error that predates the guard is never attributed to it. Only an error
//     that became non-nil after construction counts as a failure.
//   - A panic unwinding through the deferred Exit call. Exit must be deferred
//     directly (defer g.Exit(), not wrapped in a closure) for panic detection
//     to work; the panic is always re-raised after the guard is consulted.
//
// For a single scope exit, an OnFail and an OnSuccess guard created together
// are mutually exclusive: exactly one of them fires, never both.
//
// # Scopes
//
// The Do function provides a block-structured form where guards are
// registered against an explicit scope and fired in reverse registration
// order when the body returns or panics:
//
//	err := deferral.Do(func(s *deferral.Scope) error {
//	    tmp, err := os.MkdirTemp("", "stage-*")
//	    if err != nil {
//	        return err
//	    }
//	    s.OnFail(func() { os.RemoveAll(tmp) })
//	    return stage(tmp)
//	})
//
// # Ordering
//
// Standalone guards fired by deferred Exit calls follow Go's LIFO defer
// order: last declared, first fired. Scope guards are replayed in reverse
// registration order. No ordering is defined across unrelated scopes.
//
// # Thread Safety
//
// A Guard is a single-owner, single-goroutine construct. It must be created,
// released, and fired on the goroutine that owns the enclosing scope; it is
// not copyable and must not be shared. Nothing in the firing path locks or
// blocks. The package-level metrics hook is the only concurrency-safe entry
// point.
//
// # Error Handling
//
// Guards never swallow the monitored scope's error or panic; they only
// observe it. An action that panics while another panic is already unwinding
// follows Go's usual nested-panic behavior; actions fired on the failure path
// should therefore be effectively non-failing.
package deferral
