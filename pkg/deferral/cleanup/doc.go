// Package cleanup provides a named LIFO rollback stack for multi-step
// resource acquisition.
//
// # Overview
//
// Where a single deferral.Guard protects one resource, a Stack protects a
// sequence: each successfully acquired resource pushes a named revert step,
// and the whole stack is either discarded on success or replayed in reverse
// push order on failure.
//
//	func provision(ctx context.Context) (err error) {
//	    st := cleanup.NewStack(slog.Default())
//	    defer st.Exit(&err)
//
//	    vol, err := createVolume(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    st.Push("delete volume", func() error { return deleteVolume(ctx, vol) })
//
//	    vm, err := createVM(ctx, vol)
//	    if err != nil {
//	        return err
//	    }
//	    st.Push("delete vm", func() error { return deleteVM(ctx, vm) })
//
//	    return attach(ctx, vm, vol)
//	}
//
// If provision returns a non-nil error (or panics), the pushed steps run in
// reverse order: delete vm, then delete volume. On success the steps are
// discarded without running.
//
// # Step Handles
//
// Push returns a unique handle that can be passed to Pop to drop a single
// step without running it, for resources whose ownership was transferred
// elsewhere mid-sequence.
//
// # Error Handling
//
// Revert steps may fail. Run executes every step regardless, logs each
// failure, and returns the failures joined into one error. Exit logs joined
// failures instead of returning them, since it runs on the way out of an
// already failing scope.
package cleanup
