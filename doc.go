// Package tpool implements a fixed-size worker pool with explicit
// destroy-time drain semantics.
//
// Each submitted job carries an action, an optional argument, an optional
// cleanup callback for that argument, and option flags deciding its fate if
// the pool is destroyed while the job is still queued: RunOnCleanup executes
// the action during the drain instead of discarding it, and
// RunCleanupAfterJob invokes the cleanup after the action on any path.
//
//	pool, err := tpool.New(3)
//	if err != nil {
//		panic(err)
//	}
//
//	pool.Submit(func(arg any) {
//		process(arg.(*payload))
//	}, p, func(arg any) {
//		arg.(*payload).Close()
//	}, tpool.RunOnCleanup|tpool.RunCleanupAfterJob)
//
//	tpool.Destroy(&pool) // blocks until in-flight jobs finish, then drains
//
// Jobs are started in submission order. Destroy waits for every in-flight
// job, so actions must not block forever and must not call back into the
// same pool.
package tpool
