package tpool

import "github.com/google/uuid"

// Option flags decide what happens to a job that is still queued when the
// pool is destroyed. They are bitwise-combinable.
type Option int

const (
	NoOpt Option = 0

	// RunOnCleanup: the job's action still runs during the destroy-time
	// drain instead of being discarded.
	RunOnCleanup Option = 1 << 0

	// RunCleanupAfterJob: once the action has completed, on any path, the
	// cleanup callback is invoked on the argument.
	RunCleanupAfterJob Option = 1 << 1
)

// job is one submitted unit of work. The queue owns it from enqueue until
// dequeue; prev/next are queue internals and never escape.
type job struct {
	id      uuid.UUID
	action  func(any)
	arg     any
	cleanup func(any)
	opt     Option

	prev *job
	next *job
}

func newJob(action func(any), arg any, cleanup func(any), opt Option) *job {
	return &job{
		id:      uuid.New(),
		action:  action,
		arg:     arg,
		cleanup: cleanup,
		opt:     opt,
	}
}

// run is the normal worker path: action first, then cleanup if requested.
func (j *job) run() {
	j.action(j.arg)
	j.runCleanup()
}

// drain resolves a job left queued at destroy time. The action runs only
// when RunOnCleanup was set; the cleanup obligation is honored either way.
// Reports whether the action ran.
func (j *job) drain() bool {
	ran := false
	if j.opt&RunOnCleanup != 0 {
		j.action(j.arg)
		ran = true
	}
	j.runCleanup()
	return ran
}

func (j *job) runCleanup() {
	if j.opt&RunCleanupAfterJob != 0 && j.cleanup != nil && j.arg != nil {
		j.cleanup(j.arg)
	}
}
