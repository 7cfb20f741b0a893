package tpool

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	ErrWorkerCount    = errors.New("tpool: worker count must be positive")
	ErrNilAction      = errors.New("tpool: nil action")
	ErrNotInitialized = errors.New("tpool: pool not initialized")
	ErrNilHandle      = errors.New("tpool: nil pool handle")
)

// semCap bounds the number of outstanding work announcements, which in
// practice bounds the number of queued jobs.
const semCap = math.MaxInt32

// Pool runs submitted jobs on a fixed set of workers. The worker count is
// chosen at creation and never changes. Jobs are started in submission
// order; completion order across workers is not defined.
type Pool struct {
	name    string
	sem     *semaphore.Weighted
	queue   jobQueue
	workers int
	wg      sync.WaitGroup
	stop    atomic.Bool
	ready   atomic.Bool
	log     *Log
	metrics *Metrics
}

// New creates a pool with the given number of workers and default
// configuration.
func New(workers int) (*Pool, error) {
	cfg := DefaultConfig()
	cfg.Workers = workers
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*Pool, error) {
	if cfg.Workers <= 0 {
		return nil, ErrWorkerCount
	}
	name := cfg.Name
	if name == "" {
		name = "tpool"
	}
	log := NewNopLog()
	if cfg.Log != nil {
		log = NewLog(*cfg.Log)
	}

	p := &Pool{
		name:    name,
		sem:     semaphore.NewWeighted(semCap),
		workers: cfg.Workers,
		log:     log,
		metrics: cfg.Metrics,
	}
	// Take the whole capacity up front so the counter starts at zero: a
	// worker's wait only passes once somebody has posted work.
	if err := p.sem.Acquire(context.Background(), semCap); err != nil {
		return nil, err
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker(i)
	}
	p.ready.Store(true)

	if p.metrics != nil {
		p.metrics.SetWorkers(p.name, cfg.Workers)
		p.metrics.SetQueueDepth(p.name, 0)
	}
	p.log.App("pool created", zap.String("pool", p.name), zap.Int("workers", cfg.Workers))
	return p, nil
}

// Submit hands one job to the pool. action must be non-nil; arg and cleanup
// may be nil. The caller keeps responsibility for arg if Submit fails.
func (p *Pool) Submit(action func(any), arg any, cleanup func(any), opt Option) error {
	if p == nil || !p.ready.Load() {
		return ErrNotInitialized
	}
	if action == nil {
		if p.metrics != nil {
			p.metrics.RecordJobRejected(p.name)
		}
		return ErrNilAction
	}

	j := newJob(action, arg, cleanup, opt)
	p.queue.enqueue(j)
	// Post only after the job is fully linked in, so a woken worker always
	// finds at least one job.
	p.sem.Release(1)

	if p.metrics != nil {
		p.metrics.RecordJobSubmitted(p.name)
		p.metrics.SetQueueDepth(p.name, p.queue.len())
	}
	return nil
}

// Destroy shuts the pool down: wakes every worker, waits for in-flight jobs
// to finish, then resolves whatever is still queued per each job's options.
// Jobs without RunOnCleanup are never executed during the drain, only
// cleaned up if asked. On return *pp is nil so reuse is detectable.
func Destroy(pp **Pool) error {
	if pp == nil || *pp == nil {
		return ErrNilHandle
	}
	p := *pp
	if !p.ready.CompareAndSwap(true, false) {
		return ErrNotInitialized
	}

	p.stop.Store(true)
	// One post per worker guarantees every blocked worker wakes at least
	// once even with an empty queue.
	p.sem.Release(int64(p.workers))
	p.wg.Wait()

	ran, discarded := 0, 0
	for j := p.queue.dequeue(); j != nil; j = p.queue.dequeue() {
		if j.drain() {
			ran++
		} else {
			discarded++
		}
		if p.metrics != nil {
			if j.opt&RunOnCleanup != 0 {
				p.metrics.RecordJobDrained(p.name, "run")
			} else {
				p.metrics.RecordJobDrained(p.name, "discarded")
			}
		}
	}

	if p.metrics != nil {
		p.metrics.SetWorkers(p.name, 0)
		p.metrics.SetQueueDepth(p.name, 0)
	}
	p.log.App("pool destroyed",
		zap.String("pool", p.name),
		zap.Int("drained_run", ran),
		zap.Int("drained_discarded", discarded))

	*pp = nil
	return nil
}

// worker is the loop each worker runs until told to stop. The semaphore is
// the only place an idle worker blocks.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		// Stop wins over pending work: a job racing the shutdown wake-up
		// burst is left for the drain.
		if p.stop.Load() {
			return
		}
		j := p.queue.dequeue()
		if j == nil {
			// More wakes than jobs. Benign, go back to waiting.
			continue
		}
		if !p.runJob(id, j) {
			return
		}
	}
}

// runJob executes one job and reports false when the job panicked. A
// panicking job retires its worker permanently; the rest of the pool stays
// valid but that slot's capacity is lost.
func (p *Pool) runJob(id int, j *job) (ok bool) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			ok = false
			p.log.Error(fmt.Errorf("%v", r), "job panicked, retiring worker",
				zap.String("pool", p.name),
				zap.Int("worker", id),
				zap.String("job", j.id.String()))
			if p.metrics != nil {
				p.metrics.RecordJobCompleted(p.name, "panic")
				p.metrics.WorkerRetired(p.name)
			}
		}
	}()

	j.run()

	if p.metrics != nil {
		p.metrics.ObserveJobDuration(p.name, time.Since(start).Seconds())
		p.metrics.RecordJobCompleted(p.name, "success")
		p.metrics.SetQueueDepth(p.name, p.queue.len())
	}
	return true
}

// Workers returns the worker count the pool was created with.
func (p *Pool) Workers() int {
	return p.workers
}

// QueueDepth returns the number of jobs currently waiting.
func (p *Pool) QueueDepth() int {
	return p.queue.len()
}
