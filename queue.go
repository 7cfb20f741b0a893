package tpool

import "sync"

// jobQueue is an unbounded FIFO. Jobs enter through the back and leave
// through the front. front and back are either both nil or both set; every
// link mutation happens under mu, and nothing else is done while holding it.
type jobQueue struct {
	mu    sync.Mutex
	front *job
	back  *job
	count int
}

// enqueue appends j at the back. j must not be linked anywhere.
func (q *jobQueue) enqueue(j *job) {
	q.mu.Lock()
	if q.front == nil {
		q.front = j
		q.back = j
	} else {
		q.back.next = j
		j.prev = q.back
		q.back = j
	}
	q.count++
	q.mu.Unlock()
}

// dequeue removes and returns the front job, nil when the queue is empty.
// Empty is a normal condition, not an error. The returned job's links are
// cleared so queue internals never leak to the caller.
func (q *jobQueue) dequeue() *job {
	q.mu.Lock()
	j := q.front
	if j != nil {
		if q.front == q.back {
			q.front = nil
			q.back = nil
		} else {
			q.front = j.next
			q.front.prev = nil
		}
		j.prev = nil
		j.next = nil
		q.count--
	}
	q.mu.Unlock()
	return j
}

func (q *jobQueue) len() int {
	q.mu.Lock()
	n := q.count
	q.mu.Unlock()
	return n
}
