package tpool

import (
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	var q jobQueue

	for i := 0; i < 10; i++ {
		q.enqueue(newJob(func(any) {}, i, nil, NoOpt))
	}

	for i := 0; i < 10; i++ {
		j := q.dequeue()
		if j == nil {
			t.Fatalf("Queue empty after %d dequeues, expected 10 jobs", i)
		}
		if j.arg.(int) != i {
			t.Errorf("Expected job %d, got %d", i, j.arg.(int))
		}
	}

	if j := q.dequeue(); j != nil {
		t.Error("Expected empty queue after draining all jobs")
	}
}

func TestQueueEmptyDequeue(t *testing.T) {
	var q jobQueue

	if j := q.dequeue(); j != nil {
		t.Error("Dequeue on empty queue should return nil")
	}
	if q.len() != 0 {
		t.Errorf("Expected length 0, got %d", q.len())
	}
}

func TestQueueFrontBackInvariant(t *testing.T) {
	var q jobQueue

	check := func(step string) {
		q.mu.Lock()
		defer q.mu.Unlock()
		if (q.front == nil) != (q.back == nil) {
			t.Fatalf("%s: front and back must both be nil or both be set", step)
		}
	}

	check("empty")
	q.enqueue(newJob(func(any) {}, nil, nil, NoOpt))
	check("one element")
	q.enqueue(newJob(func(any) {}, nil, nil, NoOpt))
	check("two elements")
	q.dequeue()
	check("after first dequeue")
	q.dequeue()
	check("drained")
}

func TestQueueDequeueClearsLinks(t *testing.T) {
	var q jobQueue

	q.enqueue(newJob(func(any) {}, 1, nil, NoOpt))
	q.enqueue(newJob(func(any) {}, 2, nil, NoOpt))
	q.enqueue(newJob(func(any) {}, 3, nil, NoOpt))

	for i := 0; i < 3; i++ {
		j := q.dequeue()
		if j.prev != nil || j.next != nil {
			t.Errorf("Dequeued job %d still carries queue links", i)
		}
	}
}

func TestQueueConcurrentEnqueueDequeue(t *testing.T) {
	var q jobQueue
	const producers = 8
	const perProducer = 200

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < perProducer; n++ {
				q.enqueue(newJob(func(any) {}, n, nil, NoOpt))
			}
		}()
	}

	seen := make(chan int, producers*perProducer)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < producers*perProducer/4; {
				if j := q.dequeue(); j != nil {
					seen <- j.arg.(int)
					n++
				}
			}
		}()
	}

	wg.Wait()
	close(seen)

	total := 0
	for range seen {
		total++
	}
	if total != producers*perProducer {
		t.Errorf("Expected %d jobs through the queue, got %d", producers*perProducer, total)
	}
	if q.len() != 0 {
		t.Errorf("Expected empty queue, %d left", q.len())
	}
}
