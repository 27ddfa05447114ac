package bridge

import (
	"sync"

	"github.com/philipp01105/hostlog/core"
)

// compactThreshold is the number of consumed slots after which the queue
// moves its live items back to the front of the slice.
const compactThreshold = 1024

type queueItem struct {
	rec  core.Record
	stop bool
}

// recordQueue is an unbounded multi-producer, single-consumer FIFO. The
// stop token is the last item it ever accepts: once it is pushed every
// later push is refused.
type recordQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []queueItem
	head   int
	closed bool
}

func newRecordQueue() *recordQueue {
	q := &recordQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends rec and reports false if the queue was already closed.
func (q *recordQueue) push(rec core.Record) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, queueItem{rec: rec})
	q.cond.Signal()
	return true
}

// pushStop appends the stop token and closes the queue. Only the first
// call has an effect; it reports whether this call was the one.
func (q *recordQueue) pushStop() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.closed = true
	q.items = append(q.items, queueItem{stop: true})
	q.cond.Signal()
	return true
}

// pop blocks until an item is available. It returns ok=false when the
// item is the stop token.
func (q *recordQueue) pop() (rec core.Record, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.head == len(q.items) {
		q.cond.Wait()
	}

	item := q.items[q.head]
	q.items[q.head] = queueItem{}
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return item.rec, !item.stop
}

// pending returns the number of records waiting, not counting the stop
// token.
func (q *recordQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items) - q.head
	if q.closed && n > 0 {
		n--
	}
	return n
}
