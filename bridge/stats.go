package bridge

import (
	"sync/atomic"
)

// Stats tracks what happened to the records a sink accepted. Counters are
// updated atomically and never influence delivery.
type Stats struct {
	// Enqueued counts records accepted by an async queue
	Enqueued uint64
	// Delivered counts host calls that returned without error
	Delivered uint64
	// DeliveryFailed counts host calls that returned an error or panicked
	DeliveryFailed uint64
	// DroppedClosed counts records refused because the queue was shut down
	DroppedClosed uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementEnqueued atomically increments the enqueued counter
func (s *Stats) IncrementEnqueued() {
	atomic.AddUint64(&s.Enqueued, 1)
}

// IncrementDelivered atomically increments the delivered counter
func (s *Stats) IncrementDelivered() {
	atomic.AddUint64(&s.Delivered, 1)
}

// IncrementDeliveryFailed atomically increments the failed delivery counter
func (s *Stats) IncrementDeliveryFailed() {
	atomic.AddUint64(&s.DeliveryFailed, 1)
}

// IncrementDroppedClosed atomically increments the closed-queue drop counter
func (s *Stats) IncrementDroppedClosed() {
	atomic.AddUint64(&s.DroppedClosed, 1)
}

// Snapshot is a point-in-time copy of Stats. Counters are read one by one,
// so a snapshot taken during delivery may be off by in-flight records.
type Snapshot struct {
	Enqueued       uint64
	Delivered      uint64
	DeliveryFailed uint64
	DroppedClosed  uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Enqueued:       atomic.LoadUint64(&s.Enqueued),
		Delivered:      atomic.LoadUint64(&s.Delivered),
		DeliveryFailed: atomic.LoadUint64(&s.DeliveryFailed),
		DroppedClosed:  atomic.LoadUint64(&s.DroppedClosed),
	}
}

// Dropped returns every record that was accepted but never reached the host.
func (s Snapshot) Dropped() uint64 {
	return s.DeliveryFailed + s.DroppedClosed
}
