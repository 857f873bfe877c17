package encounter

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/purgatorium/note"
)

// EventKind names something the host may want to react to with sound or
// effects. Events carry no authority over the simulation.
type EventKind string

const (
	EventProjectileSpawned   EventKind = "projectile_spawned"
	EventProjectileBounced   EventKind = "projectile_bounced"
	EventProjectileDeflected EventKind = "projectile_deflected"
	EventAdversaryDeflected  EventKind = "adversary_deflected"
	EventBarrierDeployed     EventKind = "barrier_deployed"
	EventBarrierRejected     EventKind = "barrier_rejected"
	EventGameOver            EventKind = "game_over"
)

type Event struct {
	Kind     EventKind
	Time     float64
	Position cp.Vector
	Note     note.Event
}

// MaxQueuedEvents bounds an undrained queue. Past it the oldest events are
// dropped.
const MaxQueuedEvents = 1024

// EventQueue is a simple FIFO queue. Hosts are expected to Drain it once per
// Update; a host that never drains only keeps the newest MaxQueuedEvents.
type EventQueue struct {
	items   []Event
	dropped int
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	if len(q.items) >= MaxQueuedEvents {
		n := len(q.items) - MaxQueuedEvents + 1
		q.items = append(q.items[:0], q.items[n:]...)
		q.dropped += n
	}
	q.items = append(q.items, evt)
}

// Dropped counts events discarded because the queue was full.
func (q *EventQueue) Dropped() int {
	if q == nil {
		return 0
	}
	return q.dropped
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
	q.dropped = 0
}
