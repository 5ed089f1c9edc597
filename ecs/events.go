package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventContact = "contact"

// ContactKind identifies whether two colliders started or stopped touching.
type ContactKind uint8

const (
	ContactEnter ContactKind = iota + 1
	ContactExit
)

// ContactEvent is emitted by the physics step for every pair of colliders
// that begin or end overlapping. Velocities are sampled when the contact
// begins, before the solver runs.
type ContactEvent struct {
	Kind    ContactKind
	A       Entity
	B       Entity
	AVelX   float64
	AVelY   float64
	BVelX   float64
	BVelY   float64
	Trigger bool
}

// VelocityOf returns the sampled velocity of e.
func (c ContactEvent) VelocityOf(e Entity) (float64, float64) {
	switch e {
	case c.A:
		return c.AVelX, c.AVelY
	case c.B:
		return c.BVelX, c.BVelY
	}
	return 0, 0
}

// Other returns the entity paired with e, and whether e takes part in the
// contact at all.
func (c ContactEvent) Other(e Entity) (Entity, bool) {
	switch e {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// PushContact queues a contact event.
func (q *EventQueue) PushContact(c ContactEvent) {
	q.Push(Event{Type: EventContact, Data: c})
}

// Items returns the queued events without clearing them, so several systems
// can observe the same step.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Contacts returns the queued contact events in delivery order.
func (q *EventQueue) Contacts() []ContactEvent {
	if q == nil {
		return nil
	}
	var out []ContactEvent
	for _, evt := range q.items {
		if c, ok := evt.Data.(ContactEvent); ok && evt.Type == EventContact {
			out = append(out, c)
		}
	}
	return out
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
