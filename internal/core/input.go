package core

// Action represents a semantic input, abstracted from physical keys and pointers.
// Hosts translate their raw events into Actions; the runner never sees key codes.
type Action int

const (
	ActionNone         Action = iota
	ActionJump                // Space, Up arrow
	ActionDuck                // Down arrow pressed
	ActionDuckRelease         // Down arrow released
	ActionClick               // Pointer click; Event carries canvas coordinates
	ActionToggleDebug         // D key
	ActionQuit                // Q, Ctrl+C (handled by the host, never queued)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionDuckRelease:
		return "DuckRelease"
	case ActionClick:
		return "Click"
	case ActionToggleDebug:
		return "ToggleDebug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is a single discrete input delivered by a host.
type Event struct {
	Action Action
	X, Y   float64 // Canvas coordinates, only meaningful for ActionClick
}

// NewEvent creates an event without coordinates.
func NewEvent(a Action) Event {
	return Event{Action: a}
}

// ClickAt creates a pointer click event at canvas coordinates.
func ClickAt(x, y float64) Event {
	return Event{Action: ActionClick, X: x, Y: y}
}

// DefaultQueueSize is the capacity used when NewInputQueue gets a non-positive size.
const DefaultQueueSize = 64

// InputQueue is a bounded FIFO of events.
// Hosts push from their input callbacks; the loop drains it once at the start of each tick,
// so events keep their arrival order within a tick.
type InputQueue struct {
	events chan Event
	ready  chan struct{}
}

// NewInputQueue creates a queue holding at most size events.
func NewInputQueue(size int) *InputQueue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &InputQueue{
		events: make(chan Event, size),
		ready:  make(chan struct{}, 1),
	}
}

// Push enqueues an event without blocking.
// Returns false if the queue is full and the event was dropped.
func (q *InputQueue) Push(ev Event) bool {
	select {
	case q.events <- ev:
	default:
		return false
	}

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// Drain removes and returns every queued event in arrival order.
// Returns nil when the queue is empty.
func (q *InputQueue) Drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-q.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Len returns the number of queued events.
func (q *InputQueue) Len() int {
	return len(q.events)
}

// Ready returns a channel that receives a value after a Push.
// Schedulers that are not ticking use it to wake up for input.
func (q *InputQueue) Ready() <-chan struct{} {
	return q.ready
}
