package resource

// Handle is an opaque reference to an object in a table.
// Handle 0 is reserved and always means "no object".
type Handle uint32

// State is the lifecycle position of a handle.
type State uint8

const (
	Unallocated State = iota
	Live
	Deleted
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Deleted:
		return "deleted"
	default:
		return "unallocated"
	}
}

// Event types for lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

// Event represents a lifecycle event.
type Event struct {
	Handle Handle
	Type   EventType
}

// Observer receives notifications about lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Liveness answers lifecycle questions about handles without exposing the
// state behind them.
type Liveness interface {
	State(Handle) State
}
