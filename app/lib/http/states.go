package http

// ConnState tracks a connection through its one-shot lifecycle. The machine
// runs exactly once per connection and has no path out of StateClosed.
type ConnState int

const (
	StateAwaitingData ConnState = iota
	StateBuffering
	StateEndSignaled
	StateFramed
	StateParsed
	StateDecoded
	StateRouted
	StateResponded
	StateError
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateAwaitingData:
		return "awaiting_data"
	case StateBuffering:
		return "buffering"
	case StateEndSignaled:
		return "end_signaled"
	case StateFramed:
		return "framed"
	case StateParsed:
		return "parsed"
	case StateDecoded:
		return "decoded"
	case StateRouted:
		return "routed"
	case StateResponded:
		return "responded"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
