package ws

// State mirrors the websocket readyState values; the client only ever
// distinguishes StateOpen from everything else.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosing
	StateClosed
)

// Transport is the bidirectional message connection consumed by the client.
// Callbacks must be registered before Open; the implementation delivers
// inbound frames one at a time, in order, from a single goroutine. The
// transport does not reconnect; a drop surfaces through OnError/OnClose and
// the session is over.
type Transport interface {
	Open() error
	Send(msg []byte) error
	ReadyState() State
	Close() error

	OnOpen(func())
	OnMessage(func(msg []byte))
	OnClose(func())
	OnError(func(err error))
}
