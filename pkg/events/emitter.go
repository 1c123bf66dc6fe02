package events

import "sync"

// Kind identifies one notification on the client's event surface.
type Kind string

const (
	Connect              = Kind("connect")
	Close                = Kind("close")
	WsError              = Kind("ws-error")
	SpotUpdate           = Kind("spotUpdate")
	KLine                = Kind("kline")
	GapChange            = Kind("gapChange")
	OrderFilled          = Kind("orderFilled")
	Trades               = Kind("trades")
	FuturesPxUpdate      = Kind("futuresPxUpdate")
	OrderPlaced          = Kind("orderPlaced")
	OrderRejected        = Kind("orderRejected")
	OrderCancelled       = Kind("orderCancelled")
	TraderStatus         = Kind("traderStatus")
	ConditionalPlaced    = Kind("conditionalPlaced")
	ConditionalCancelled = Kind("conditionalCancelled")
	ConditionalTriggered = Kind("conditionalTriggered")
	ConditionalRejected  = Kind("conditionalRejected")
	SystemError          = Kind("systemError")
	Raw                  = Kind("raw")
)

type Handler func(payload any)

// Emitter is a minimal typed publish/subscribe surface. Handlers run
// synchronously on the publishing goroutine, in registration order.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[Kind][]Handler)}
}

// On registers a handler for the given event kind.
func (e *Emitter) On(kind Kind, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[kind] = append(e.handlers[kind], h)
}

// Emit publishes a payload to every handler of the given kind.
func (e *Emitter) Emit(kind Kind, payload any) {
	e.mu.RLock()
	hs := e.handlers[kind]
	e.mu.RUnlock()
	for _, h := range hs {
		h(payload)
	}
}
