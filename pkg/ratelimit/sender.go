package ratelimit

import (
	"sync"
	"time"

	"dgtx/pkg/ws"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultMax is the exchange quota of outbound calls per window.
	DefaultMax = 10
	// Window is the counter reset period.
	Window            = time.Second
	DefaultRetryDelay = 250 * time.Millisecond
)

// Sender delivers outbound frames against a fixed per-second call quota.
// A frame attempted while the transport is not open or the window is
// exhausted is deferred and retried after the retry delay, never dropped.
// Deferred frames may be overtaken by later ones that slip under the quota.
type Sender struct {
	transport  ws.Transport
	max        int
	retryDelay time.Duration

	mu      sync.Mutex
	current int
	pending map[*time.Timer]struct{}
	closed  bool

	ticker *time.Ticker
	stopC  chan struct{}
	logger *log.Entry
}

func NewSender(transport ws.Transport, max int, retryDelay time.Duration) *Sender {
	if max <= 0 {
		max = DefaultMax
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	s := &Sender{
		transport:  transport,
		max:        max,
		retryDelay: retryDelay,
		pending:    make(map[*time.Timer]struct{}),
		ticker:     time.NewTicker(Window),
		stopC:      make(chan struct{}),
		logger: log.WithFields(log.Fields{
			"max": max,
		}),
	}
	go s.resetLoop()
	return s
}

// resetLoop zeroes the window counter every second, independent of in-flight
// sends.
func (s *Sender) resetLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			s.current = 0
			s.mu.Unlock()
		case <-s.stopC:
			return
		}
	}
}

// Send delivers msg immediately when the transport is open and the window has
// quota left, otherwise schedules a retry of the same msg after the retry
// delay.
func (s *Sender) Send(msg []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.current >= s.max || s.transport.ReadyState() != ws.StateOpen {
		var t *time.Timer
		t = time.AfterFunc(s.retryDelay, func() {
			s.mu.Lock()
			delete(s.pending, t)
			s.mu.Unlock()
			s.Send(msg)
		})
		s.pending[t] = struct{}{}
		s.mu.Unlock()
		return
	}
	s.current++
	s.mu.Unlock()

	if err := s.transport.Send(msg); err != nil {
		s.logger.Errorf("fail to send message: %v", err)
	}
}

// Close stops the window timer and cancels every pending deferred send.
func (s *Sender) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for t := range s.pending {
		t.Stop()
	}
	s.pending = make(map[*time.Timer]struct{})
	s.mu.Unlock()

	s.ticker.Stop()
	close(s.stopC)
}
