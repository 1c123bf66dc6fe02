package ratelimit

import (
	"sync"
	"testing"
	"time"

	"dgtx/pkg/ws"
)

type fakeTransport struct {
	mu    sync.Mutex
	state ws.State
	sent  [][]byte
}

func (f *fakeTransport) Open() error  { return nil }
func (f *fakeTransport) Close() error { return nil }

func (f *fakeTransport) Send(msg []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeTransport) ReadyState() ws.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeTransport) setState(s ws.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeTransport) OnOpen(func()) {}

func (f *fakeTransport) OnMessage(func(msg []byte)) {}

func (f *fakeTransport) OnClose(func()) {}

func (f *fakeTransport) OnError(func(err error)) {}

func TestSenderRespectsQuota(t *testing.T) {
	ft := &fakeTransport{state: ws.StateOpen}
	s := NewSender(ft, 3, 10*time.Millisecond)
	defer s.Close()

	for i := 0; i < 10; i++ {
		s.Send([]byte("m"))
	}

	if got := ft.sentCount(); got != 3 {
		t.Fatalf("sent %v messages in one window, want 3", got)
	}
}

func TestSenderRetriesDeferredMessages(t *testing.T) {
	ft := &fakeTransport{state: ws.StateOpen}
	s := NewSender(ft, 3, 5*time.Millisecond)
	defer s.Close()

	for i := 0; i < 5; i++ {
		s.Send([]byte("m"))
	}
	if got := ft.sentCount(); got != 3 {
		t.Fatalf("sent %v messages before reset, want 3", got)
	}

	// the two deferred sends must land once the window resets
	deadline := time.After(3 * time.Second)
	for ft.sentCount() < 5 {
		select {
		case <-deadline:
			t.Fatalf("deferred messages never delivered, sent %v of 5", ft.sentCount())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSenderDefersWhileTransportClosed(t *testing.T) {
	ft := &fakeTransport{state: ws.StateConnecting}
	s := NewSender(ft, 10, 5*time.Millisecond)
	defer s.Close()

	s.Send([]byte("m"))
	time.Sleep(20 * time.Millisecond)
	if got := ft.sentCount(); got != 0 {
		t.Fatalf("sent %v messages over a closed transport", got)
	}

	ft.setState(ws.StateOpen)
	deadline := time.After(time.Second)
	for ft.sentCount() < 1 {
		select {
		case <-deadline:
			t.Fatal("message never delivered after transport opened")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSenderCloseCancelsPending(t *testing.T) {
	ft := &fakeTransport{state: ws.StateConnecting}
	s := NewSender(ft, 10, 5*time.Millisecond)

	s.Send([]byte("m"))
	s.Close()
	ft.setState(ws.StateOpen)

	time.Sleep(50 * time.Millisecond)
	if got := ft.sentCount(); got != 0 {
		t.Fatalf("sent %v messages after Close", got)
	}

	// Send after Close is a no-op
	s.Send([]byte("m"))
	time.Sleep(20 * time.Millisecond)
	if got := ft.sentCount(); got != 0 {
		t.Fatalf("sent %v messages after Close", got)
	}
}
