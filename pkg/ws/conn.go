package ws

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const HS_TIMEOUT_S = 5 // handshake timeout in seconds

// Conn is the gorilla/websocket implementation of Transport.
type Conn struct {
	wsUrl  string
	dialer websocket.Dialer
	conn   *websocket.Conn
	state  State
	doneC  chan struct{}

	// callbacks
	onOpen    func()
	onMessage func(msg []byte)
	onClose   func()
	onError   func(err error)

	mu      sync.Mutex
	writeMu sync.Mutex
	logger  *log.Entry
}

func NewConn(wsUrl string) (*Conn, error) {
	// validate wsUrl
	if _, err := url.Parse(wsUrl); err != nil {
		return nil, err
	}
	return &Conn{
		wsUrl: wsUrl,
		dialer: websocket.Dialer{
			HandshakeTimeout:  time.Duration(HS_TIMEOUT_S) * time.Second,
			Subprotocols:      []string{"permessage-deflate"},
			EnableCompression: true,
		},
		state: StateConnecting,
		doneC: make(chan struct{}),
		logger: log.WithFields(log.Fields{
			"url": wsUrl,
		}),
	}, nil
}

func (c *Conn) OnOpen(f func()) { c.onOpen = f }

func (c *Conn) OnMessage(f func(msg []byte)) { c.onMessage = f }

func (c *Conn) OnClose(f func()) { c.onClose = f }

func (c *Conn) OnError(f func(err error)) { c.onError = f }

func (c *Conn) Open() error {
	c.mu.Lock()
	conn, _, err := c.dialer.Dial(c.wsUrl, nil)
	if err != nil {
		c.state = StateClosed
		c.mu.Unlock()
		c.logger.Errorf("fail to connect: %v", err)
		return err
	}
	c.conn = conn
	c.state = StateOpen
	c.mu.Unlock()

	if c.onOpen != nil {
		c.onOpen()
	}
	go c.readLoop()
	return nil
}

// readLoop delivers inbound frames strictly in arrival order, one at a time.
func (c *Conn) readLoop() {
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			wasClosing := c.state == StateClosing
			c.state = StateClosed
			c.mu.Unlock()
			close(c.doneC)

			if !wasClosing && c.onError != nil {
				c.onError(err)
			}
			if c.onClose != nil {
				c.onClose()
			}
			return
		}
		if c.onMessage != nil {
			c.onMessage(msg)
		}
	}
}

func (c *Conn) Send(msg []byte) error {
	if c.ReadyState() != StateOpen {
		return fmt.Errorf("fail to send: websocket is not open")
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

func (c *Conn) ReadyState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conn) Close() error {
	c.mu.Lock()
	if c.state == StateClosed || c.state == StateClosing {
		c.mu.Unlock()
		return nil
	}
	opened := c.conn != nil
	c.state = StateClosing
	if !opened {
		c.state = StateClosed
	}
	c.mu.Unlock()

	if !opened {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("fail to close websocket: %v", err)
	}
	// wait for the read loop to drain before reporting closed
	<-c.doneC
	return nil
}

// Done is closed once the read loop has stopped reading.
func (c *Conn) Done() <-chan struct{} {
	return c.doneC
}
