package ws

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blockworld/internal/network"
)

const (
	writeTimeout = 5 * time.Second
	// pongWait bounds how long a silent peer is tolerated. The traffic is
	// bursty (nothing flows while a player stands still in fully streamed
	// terrain), so each endpoint pings inside that bound to keep an idle
	// but healthy link from tripping the read deadline.
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client connects the session core to a remote server over a websocket.
// It satisfies network.Client: sends never block and ReceiveEvent returns
// NoEvent when the queue is empty.
type Client struct {
	conn   *websocket.Conn
	log    *log.Logger
	events network.Queue[network.ClientEvent]
	out    *outbox
	closed sync.Once

	pongWait   time.Duration
	pingPeriod time.Duration
}

// Dial connects to a server at addr (host:port) and starts the connection
// goroutines. The Connected event is queued before Dial returns.
func Dial(addr string, logger *log.Logger) (*Client, error) {
	return dial(addr, logger, pongWait, pingPeriod)
}

func dial(addr string, logger *log.Logger, pongWait, pingPeriod time.Duration) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		return nil, fmt.Errorf("ws: dial %s: %w", addr, err)
	}

	c := &Client{
		conn:       conn,
		log:        logger,
		out:        newOutbox(),
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})
	c.events.Push(network.Connected{})

	go c.writeLoop()
	go c.pingLoop()
	go c.readLoop()
	return c, nil
}

func (c *Client) ReceiveEvent() network.ClientEvent {
	if ev, ok := c.events.Pop(); ok {
		return ev
	}
	return network.NoEvent{}
}

func (c *Client) Send(msg network.ToServer) {
	frame, err := encodeToServer(msg)
	if err != nil {
		c.log.Printf("ws: dropping message: %v", err)
		return
	}
	c.out.push(frame)
}

// Close tears the connection down. Idempotent; the session observes a
// Disconnected event.
func (c *Client) Close() {
	c.closed.Do(func() {
		c.out.close()
		_ = c.conn.Close()
		c.events.Push(network.Disconnected{})
	})
}

func (c *Client) writeLoop() {
	for {
		frame, ok := c.out.next()
		if !ok {
			return
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			c.Close()
			return
		}
	}
}

// pingLoop keeps the read deadline on the other end alive while the data
// direction is idle. WriteControl is safe alongside the writer goroutine.
func (c *Client) pingLoop() {
	ticker := time.NewTicker(c.pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
			c.Close()
			return
		}
	}
}

func (c *Client) readLoop() {
	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.Close()
			return
		}
		msg, err := decodeToClient(raw)
		if err != nil {
			// An undecodable frame means the peers disagree about the
			// protocol. Continuing would leave the replica silently
			// incomplete, so the session gets a terminal disconnect.
			c.log.Printf("ws: %v", err)
			c.Close()
			return
		}
		c.events.Push(network.ServerMessage{Msg: msg})
	}
}
