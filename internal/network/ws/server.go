package ws

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blockworld/internal/network"
)

// Server accepts websocket clients and exposes them through the
// network.Server interface. Connection goroutines feed a shared event
// queue; the game loop drains it from its own goroutine.
type Server struct {
	log      *log.Logger
	upgrader websocket.Upgrader
	events   network.Queue[network.ServerEvent]

	mu     sync.Mutex
	conns  map[network.PlayerID]*serverConn
	nextID network.PlayerID

	pongWait   time.Duration
	pingPeriod time.Duration

	httpSrv *http.Server
}

type serverConn struct {
	conn   *websocket.Conn
	out    *outbox
	closed sync.Once
}

// NewServer creates a websocket server endpoint.
func NewServer(logger *log.Logger) *Server {
	return newServer(logger, pongWait, pingPeriod)
}

func newServer(logger *log.Logger, pongWait, pingPeriod time.Duration) *Server {
	return &Server{
		log:        logger,
		conns:      make(map[network.PlayerID]*serverConn),
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// ListenAndServe serves the /ws endpoint at addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}
	s.log.Printf("listening on %s", addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the listener and drops all connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, sc := range s.conns {
		s.dropLocked(id, sc)
	}
	s.mu.Unlock()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Handler upgrades connections; usable directly for embedding the endpoint
// into an existing mux.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}

		sc := &serverConn{conn: conn, out: newOutbox()}
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(s.pongWait))
		})

		s.mu.Lock()
		id := s.nextID
		s.nextID++
		s.conns[id] = sc
		s.mu.Unlock()

		s.events.Push(network.ClientConnected{ID: id})

		go s.writeLoop(id, sc)
		go s.pingLoop(id, sc)
		s.readLoop(id, sc)
	}
}

func (s *Server) ReceiveEvent() network.ServerEvent {
	if ev, ok := s.events.Pop(); ok {
		return ev
	}
	return network.NoEvent{}
}

func (s *Server) Send(id network.PlayerID, msg network.ToClient) {
	s.mu.Lock()
	sc := s.conns[id]
	s.mu.Unlock()
	if sc == nil {
		// Already disconnected; the channel contract makes this a no-op.
		return
	}
	frame, err := encodeToClient(msg)
	if err != nil {
		s.log.Printf("ws: dropping message for client %d: %v", id, err)
		return
	}
	sc.out.push(frame)
}

func (s *Server) writeLoop(id network.PlayerID, sc *serverConn) {
	for {
		frame, ok := sc.out.next()
		if !ok {
			return
		}
		_ = sc.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := sc.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			s.drop(id)
			return
		}
	}
}

// pingLoop keeps the client's read deadline alive while the chunk stream
// is idle. WriteControl is safe alongside the writer goroutine.
func (s *Server) pingLoop(id network.PlayerID, sc *serverConn) {
	ticker := time.NewTicker(s.pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		if err := sc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
			s.drop(id)
			return
		}
	}
}

func (s *Server) readLoop(id network.PlayerID, sc *serverConn) {
	for {
		_ = sc.conn.SetReadDeadline(time.Now().Add(s.pongWait))
		_, raw, err := sc.conn.ReadMessage()
		if err != nil {
			s.drop(id)
			return
		}
		msg, err := decodeToServer(raw)
		if err != nil {
			// Peers that disagree about the protocol get cut off rather
			// than partially applied.
			s.log.Printf("ws: client %d: %v", id, err)
			s.drop(id)
			return
		}
		s.events.Push(network.ClientMessage{ID: id, Msg: msg})
	}
}

func (s *Server) drop(id network.PlayerID) {
	s.mu.Lock()
	sc := s.conns[id]
	if sc != nil {
		s.dropLocked(id, sc)
	}
	s.mu.Unlock()
}

// dropLocked requires s.mu held.
func (s *Server) dropLocked(id network.PlayerID, sc *serverConn) {
	sc.closed.Do(func() {
		delete(s.conns, id)
		sc.out.close()
		_ = sc.conn.Close()
		s.events.Push(network.ClientDisconnected{ID: id})
	})
}
