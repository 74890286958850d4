package network

import "sync"

// LocalClient is the client half of an in-process channel pair.
type LocalClient struct {
	in     *Queue[ClientEvent]
	peer   *Queue[ServerEvent]
	closed sync.Once
}

// LocalServer is the server half of an in-process channel pair.
type LocalServer struct {
	in     *Queue[ServerEvent]
	peer   *Queue[ClientEvent]
	closed sync.Once
}

// NewLocalPair creates a connected in-process channel pair, the reference
// transport for integrated single-player sessions. Each direction is an
// independent FIFO; messages arrive in send order within a direction and
// carry no ordering relative to the other direction.
func NewLocalPair() (*LocalClient, *LocalServer) {
	toClient := &Queue[ClientEvent]{}
	toServer := &Queue[ServerEvent]{}

	toClient.Push(Connected{})
	toServer.Push(ClientConnected{ID: 0})

	return &LocalClient{in: toClient, peer: toServer},
		&LocalServer{in: toServer, peer: toClient}
}

func (c *LocalClient) ReceiveEvent() ClientEvent {
	if ev, ok := c.in.Pop(); ok {
		return ev
	}
	return NoEvent{}
}

func (c *LocalClient) Send(msg ToServer) {
	c.peer.Push(ClientMessage{ID: 0, Msg: msg})
}

// Close ends the session from the client side. The server observes a
// ClientDisconnected event.
func (c *LocalClient) Close() {
	c.closed.Do(func() {
		c.peer.Push(ClientDisconnected{ID: 0})
	})
}

func (s *LocalServer) ReceiveEvent() ServerEvent {
	if ev, ok := s.in.Pop(); ok {
		return ev
	}
	return NoEvent{}
}

func (s *LocalServer) Send(id PlayerID, msg ToClient) {
	s.peer.Push(ServerMessage{Msg: msg})
}

// Close ends the session from the server side. The client observes a
// terminal Disconnected event.
func (s *LocalServer) Close() {
	s.closed.Do(func() {
		s.peer.Push(Disconnected{})
	})
}
