// Package network defines the duplex event protocol between the client
// core and a game server. The core depends only on the Client and Server
// interfaces; the in-process pair in this package serves integrated
// single-player sessions and the ws subpackage serves remote play.
package network

// PlayerID identifies a connected client on the server side.
type PlayerID uint16

// Client is the client-side endpoint of the synchronization channel.
type Client interface {
	// ReceiveEvent returns the next queued event, or NoEvent if the queue
	// is empty. It never blocks.
	ReceiveEvent() ClientEvent
	// Send enqueues a message for the server and returns immediately.
	// The message is owned by the receiver after the call.
	Send(msg ToServer)
}

// Server is the server-side endpoint of the synchronization channel.
type Server interface {
	// ReceiveEvent returns the next queued event, or NoEvent if the queue
	// is empty. It never blocks.
	ReceiveEvent() ServerEvent
	// Send enqueues a message for one client and returns immediately.
	Send(id PlayerID, msg ToClient)
}

// ClientEvent is what the client-side endpoint yields per poll.
type ClientEvent interface {
	clientEvent()
}

// ServerEvent is what the server-side endpoint yields per poll.
type ServerEvent interface {
	serverEvent()
}

// NoEvent is the empty-queue sentinel for both endpoints.
type NoEvent struct{}

// Connected reports that the session is established.
type Connected struct{}

// Disconnected reports that the session ended. Terminal: the core has no
// reconnect logic, the current world instance is over.
type Disconnected struct{}

// ServerMessage carries one message from the server.
type ServerMessage struct {
	Msg ToClient
}

// ClientConnected reports a new client on the server side.
type ClientConnected struct {
	ID PlayerID
}

// ClientDisconnected reports a departed client on the server side.
type ClientDisconnected struct {
	ID PlayerID
}

// ClientMessage carries one message from a connected client.
type ClientMessage struct {
	ID  PlayerID
	Msg ToServer
}

func (NoEvent) clientEvent()       {}
func (Connected) clientEvent()     {}
func (Disconnected) clientEvent()  {}
func (ServerMessage) clientEvent() {}

func (NoEvent) serverEvent()            {}
func (ClientConnected) serverEvent()    {}
func (ClientDisconnected) serverEvent() {}
func (ClientMessage) serverEvent()      {}
