package handlers

import (
	"errors"
	"sync"

	"myapp/services"

	"github.com/gorilla/websocket"
)

var errSendBufferFull = errors.New("send buffer full")

const sendBufferSize = 16

// client owns one websocket connection. Messages are queued on send and written
// by the write pump, which is the only goroutine writing to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Send queues message without blocking. A client that cannot keep up is treated
// as gone.
func (cl *client) Send(message []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return services.ErrChannelClosed
	}
	select {
	case cl.send <- message:
		return nil
	default:
		return errSendBufferFull
	}
}

// close stops the write pump, which then sends a close frame and drops the connection.
func (cl *client) close() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if !cl.closed {
		cl.closed = true
		close(cl.send)
	}
}
