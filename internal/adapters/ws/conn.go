// Package ws adapts the presence hub to gorilla/websocket connections:
// one read pump, one write pump, and a buffered send channel per client.
package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Niranjan-NN/stream360/internal/hub"
)

// ErrBackpressure is returned when a client's send buffer is full; the
// hub drops that frame for that client only.
var ErrBackpressure = errors.New("send buffer full")

const sendBufferSize = 32

type wsSignalConn struct {
	conn *websocket.Conn
	send chan hub.Frame
	once sync.Once
}

func newWSSignalConn(conn *websocket.Conn) *wsSignalConn {
	return &wsSignalConn{
		conn: conn,
		send: make(chan hub.Frame, sendBufferSize),
	}
}

func (c *wsSignalConn) TrySend(f hub.Frame) error {
	select {
	case c.send <- f:
		return nil
	default:
		return ErrBackpressure
	}
}

func (c *wsSignalConn) Close() {
	c.once.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}
