package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

const writeDeadline = 5 * time.Second

func (ctl *SignalWSController) writePump(ctx context.Context, cid hub.ConnID, c *wsSignalConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "adapters.ws").Str("conn", string(cid)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "adapters.ws").Str("conn", string(cid)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "adapters.ws").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.ws").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, cid hub.ConnID, user *domain.User, c *wsSignalConn) {
	cl := &client{cid: cid, user: user, conn: c}

	defer func() {
		log.Info().Str("module", "adapters.ws").Str("conn", string(cid)).Msg("readPump closing")
		ctl.Hub.Disconnect(cid)
		cancel()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "adapters.ws").Str("conn", string(cid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "adapters.ws").Str("conn", string(cid)).Msg("readPump read error")
				return
			}
			ctl.handleSignal(cl, data)
		}
	}
}
