package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/auth"
	"github.com/Niranjan-NN/stream360/internal/config"
	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

type SignalWSController struct {
	Hub       *hub.Hub
	secret    string
	readLimit int64
}

func NewSignalWSController(h *hub.Hub, cfg *config.Config) *SignalWSController {
	return &SignalWSController{
		Hub:       h,
		secret:    cfg.Secret,
		readLimit: cfg.ReadLimit,
	}
}

var upgrader = websocket.Upgrader{
	// TODO: restrict origins once the deployed client origin is fixed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal authenticates the upgrade request (token in query — the
// browser WebSocket API cannot set headers) and starts the pumps. Each
// connection gets its own id; presence is keyed by connection, not user,
// so two tabs are two sessions.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	user, err := auth.ParseToken(ctl.secret, c.Query("token"))
	if err != nil {
		log.Warn().Err(err).Str("module", "adapters.ws").Msg("ws auth failed")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		return
	}

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("ws upgrade")
		return
	}

	cid := hub.ConnID(uuid.NewString())
	log.Info().Str("module", "adapters.ws").Str("conn", string(cid)).Str("user", string(user.ID)).Msg("new ws connection")

	conn := newWSSignalConn(wsConn)
	conn.conn.SetReadLimit(ctl.readLimit)

	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, cid, conn)
	go ctl.readPump(ctx, cancel, cid, user, conn)
}

// client is the per-connection state the handlers need.
type client struct {
	cid  hub.ConnID
	user *domain.User
	conn *wsSignalConn
}
