package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/adapters/ws"
	"github.com/Niranjan-NN/stream360/internal/config"
	"github.com/Niranjan-NN/stream360/internal/hub"
	"github.com/Niranjan-NN/stream360/internal/service"
)

// SetupRouter wires HTTP routes (REST + WS) with the service and hub.
// - Static files are served from cfg.StaticPath.
// - REST is under /api/* behind bearer auth.
// - WebSocket upgrade lives at /ws (token in query, browsers cannot set
//   headers on the upgrade request).
func SetupRouter(ctx context.Context, cfg *config.Config, svc *service.RoomService, h *hub.Hub) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	r.GET("/api/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctl := &RoomController{Service: svc}

	api := r.Group("/api")
	api.Use(AuthMiddleware(cfg.Secret, svc))

	api.GET("/me", ctl.Me)
	api.POST("/rooms", ctl.CreateRoom)
	api.GET("/rooms/:roomId", ctl.GetRoom)
	api.POST("/rooms/:roomId/join", ctl.JoinRoom)
	api.POST("/rooms/:roomId/leave", ctl.LeaveRoom)
	api.DELETE("/rooms/:roomId", ctl.DeleteRoom)

	signal := ws.NewSignalWSController(h, cfg)
	r.GET("/ws", func(c *gin.Context) {
		signal.HandleSignal(ctx, c)
	})

	return r
}
