package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/service"
)

// RoomController exposes the membership operations over REST.
type RoomController struct {
	Service *service.RoomService
}

type createRoomRequest struct {
	RoomID string `json:"roomId" binding:"required"`
}

// CreateRoom handles POST /api/rooms.
func (ctl *RoomController) CreateRoom(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "roomId is required"})
		return
	}

	room, err := ctl.Service.CreateRoom(c.Request.Context(), domain.RoomID(req.RoomID), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Room already exists"})
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetRoom handles GET /api/rooms/:roomId.
func (ctl *RoomController) GetRoom(c *gin.Context) {
	room, err := ctl.Service.GetRoom(c.Request.Context(), domain.RoomID(c.Param("roomId")))
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// JoinRoom handles POST /api/rooms/:roomId/join.
func (ctl *RoomController) JoinRoom(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	room, err := ctl.Service.JoinRoom(c.Request.Context(), domain.RoomID(c.Param("roomId")), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// LeaveRoom handles POST /api/rooms/:roomId/leave.
func (ctl *RoomController) LeaveRoom(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	res, err := ctl.Service.LeaveRoom(c.Request.Context(), domain.RoomID(c.Param("roomId")), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
			return
		}
		serverError(c, err)
		return
	}
	if res.Deleted {
		c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
		return
	}
	c.JSON(http.StatusOK, res.Room)
}

// DeleteRoom handles DELETE /api/rooms/:roomId — host only.
func (ctl *RoomController) DeleteRoom(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	err := ctl.Service.DeleteRoom(c.Request.Context(), domain.RoomID(c.Param("roomId")), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Room not found"})
		case errors.Is(err, domain.ErrNotHost):
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
		default:
			serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// Me handles GET /api/me.
func (ctl *RoomController) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func serverError(c *gin.Context, err error) {
	log.Error().Err(err).Str("module", "adapters.http").Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
}
