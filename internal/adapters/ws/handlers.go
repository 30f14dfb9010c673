package ws

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

func (ctl *SignalWSController) handleSignal(cl *client, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad json")
		return
	}

	switch env.Type {
	case hub.TypeJoinRoom:
		ctl.handleJoinRoom(cl, data)
	case hub.TypeLeaveRoom:
		ctl.handleLeaveRoom(cl)
	case hub.TypeSendMessage:
		ctl.handleSendMessage(cl, data)
	case hub.TypeToggleAudio:
		ctl.handleToggleAudio(cl, data)
	case hub.TypeToggleVideo:
		ctl.handleToggleVideo(cl, data)
	case "ping":
		ctl.sendJSON(cl.conn, map[string]string{"type": "pong"})
	default:
		log.Warn().Str("module", "adapters.ws").Str("type", env.Type).Msg("unknown signal")
	}
}

func (ctl *SignalWSController) sendJSON(c *wsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

// dropViolation logs an event arriving before join-room. The client is
// responsible for sequencing; the connection is never closed for this.
func dropViolation(cl *client, event string, err error) bool {
	if errors.Is(err, hub.ErrNotMember) {
		log.Warn().Str("module", "adapters.ws").Str("conn", string(cl.cid)).Str("event", event).Msg("protocol violation, event dropped")
		return true
	}
	return false
}

func (ctl *SignalWSController) handleJoinRoom(cl *client, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
		User   struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad join-room payload")
		return
	}
	if p.RoomID == "" {
		ctl.sendJSON(cl.conn, map[string]string{"type": "error", "error": "roomId required"})
		return
	}

	// Identity comes from the verified token; the payload may only
	// refresh the display name.
	user := *cl.user
	if p.User.Name != "" {
		user.Name = p.User.Name
	}

	log.Info().Str("module", "adapters.ws").Str("conn", string(cl.cid)).Str("room", p.RoomID).Msg("join-room")
	members := ctl.Hub.Join(cl.cid, domain.RoomID(p.RoomID), user, cl.conn)

	// Snapshot back to the joiner so a late arrival can render the room
	// without waiting for individual user-joined events.
	ctl.sendJSON(cl.conn, hub.RoomStateEvent{
		Type:    hub.TypeRoomState,
		RoomID:  p.RoomID,
		Members: members,
	})
}

func (ctl *SignalWSController) handleLeaveRoom(cl *client) {
	log.Info().Str("module", "adapters.ws").Str("conn", string(cl.cid)).Msg("leave-room")
	ctl.Hub.Leave(cl.cid)
}

func (ctl *SignalWSController) handleSendMessage(cl *client, data []byte) {
	var p struct {
		Type    string          `json:"type"`
		RoomID  string          `json:"roomId"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad send-message payload")
		return
	}
	if err := ctl.Hub.Chat(cl.cid, p.Message); err != nil && !dropViolation(cl, hub.TypeSendMessage, err) {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("send-message")
	}
}

func (ctl *SignalWSController) handleToggleAudio(cl *client, data []byte) {
	var p struct {
		Type         string `json:"type"`
		RoomID       string `json:"roomId"`
		UserID       string `json:"userId"`
		IsAudioMuted bool   `json:"isAudioMuted"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad toggle-audio payload")
		return
	}
	if err := ctl.Hub.ToggleAudio(cl.cid, p.IsAudioMuted); err != nil && !dropViolation(cl, hub.TypeToggleAudio, err) {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("toggle-audio")
	}
}

func (ctl *SignalWSController) handleToggleVideo(cl *client, data []byte) {
	var p struct {
		Type         string `json:"type"`
		RoomID       string `json:"roomId"`
		UserID       string `json:"userId"`
		IsVideoMuted bool   `json:"isVideoMuted"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("bad toggle-video payload")
		return
	}
	if err := ctl.Hub.ToggleVideo(cl.cid, p.IsVideoMuted); err != nil && !dropViolation(cl, hub.TypeToggleVideo, err) {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("toggle-video")
	}
}
