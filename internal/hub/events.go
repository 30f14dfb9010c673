package hub

import "encoding/json"

// Event type tags on the wire. Inbound and outbound frames are flat JSON
// envelopes with a "type" discriminator.
const (
	// client -> server
	TypeJoinRoom    = "join-room"
	TypeLeaveRoom   = "leave-room"
	TypeSendMessage = "send-message"
	TypeToggleAudio = "toggle-audio"
	TypeToggleVideo = "toggle-video"

	// server -> client
	TypeUserJoined     = "user-joined"
	TypeUserLeft       = "user-left"
	TypeReceiveMessage = "receive-message"
	TypeAudioToggle    = "audio-toggle"
	TypeVideoToggle    = "video-toggle"
	TypeRoomState      = "room-state"
)

// ParticipantSnapshot is the hub's read-only view of one live session.
type ParticipantSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsAudioMuted bool   `json:"isAudioMuted"`
	IsVideoMuted bool   `json:"isVideoMuted"`
}

type UserJoinedEvent struct {
	Type        string              `json:"type"`
	Participant ParticipantSnapshot `json:"participant"`
}

type UserLeftEvent struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// ReceiveMessageEvent relays the sender's message payload verbatim; the
// hub never inspects or rewrites it.
type ReceiveMessageEvent struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"`
}

type AudioToggleEvent struct {
	Type         string `json:"type"`
	UserID       string `json:"userId"`
	IsAudioMuted bool   `json:"isAudioMuted"`
}

type VideoToggleEvent struct {
	Type         string `json:"type"`
	UserID       string `json:"userId"`
	IsVideoMuted bool   `json:"isVideoMuted"`
}

// RoomStateEvent is sent to the joiner only, so a late arrival can render
// the members already in the room.
type RoomStateEvent struct {
	Type    string                `json:"type"`
	RoomID  string                `json:"roomId"`
	Members []ParticipantSnapshot `json:"members"`
}
