package client

import (
	"encoding/json"
	"fmt"

	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

// DecodeFrame turns one inbound wire frame into a reducer event.
func DecodeFrame(data []byte) (Event, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	switch env.Type {
	case hub.TypeRoomState:
		var e hub.RoomStateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return RoomStateReceived{RoomID: domain.RoomID(e.RoomID), Members: e.Members}, nil

	case hub.TypeUserJoined:
		var e hub.UserJoinedEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return UserJoined{Participant: e.Participant}, nil

	case hub.TypeUserLeft:
		var e hub.UserLeftEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return UserLeft{UserID: e.UserID}, nil

	case hub.TypeAudioToggle:
		var e hub.AudioToggleEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return AudioToggled{UserID: e.UserID, Muted: e.IsAudioMuted}, nil

	case hub.TypeVideoToggle:
		var e hub.VideoToggleEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return VideoToggled{UserID: e.UserID, Muted: e.IsVideoMuted}, nil

	case hub.TypeReceiveMessage:
		var e hub.ReceiveMessageEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		var msg domain.Message
		if err := json.Unmarshal(e.Message, &msg); err != nil {
			return nil, fmt.Errorf("decode message payload: %w", err)
		}
		return MessageReceived{Message: msg}, nil
	}
	return nil, fmt.Errorf("unknown frame type %q", env.Type)
}
