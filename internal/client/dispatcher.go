package client

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

// Emitter is the outbound side of the channel. Emitting is a side effect
// kept outside the reducer; swapping in an ack'd transport never touches
// reduction logic.
type Emitter interface {
	Emit(v any) error
}

// Dispatcher pairs local actions with their outbound messages and folds
// every event through the reducer. Local toggles are optimistic: the
// state changes before (and regardless of) any server response, since
// the hub never rejects a toggle.
type Dispatcher struct {
	mu      sync.Mutex
	state   State
	emitter Emitter
	user    domain.User
}

func NewDispatcher(user domain.User, emitter Emitter) *Dispatcher {
	return &Dispatcher{emitter: emitter, user: user}
}

// State returns a snapshot of the current view.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return clone(d.state)
}

// HandleFrame feeds one inbound wire frame through the reducer.
func (d *Dispatcher) HandleFrame(data []byte) error {
	ev, err := DecodeFrame(data)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.state = Reduce(d.state, ev)
	d.mu.Unlock()
	return nil
}

// JoinRoom announces presence. Joining while already in a room leaves
// the old room first; the later leave always wins over a join in flight.
func (d *Dispatcher) JoinRoom(roomID domain.RoomID) error {
	d.mu.Lock()
	if d.state.InRoom() {
		d.mu.Unlock()
		if err := d.LeaveRoom(); err != nil {
			return err
		}
		d.mu.Lock()
	}
	d.state = Reduce(d.state, JoinedRoom{RoomID: roomID, User: d.user})
	d.mu.Unlock()

	return d.emitter.Emit(map[string]any{
		"type":   hub.TypeJoinRoom,
		"roomId": string(roomID),
		"user":   d.user,
	})
}

// LeaveRoom clears the entire view; history does not survive the room.
func (d *Dispatcher) LeaveRoom() error {
	d.mu.Lock()
	roomID := d.state.RoomID
	d.state = Reduce(d.state, LeftRoom{})
	d.mu.Unlock()

	if roomID == "" {
		return nil
	}
	return d.emitter.Emit(map[string]any{
		"type":   hub.TypeLeaveRoom,
		"roomId": string(roomID),
		"userId": string(d.user.ID),
	})
}

// SendMessage appends the message locally and relays it to the room.
func (d *Dispatcher) SendMessage(content string) (domain.Message, error) {
	msg := domain.Message{
		ID:        uuid.NewString(),
		Sender:    d.user,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	d.mu.Lock()
	if !d.state.InRoom() {
		d.mu.Unlock()
		return domain.Message{}, fmt.Errorf("send message: %w", domain.ErrNotMember)
	}
	roomID := d.state.RoomID
	d.state = Reduce(d.state, MessageSent{Message: msg})
	d.mu.Unlock()

	raw, err := json.Marshal(msg)
	if err != nil {
		return domain.Message{}, fmt.Errorf("send message: %w", err)
	}
	return msg, d.emitter.Emit(map[string]any{
		"type":    hub.TypeSendMessage,
		"roomId":  string(roomID),
		"message": json.RawMessage(raw),
	})
}

// ToggleAudio flips the local audio flag and notifies the room.
func (d *Dispatcher) ToggleAudio() error {
	d.mu.Lock()
	if !d.state.InRoom() {
		d.mu.Unlock()
		return fmt.Errorf("toggle audio: %w", domain.ErrNotMember)
	}
	muted := !d.state.Local.IsAudioMuted
	roomID := d.state.RoomID
	d.state = Reduce(d.state, LocalAudioToggled{Muted: muted})
	d.mu.Unlock()

	return d.emitter.Emit(map[string]any{
		"type":         hub.TypeToggleAudio,
		"roomId":       string(roomID),
		"userId":       string(d.user.ID),
		"isAudioMuted": muted,
	})
}

// ToggleVideo flips the local video flag and notifies the room.
func (d *Dispatcher) ToggleVideo() error {
	d.mu.Lock()
	if !d.state.InRoom() {
		d.mu.Unlock()
		return fmt.Errorf("toggle video: %w", domain.ErrNotMember)
	}
	muted := !d.state.Local.IsVideoMuted
	roomID := d.state.RoomID
	d.state = Reduce(d.state, LocalVideoToggled{Muted: muted})
	d.mu.Unlock()

	return d.emitter.Emit(map[string]any{
		"type":         hub.TypeToggleVideo,
		"roomId":       string(roomID),
		"userId":       string(d.user.ID),
		"isVideoMuted": muted,
	})
}
