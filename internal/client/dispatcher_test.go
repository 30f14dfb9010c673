package client_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niranjan-NN/stream360/internal/client"
	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

// fakeEmitter records every outbound message as generic JSON.
type fakeEmitter struct {
	sent []map[string]any
}

func (e *fakeEmitter) Emit(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	e.sent = append(e.sent, m)
	return nil
}

func newDispatcher() (*client.Dispatcher, *fakeEmitter) {
	em := &fakeEmitter{}
	d := client.NewDispatcher(domain.User{ID: "local", Name: "Me"}, em)
	return d, em
}

func TestJoinRoomEmitsAndInitializes(t *testing.T) {
	d, em := newDispatcher()

	require.NoError(t, d.JoinRoom("abc123"))

	require.Len(t, em.sent, 1)
	assert.Equal(t, hub.TypeJoinRoom, em.sent[0]["type"])
	assert.Equal(t, "abc123", em.sent[0]["roomId"])

	s := d.State()
	assert.True(t, s.InRoom())
	assert.Equal(t, domain.RoomID("abc123"), s.RoomID)
}

func TestJoinWhileInRoomLeavesFirst(t *testing.T) {
	d, em := newDispatcher()
	require.NoError(t, d.JoinRoom("room1"))
	require.NoError(t, d.JoinRoom("room2"))

	require.Len(t, em.sent, 3)
	assert.Equal(t, hub.TypeJoinRoom, em.sent[0]["type"])
	assert.Equal(t, hub.TypeLeaveRoom, em.sent[1]["type"])
	assert.Equal(t, "room1", em.sent[1]["roomId"])
	assert.Equal(t, hub.TypeJoinRoom, em.sent[2]["type"])
	assert.Equal(t, "room2", em.sent[2]["roomId"])
}

func TestLeaveRoomEmitsAndClears(t *testing.T) {
	d, em := newDispatcher()
	require.NoError(t, d.JoinRoom("abc123"))
	require.NoError(t, d.LeaveRoom())

	require.Len(t, em.sent, 2)
	assert.Equal(t, hub.TypeLeaveRoom, em.sent[1]["type"])
	assert.Equal(t, "local", em.sent[1]["userId"])
	assert.False(t, d.State().InRoom())

	// Leaving while not in a room emits nothing.
	require.NoError(t, d.LeaveRoom())
	assert.Len(t, em.sent, 2)
}

func TestSendMessageIsOptimisticAndEmitted(t *testing.T) {
	d, em := newDispatcher()
	require.NoError(t, d.JoinRoom("abc123"))

	msg, err := d.SendMessage("hello")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "hello", msg.Content)

	s := d.State()
	require.Len(t, s.Messages, 1)
	assert.Equal(t, "hello", s.Messages[0].Content)

	last := em.sent[len(em.sent)-1]
	assert.Equal(t, hub.TypeSendMessage, last["type"])
	payload := last["message"].(map[string]any)
	assert.Equal(t, msg.ID, payload["id"])
}

func TestSendMessageOutsideRoomFails(t *testing.T) {
	d, _ := newDispatcher()
	_, err := d.SendMessage("hello")
	assert.ErrorIs(t, err, domain.ErrNotMember)
}

func TestTogglesAreOptimistic(t *testing.T) {
	d, em := newDispatcher()
	require.NoError(t, d.JoinRoom("abc123"))

	require.NoError(t, d.ToggleAudio())
	assert.True(t, d.State().Local.IsAudioMuted)
	require.NoError(t, d.ToggleAudio())
	assert.False(t, d.State().Local.IsAudioMuted)

	require.NoError(t, d.ToggleVideo())
	assert.True(t, d.State().Local.IsVideoMuted)

	var audioEvents []map[string]any
	for _, m := range em.sent {
		if m["type"] == hub.TypeToggleAudio {
			audioEvents = append(audioEvents, m)
		}
	}
	require.Len(t, audioEvents, 2)
	assert.Equal(t, true, audioEvents[0]["isAudioMuted"])
	assert.Equal(t, false, audioEvents[1]["isAudioMuted"])
}

func TestHandleFrameDrivesReducer(t *testing.T) {
	d, _ := newDispatcher()
	require.NoError(t, d.JoinRoom("abc123"))

	frame, err := json.Marshal(hub.UserJoinedEvent{
		Type:        hub.TypeUserJoined,
		Participant: hub.ParticipantSnapshot{ID: "u2", Name: "Bob"},
	})
	require.NoError(t, err)
	require.NoError(t, d.HandleFrame(frame))

	s := d.State()
	require.Len(t, s.Remotes, 1)
	assert.Equal(t, "Bob", s.Remotes[0].Name)

	assert.Error(t, d.HandleFrame([]byte(`{"type":"bogus"}`)))
}
