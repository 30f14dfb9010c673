package hub_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

// fakeConn records delivered frames in order.
type fakeConn struct {
	mu     sync.Mutex
	frames []hub.Frame
	full   bool
}

func (c *fakeConn) TrySend(f hub.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		return errors.New("buffer full")
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() {}

func (c *fakeConn) received(t *testing.T) []map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.frames))
	for _, f := range c.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(f, &m))
		out = append(out, m)
	}
	return out
}

func user(id, name string) domain.User {
	return domain.User{ID: domain.UserID(id), Name: name}
}

func TestJoinBroadcastsToOthersOnly(t *testing.T) {
	h := hub.NewHub()
	c1, c2 := &fakeConn{}, &fakeConn{}

	members := h.Join("conn1", "abc123", user("u1", "Alice"), c1)
	assert.Empty(t, members)

	members = h.Join("conn2", "abc123", user("u2", "Bob"), c2)
	require.Len(t, members, 1)
	assert.Equal(t, "u1", members[0].ID)

	// Alice sees Bob arrive with default unmuted flags; Bob gets nothing.
	got := c1.received(t)
	require.Len(t, got, 1)
	assert.Equal(t, hub.TypeUserJoined, got[0]["type"])
	p := got[0]["participant"].(map[string]any)
	assert.Equal(t, "u2", p["id"])
	assert.Equal(t, "Bob", p["name"])
	assert.Equal(t, false, p["isAudioMuted"])
	assert.Equal(t, false, p["isVideoMuted"])

	assert.Empty(t, c2.received(t))
}

func TestLeaveBroadcastsUserLeft(t *testing.T) {
	h := hub.NewHub()
	c1, c2 := &fakeConn{}, &fakeConn{}
	h.Join("conn1", "abc123", user("u1", "Alice"), c1)
	h.Join("conn2", "abc123", user("u2", "Bob"), c2)

	h.Leave("conn2")

	got := c1.received(t)
	require.Len(t, got, 2) // user-joined, then user-left
	assert.Equal(t, hub.TypeUserLeft, got[1]["type"])
	assert.Equal(t, "u2", got[1]["userId"])

	members := h.MembersOf("abc123")
	require.Len(t, members, 1)
	assert.Equal(t, "u1", members[0].ID)
}

func TestDisconnectActsAsLeave(t *testing.T) {
	h := hub.NewHub()
	c1 := &fakeConn{}
	h.Join("conn1", "abc123", user("u1", "Alice"), c1)
	h.Join("conn2", "abc123", user("u2", "Bob"), &fakeConn{})

	h.Disconnect("conn2")

	got := c1.received(t)
	require.Len(t, got, 2)
	assert.Equal(t, hub.TypeUserLeft, got[1]["type"])
	assert.Equal(t, "u2", got[1]["userId"])
}

func TestToggleAudioExcludesSender(t *testing.T) {
	h := hub.NewHub()
	c1, c2, c3 := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Join("conn1", "r", user("u1", "Alice"), c1)
	h.Join("conn2", "r", user("u2", "Bob"), c2)
	h.Join("conn3", "r", user("u3", "Cara"), c3)

	before := len(c1.received(t))
	require.NoError(t, h.ToggleAudio("conn1", true))

	// Delivered to every other live connection, never back to the sender.
	assert.Len(t, c1.received(t), before)

	for _, c := range []*fakeConn{c2, c3} {
		got := c.received(t)
		last := got[len(got)-1]
		assert.Equal(t, hub.TypeAudioToggle, last["type"])
		assert.Equal(t, "u1", last["userId"])
		assert.Equal(t, true, last["isAudioMuted"])
	}

	members := h.MembersOf("r")
	for _, m := range members {
		if m.ID == "u1" {
			assert.True(t, m.IsAudioMuted)
		}
	}
}

func TestToggleVideoUpdatesSession(t *testing.T) {
	h := hub.NewHub()
	c1, c2 := &fakeConn{}, &fakeConn{}
	h.Join("conn1", "r", user("u1", "Alice"), c1)
	h.Join("conn2", "r", user("u2", "Bob"), c2)

	require.NoError(t, h.ToggleVideo("conn2", true))

	got := c1.received(t)
	last := got[len(got)-1]
	assert.Equal(t, hub.TypeVideoToggle, last["type"])
	assert.Equal(t, "u2", last["userId"])
	assert.Equal(t, true, last["isVideoMuted"])
}

func TestChatRelayIsVerbatimAndOrdered(t *testing.T) {
	h := hub.NewHub()
	c1, c2 := &fakeConn{}, &fakeConn{}
	h.Join("conn1", "r", user("u1", "Alice"), c1)
	h.Join("conn2", "r", user("u2", "Bob"), c2)

	const n = 20
	for i := 0; i < n; i++ {
		payload := json.RawMessage(fmt.Sprintf(`{"id":"m%d","content":"hello %d"}`, i, i))
		require.NoError(t, h.Chat("conn1", payload))
	}

	got := c2.received(t)
	require.Len(t, got, n)
	for i, m := range got {
		assert.Equal(t, hub.TypeReceiveMessage, m["type"])
		msg := m["message"].(map[string]any)
		assert.Equal(t, fmt.Sprintf("m%d", i), msg["id"])
	}

	// Nothing echoes back to the sender: c1 only ever saw u2 join.
	for _, m := range c1.received(t) {
		assert.NotEqual(t, hub.TypeReceiveMessage, m["type"])
	}
}

func TestEventsFromNonMembersAreViolations(t *testing.T) {
	h := hub.NewHub()

	assert.ErrorIs(t, h.ToggleAudio("stranger", true), hub.ErrNotMember)
	assert.ErrorIs(t, h.ToggleVideo("stranger", true), hub.ErrNotMember)
	assert.ErrorIs(t, h.Chat("stranger", json.RawMessage(`{}`)), hub.ErrNotMember)

	// Leave from a never-joined connection is a silent no-op.
	h.Leave("stranger")
	h.Disconnect("stranger")
}

func TestFirstJoinerBroadcastsIntoEmptyRoom(t *testing.T) {
	h := hub.NewHub()
	c1 := &fakeConn{}

	members := h.Join("conn1", "fresh", user("u1", "Alice"), c1)
	assert.Empty(t, members)

	// No peers yet: toggles and chat succeed as no-ops.
	require.NoError(t, h.ToggleAudio("conn1", true))
	require.NoError(t, h.Chat("conn1", json.RawMessage(`{"id":"m1"}`)))
	assert.Empty(t, c1.received(t))
}

func TestSlowConsumerIsSkippedNotFatal(t *testing.T) {
	h := hub.NewHub()
	c1, c2, c3 := &fakeConn{}, &fakeConn{full: true}, &fakeConn{}
	h.Join("conn1", "r", user("u1", "Alice"), c1)
	h.Join("conn2", "r", user("u2", "Bob"), c2)
	h.Join("conn3", "r", user("u3", "Cara"), c3)

	require.NoError(t, h.Chat("conn1", json.RawMessage(`{"id":"m1"}`)))

	assert.Empty(t, c2.received(t))
	got := c3.received(t)
	require.NotEmpty(t, got)
	assert.Equal(t, hub.TypeReceiveMessage, got[len(got)-1]["type"])
}

func TestJoinMovesConnectionBetweenRooms(t *testing.T) {
	h := hub.NewHub()
	cA, cB := &fakeConn{}, &fakeConn{}
	h.Join("connA", "room1", user("uA", "Ann"), cA)
	h.Join("connB", "room2", user("uB", "Ben"), cB)

	mover := &fakeConn{}
	h.Join("connM", "room1", user("uM", "Mia"), mover)
	h.Join("connM", "room2", user("uM", "Mia"), mover)

	// room1 saw Mia join and then leave.
	gotA := cA.received(t)
	require.Len(t, gotA, 2)
	assert.Equal(t, hub.TypeUserJoined, gotA[0]["type"])
	assert.Equal(t, hub.TypeUserLeft, gotA[1]["type"])

	// room2 saw her arrive once.
	gotB := cB.received(t)
	require.Len(t, gotB, 1)
	assert.Equal(t, hub.TypeUserJoined, gotB[0]["type"])
}
