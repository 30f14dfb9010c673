// Package hub is the real-time relay: it tracks live sessions per room
// and fans each member's events out to everyone else in that room. It
// holds no durable state and is independent of REST membership; a socket
// joining a room never touches the room record.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/domain"
)

// Frame is a marshaled wire payload.
type Frame []byte

type ConnID string

// ErrNotMember is returned for events from a connection that never sent
// join-room. Callers log and drop; the connection stays open.
var ErrNotMember = domain.ErrNotMember

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Session is the ephemeral presence record for one live connection.
// Lost on process restart; clients must re-join after a reconnect.
type Session struct {
	ConnID       ConnID
	RoomID       domain.RoomID
	User         domain.User
	IsAudioMuted bool
	IsVideoMuted bool
	conn         SignalConnection
}

func (s *Session) snapshot() ParticipantSnapshot {
	return ParticipantSnapshot{
		ID:           string(s.User.ID),
		Name:         s.User.Name,
		IsAudioMuted: s.IsAudioMuted,
		IsVideoMuted: s.IsVideoMuted,
	}
}

// liveRoom owns its session set behind its own lock, so traffic in one
// room never contends with another.
type liveRoom struct {
	id       domain.RoomID
	mu       sync.RWMutex
	sessions map[ConnID]*Session
}

// PublishResult reports delivery stats for one broadcast.
type PublishResult struct {
	SentTo  int
	Dropped int
}

// Hub maps connections to rooms and rooms to live sessions. The top-level
// maps are guarded by h.mu; per-room state by the room's own lock.
type Hub struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*liveRoom
	conns map[ConnID]*liveRoom
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[domain.RoomID]*liveRoom),
		conns: make(map[ConnID]*liveRoom),
	}
}

func (h *Hub) getOrCreateRoom(id domain.RoomID) *liveRoom {
	h.mu.RLock()
	room, ok := h.rooms[id]
	h.mu.RUnlock()
	if ok {
		return room
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok = h.rooms[id]; ok {
		return room
	}
	room = &liveRoom{id: id, sessions: make(map[ConnID]*Session)}
	h.rooms[id] = room
	return room
}

func (h *Hub) roomOf(cid ConnID) (*liveRoom, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.conns[cid]
	return room, ok
}

// Join registers the connection in roomID with both toggles unmuted,
// announces user-joined to the other members, and returns a snapshot of
// the members that were already there. A connection already live in
// another room is moved: the old room sees user-left first. Re-joining
// the same room only refreshes the snapshot.
func (h *Hub) Join(cid ConnID, roomID domain.RoomID, user domain.User, conn SignalConnection) []ParticipantSnapshot {
	if prev, ok := h.roomOf(cid); ok && prev.id != roomID {
		h.Leave(cid)
	}

	room := h.getOrCreateRoom(roomID)

	room.mu.Lock()
	if _, already := room.sessions[cid]; already {
		members := room.membersExceptLocked(cid)
		room.mu.Unlock()
		return members
	}
	sess := &Session{ConnID: cid, RoomID: roomID, User: user, conn: conn}
	room.sessions[cid] = sess
	members := room.membersExceptLocked(cid)
	room.mu.Unlock()

	h.mu.Lock()
	h.conns[cid] = room
	h.mu.Unlock()

	log.Info().Str("module", "hub").Str("conn", string(cid)).Str("room", string(roomID)).Str("user", string(user.ID)).Msg("session joined")

	h.broadcast(room, cid, UserJoinedEvent{Type: TypeUserJoined, Participant: sess.snapshot()})
	return members
}

// Leave destroys the connection's session and announces user-left. Safe
// to call for a connection that never joined.
func (h *Hub) Leave(cid ConnID) {
	room, ok := h.roomOf(cid)
	if !ok {
		return
	}

	room.mu.Lock()
	sess, ok := room.sessions[cid]
	if !ok {
		room.mu.Unlock()
		return
	}
	delete(room.sessions, cid)
	room.mu.Unlock()

	// The empty liveRoom entry stays in the map: a concurrent Join may
	// already hold its pointer, and dropping it would strand that session.
	h.mu.Lock()
	delete(h.conns, cid)
	h.mu.Unlock()

	log.Info().Str("module", "hub").Str("conn", string(cid)).Str("room", string(room.id)).Msg("session left")

	h.broadcast(room, cid, UserLeftEvent{Type: TypeUserLeft, UserID: string(sess.User.ID)})
}

// Disconnect is the transport-level exit: same teardown as Leave. The
// hub cannot tell a closed tab from a lost network, so peers see
// user-left either way.
func (h *Hub) Disconnect(cid ConnID) {
	h.Leave(cid)
}

// ToggleAudio updates the session's audio flag and fans the change out.
func (h *Hub) ToggleAudio(cid ConnID, muted bool) error {
	room, ok := h.roomOf(cid)
	if !ok {
		return ErrNotMember
	}

	room.mu.Lock()
	sess, ok := room.sessions[cid]
	if !ok {
		room.mu.Unlock()
		return ErrNotMember
	}
	sess.IsAudioMuted = muted
	userID := string(sess.User.ID)
	room.mu.Unlock()

	h.broadcast(room, cid, AudioToggleEvent{Type: TypeAudioToggle, UserID: userID, IsAudioMuted: muted})
	return nil
}

// ToggleVideo updates the session's video flag and fans the change out.
func (h *Hub) ToggleVideo(cid ConnID, muted bool) error {
	room, ok := h.roomOf(cid)
	if !ok {
		return ErrNotMember
	}

	room.mu.Lock()
	sess, ok := room.sessions[cid]
	if !ok {
		room.mu.Unlock()
		return ErrNotMember
	}
	sess.IsVideoMuted = muted
	userID := string(sess.User.ID)
	room.mu.Unlock()

	h.broadcast(room, cid, VideoToggleEvent{Type: TypeVideoToggle, UserID: userID, IsVideoMuted: muted})
	return nil
}

// Chat relays the message payload verbatim to the other members. The hub
// keeps no copy.
func (h *Hub) Chat(cid ConnID, message json.RawMessage) error {
	room, ok := h.roomOf(cid)
	if !ok {
		return ErrNotMember
	}

	room.mu.RLock()
	_, ok = room.sessions[cid]
	room.mu.RUnlock()
	if !ok {
		return ErrNotMember
	}

	h.broadcast(room, cid, ReceiveMessageEvent{Type: TypeReceiveMessage, Message: message})
	return nil
}

// MembersOf reports the live sessions in a room; empty for unknown rooms.
func (h *Hub) MembersOf(roomID domain.RoomID) []ParticipantSnapshot {
	h.mu.RLock()
	room, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	room.mu.RLock()
	defer room.mu.RUnlock()
	return room.membersExceptLocked("")
}

func (r *liveRoom) membersExceptLocked(skip ConnID) []ParticipantSnapshot {
	out := make([]ParticipantSnapshot, 0, len(r.sessions))
	for cid, s := range r.sessions {
		if cid == skip {
			continue
		}
		out = append(out, s.snapshot())
	}
	return out
}

// broadcast marshals once and fans out to every member except the sender.
// Delivery is fire-and-forget: a member whose send buffer is full misses
// this frame and is counted as dropped.
func (h *Hub) broadcast(room *liveRoom, from ConnID, event any) PublishResult {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("module", "hub").Msg("broadcast marshal")
		return PublishResult{}
	}

	room.mu.RLock()
	defer room.mu.RUnlock()

	res := PublishResult{}
	for cid, s := range room.sessions {
		if cid == from {
			continue
		}
		if err := s.conn.TrySend(Frame(data)); err != nil {
			log.Warn().Str("module", "hub").Str("conn", string(cid)).Str("room", string(room.id)).Msg("dropping frame for slow consumer")
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "hub").Str("from", string(from)).Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Msg("broadcast result")
	return res
}
