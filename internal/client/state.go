// Package client holds the per-client room view: a pure reducer that
// folds hub events into a displayable state, and a dispatcher that pairs
// local actions with their outbound messages. The reducer does no I/O,
// so it is testable without any transport.
package client

import (
	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/hub"
)

// LocalParticipant is the local user's overlay. It is deliberately a
// separate field, never an element of Remotes: the presentation layer
// decides where the local tile goes, the state never conflates the two.
type LocalParticipant struct {
	User         domain.User
	IsAudioMuted bool
	IsVideoMuted bool
}

// RemoteParticipant mirrors one peer's presence snapshot.
type RemoteParticipant struct {
	ID           string
	Name         string
	IsAudioMuted bool
	IsVideoMuted bool
}

// State is the materialized room view. Zero value = not in a room.
type State struct {
	RoomID   domain.RoomID
	Local    *LocalParticipant
	Remotes  []RemoteParticipant
	Messages []domain.Message
}

func (s State) InRoom() bool { return s.RoomID != "" && s.Local != nil }

// Event is one reducer input: either a hub broadcast or a local action.
type Event interface{ isEvent() }

// Remote events (decoded hub broadcasts).
type (
	RoomStateReceived struct {
		RoomID  domain.RoomID
		Members []hub.ParticipantSnapshot
	}
	UserJoined      struct{ Participant hub.ParticipantSnapshot }
	UserLeft        struct{ UserID string }
	AudioToggled    struct {
		UserID string
		Muted  bool
	}
	VideoToggled struct {
		UserID string
		Muted  bool
	}
	MessageReceived struct{ Message domain.Message }
)

// Local actions.
type (
	JoinedRoom struct {
		RoomID domain.RoomID
		User   domain.User
	}
	LeftRoom          struct{}
	LocalAudioToggled struct{ Muted bool }
	LocalVideoToggled struct{ Muted bool }
	MessageSent       struct{ Message domain.Message }
)

func (RoomStateReceived) isEvent() {}
func (UserJoined) isEvent()        {}
func (UserLeft) isEvent()          {}
func (AudioToggled) isEvent()      {}
func (VideoToggled) isEvent()      {}
func (MessageReceived) isEvent()   {}
func (JoinedRoom) isEvent()        {}
func (LeftRoom) isEvent()          {}
func (LocalAudioToggled) isEvent() {}
func (LocalVideoToggled) isEvent() {}
func (MessageSent) isEvent()       {}

// Reduce is deterministic: same state and event always produce the same
// next state. The input state is never mutated.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case JoinedRoom:
		return State{
			RoomID: e.RoomID,
			Local:  &LocalParticipant{User: e.User},
		}

	case LeftRoom:
		// Message history is not retained across room transitions.
		return State{}

	case RoomStateReceived:
		if !s.InRoom() || s.RoomID != e.RoomID {
			return s
		}
		next := clone(s)
		next.Remotes = next.Remotes[:0]
		for _, m := range e.Members {
			if m.ID == string(s.Local.User.ID) {
				continue
			}
			next.Remotes = append(next.Remotes, RemoteParticipant{
				ID:           m.ID,
				Name:         m.Name,
				IsAudioMuted: m.IsAudioMuted,
				IsVideoMuted: m.IsVideoMuted,
			})
		}
		return next

	case UserJoined:
		if !s.InRoom() || e.Participant.ID == string(s.Local.User.ID) {
			return s
		}
		for _, p := range s.Remotes {
			if p.ID == e.Participant.ID {
				return s
			}
		}
		next := clone(s)
		next.Remotes = append(next.Remotes, RemoteParticipant{
			ID:           e.Participant.ID,
			Name:         e.Participant.Name,
			IsAudioMuted: e.Participant.IsAudioMuted,
			IsVideoMuted: e.Participant.IsVideoMuted,
		})
		return next

	case UserLeft:
		if !s.InRoom() {
			return s
		}
		next := clone(s)
		next.Remotes = next.Remotes[:0]
		for _, p := range s.Remotes {
			if p.ID != e.UserID {
				next.Remotes = append(next.Remotes, p)
			}
		}
		return next

	case AudioToggled:
		return updateRemote(s, e.UserID, func(p *RemoteParticipant) { p.IsAudioMuted = e.Muted })

	case VideoToggled:
		return updateRemote(s, e.UserID, func(p *RemoteParticipant) { p.IsVideoMuted = e.Muted })

	case MessageReceived:
		if !s.InRoom() {
			return s
		}
		next := clone(s)
		next.Messages = append(next.Messages, e.Message)
		return next

	case MessageSent:
		if !s.InRoom() {
			return s
		}
		next := clone(s)
		next.Messages = append(next.Messages, e.Message)
		return next

	case LocalAudioToggled:
		if !s.InRoom() {
			return s
		}
		next := clone(s)
		next.Local.IsAudioMuted = e.Muted
		return next

	case LocalVideoToggled:
		if !s.InRoom() {
			return s
		}
		next := clone(s)
		next.Local.IsVideoMuted = e.Muted
		return next
	}
	return s
}

// updateRemote applies fn to the matching participant; unknown ids are
// ignored (a toggle can race a leave).
func updateRemote(s State, userID string, fn func(*RemoteParticipant)) State {
	if !s.InRoom() {
		return s
	}
	next := clone(s)
	for i := range next.Remotes {
		if next.Remotes[i].ID == userID {
			fn(&next.Remotes[i])
			return next
		}
	}
	return s
}

func clone(s State) State {
	out := s
	if s.Local != nil {
		local := *s.Local
		out.Local = &local
	}
	out.Remotes = append([]RemoteParticipant(nil), s.Remotes...)
	out.Messages = append([]domain.Message(nil), s.Messages...)
	return out
}
