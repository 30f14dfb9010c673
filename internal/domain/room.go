package domain

import "time"

type RoomID string

// Room is the durable record of a call session: who owns it and who has
// joined through the REST surface. Live socket presence is tracked
// separately by the hub and never written back into Participants.
type Room struct {
	RoomID       RoomID    `json:"roomId"`
	Host         UserID    `json:"host"`
	Participants []UserID  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewRoom(id RoomID, host UserID) *Room {
	now := time.Now().UTC()
	return &Room{
		RoomID:       id,
		Host:         host,
		Participants: []UserID{host},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (r *Room) HasParticipant(id UserID) bool {
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// AddParticipant appends id once; duplicates are a no-op so join stays
// idempotent.
func (r *Room) AddParticipant(id UserID) bool {
	if r.HasParticipant(id) {
		return false
	}
	r.Participants = append(r.Participants, id)
	return true
}

// RemoveParticipant drops id, keeping the remaining insertion order so
// host failover has a deterministic "first remaining" to pick.
func (r *Room) RemoveParticipant(id UserID) bool {
	for i, p := range r.Participants {
		if p == id {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) Empty() bool { return len(r.Participants) == 0 }
