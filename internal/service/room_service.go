// Package service implements the membership operations on top of the
// repository: create, fetch, join, leave with host failover, delete.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/domain"
	"github.com/Niranjan-NN/stream360/internal/repository"
)

// ResolvedRoom is the read model for GET: host and participants carry
// display attributes, joined at read time from the user records.
type ResolvedRoom struct {
	RoomID       domain.RoomID `json:"roomId"`
	Host         domain.User   `json:"host"`
	Participants []domain.User `json:"participants"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

// LeaveResult reports whether leaving emptied (and thus deleted) the room.
type LeaveResult struct {
	Deleted bool
	Room    *domain.Room
}

type RoomService struct {
	repo  repository.Repository
	locks *roomLocks
}

func NewRoomService(repo repository.Repository) *RoomService {
	return &RoomService{repo: repo, locks: newRoomLocks()}
}

// CreateRoom persists a room owned by hostID with hostID as its only
// participant. The repository refuses duplicate ids.
func (s *RoomService) CreateRoom(ctx context.Context, roomID domain.RoomID, hostID domain.UserID) (*domain.Room, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room := domain.NewRoom(roomID, hostID)
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room %s: %w", roomID, err)
	}
	log.Info().Str("module", "service.room").Str("room", string(roomID)).Str("host", string(hostID)).Msg("room created")
	return room, nil
}

// GetRoom returns the room with identities resolved to display attributes.
// Users the directory has never seen degrade to id-only entries rather
// than failing the read.
func (s *RoomService) GetRoom(ctx context.Context, roomID domain.RoomID) (*ResolvedRoom, error) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}

	resolved := &ResolvedRoom{
		RoomID:       room.RoomID,
		Host:         s.resolveUser(ctx, room.Host),
		Participants: make([]domain.User, 0, len(room.Participants)),
		CreatedAt:    room.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt:    room.UpdatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
	for _, id := range room.Participants {
		resolved.Participants = append(resolved.Participants, s.resolveUser(ctx, id))
	}
	return resolved, nil
}

func (s *RoomService) resolveUser(ctx context.Context, id domain.UserID) domain.User {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return domain.User{ID: id}
	}
	return *user
}

// JoinRoom appends userID to the participant set. Joining a room you are
// already in returns the current state unchanged.
func (s *RoomService) JoinRoom(ctx context.Context, roomID domain.RoomID, userID domain.UserID) (*domain.Room, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("join room %s: %w", roomID, err)
	}
	if !room.AddParticipant(userID) {
		return room, nil
	}
	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("join room %s: %w", roomID, err)
	}
	log.Info().Str("module", "service.room").Str("room", string(roomID)).Str("user", string(userID)).Msg("participant joined")
	return room, nil
}

// LeaveRoom removes userID. An emptied room is deleted outright; a
// departing host hands the room to the first remaining participant (the
// ordering is implementation-defined, not meaningful).
func (s *RoomService) LeaveRoom(ctx context.Context, roomID domain.RoomID, userID domain.UserID) (*LeaveResult, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("leave room %s: %w", roomID, err)
	}

	room.RemoveParticipant(userID)

	if room.Empty() {
		if err := s.repo.DeleteRoom(ctx, roomID); err != nil {
			return nil, fmt.Errorf("leave room %s: %w", roomID, err)
		}
		log.Info().Str("module", "service.room").Str("room", string(roomID)).Msg("room emptied, deleted")
		return &LeaveResult{Deleted: true}, nil
	}

	if room.Host == userID {
		room.Host = room.Participants[0]
		log.Info().Str("module", "service.room").Str("room", string(roomID)).Str("host", string(room.Host)).Msg("host reassigned")
	}

	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("leave room %s: %w", roomID, err)
	}
	log.Info().Str("module", "service.room").Str("room", string(roomID)).Str("user", string(userID)).Msg("participant left")
	return &LeaveResult{Room: room}, nil
}

// DeleteRoom removes the room if requesterID is its current host.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID domain.RoomID, requesterID domain.UserID) error {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	if room.Host != requesterID {
		return fmt.Errorf("delete room %s: %w", roomID, domain.ErrNotHost)
	}
	if err := s.repo.DeleteRoom(ctx, roomID); err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	log.Info().Str("module", "service.room").Str("room", string(roomID)).Msg("room deleted by host")
	return nil
}

// UpsertUser records display attributes from a verified token so reads
// can resolve ids to names.
func (s *RoomService) UpsertUser(ctx context.Context, user *domain.User) error {
	return s.repo.SaveUser(ctx, user)
}
