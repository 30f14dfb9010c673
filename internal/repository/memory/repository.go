// Package memory provides an in-memory implementation of the repository
// interface. State is lost on restart; suitable for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Niranjan-NN/stream360/internal/domain"
)

// Repository implements the repository interface with in-memory storage.
type Repository struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
	users map[domain.UserID]*domain.User
}

func NewRepository() *Repository {
	return &Repository{
		rooms: make(map[domain.RoomID]*domain.Room),
		users: make(map[domain.UserID]*domain.User),
	}
}

// cloneRoom keeps callers from mutating stored state through the returned
// pointer.
func cloneRoom(r *domain.Room) *domain.Room {
	out := *r
	out.Participants = append([]domain.UserID(nil), r.Participants...)
	return &out
}

func (r *Repository) CreateRoom(ctx context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.RoomID]; exists {
		return domain.ErrRoomExists
	}
	r.rooms[room.RoomID] = cloneRoom(room)
	return nil
}

func (r *Repository) GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (r *Repository) UpdateRoom(ctx context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.RoomID]; !ok {
		return domain.ErrRoomNotFound
	}
	stored := cloneRoom(room)
	stored.UpdatedAt = time.Now().UTC()
	r.rooms[room.RoomID] = stored
	return nil
}

func (r *Repository) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(r.rooms, id)
	return nil
}

func (r *Repository) SaveUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *user
	return &u, nil
}
