// Package repository defines the storage port for rooms and users.
package repository

import (
	"context"

	"github.com/Niranjan-NN/stream360/internal/domain"
)

// Repository is the durable document store behind the membership service.
// Implementations return domain.ErrRoomNotFound / domain.ErrUserNotFound
// for absent records and domain.ErrRoomExists on id collision, so callers
// never depend on driver errors.
type Repository interface {
	// Room operations — each is a single-document transaction.
	CreateRoom(ctx context.Context, room *domain.Room) error
	GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error)
	UpdateRoom(ctx context.Context, room *domain.Room) error
	DeleteRoom(ctx context.Context, id domain.RoomID) error

	// User operations — display attributes only, upserted from verified
	// token claims for read-time resolution.
	SaveUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id domain.UserID) (*domain.User, error)
}
