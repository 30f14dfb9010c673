package domain

import "errors"

// Error taxonomy shared by the service and the adapters. Adapters map
// these to transport status codes; the service only wraps them.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
	ErrNotHost      = errors.New("not authorized")
	ErrUserNotFound = errors.New("user not found")
	ErrNotMember    = errors.New("not a room member")
)
