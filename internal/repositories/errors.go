package repositories

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrVersionConflict = errors.New("room was modified concurrently")
	ErrAlreadySeeded   = errors.New("rooms already initialized")
)
