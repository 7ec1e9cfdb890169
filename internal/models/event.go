package models

import "time"

type RoomEventType string

const (
	EventCheckedIn      RoomEventType = "checked_in"
	EventCheckedOut     RoomEventType = "checked_out"
	EventGuestUpdated   RoomEventType = "guest_updated"
	EventHistoryDeleted RoomEventType = "history_deleted"
)

// RoomEvent is broadcast after a room changes.
type RoomEvent struct {
	Type       RoomEventType `json:"type"`
	RoomID     string        `json:"roomId"`
	RoomNumber int           `json:"roomNumber"`
	Status     RoomStatus    `json:"status"`
	At         time.Time     `json:"at"`
}
