package models

import (
	"time"
)

type RoomStatus string

const (
	StatusAvailable RoomStatus = "available"
	StatusOccupied  RoomStatus = "occupied"
)

// Room is one physical room. Guest, CheckIn and CheckOut describe the current stay
// and are nil while the room is available.
type Room struct {
	ID       string     `json:"id"`
	Number   int        `json:"number"`
	Status   RoomStatus `json:"status"`
	Guest    *Guest     `json:"guest,omitempty"`
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`
	History  []Stay     `json:"history"`

	// Version is the persisted revision the room was read at.
	Version int64 `json:"-"`
}

func (r *Room) IsAvailable() bool {
	return r.Status == StatusAvailable
}

// HasGuest reports whether the room holds a named current guest.
func (r *Room) HasGuest() bool {
	return r.Guest != nil && r.Guest.Name != ""
}

// HistoryEntry returns the index of the stay with the given id, or -1.
func (r *Room) HistoryEntry(id string) int {
	for i := range r.History {
		if r.History[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (r *Room) Clone() *Room {
	c := *r
	if r.Guest != nil {
		g := *r.Guest
		c.Guest = &g
	}
	c.CheckIn = cloneTime(r.CheckIn)
	c.CheckOut = cloneTime(r.CheckOut)
	c.History = make([]Stay, len(r.History))
	for i, s := range r.History {
		s.CheckIn = cloneTime(s.CheckIn)
		c.History[i] = s
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
