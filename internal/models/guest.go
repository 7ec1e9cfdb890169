package models

import (
	"time"
)

// Guest is the billing record of the current occupant.
type Guest struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Email  string  `json:"email"`
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
}

// Stay is one completed stay kept in a room's history.
type Stay struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Email    string     `json:"email"`
	Amount   float64    `json:"amount"`
	Paid     bool       `json:"paid"`
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut time.Time  `json:"checkOut"`
}

const (
	RecordCheckedOut = "checked out"
	RecordOccupied   = "occupied"
)

// GuestRecord is a flattened guest log row, either a past stay or the live occupant.
type GuestRecord struct {
	HistoryID  string     `json:"historyId,omitempty"`
	RoomNumber int        `json:"roomNumber"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Amount     float64    `json:"amount"`
	Paid       bool       `json:"paid"`
	CheckIn    *time.Time `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
	Status     string     `json:"status"`
}

// GuestSummary aggregates a set of guest records.
type GuestSummary struct {
	Count        int     `json:"count"`
	Occupied     int     `json:"occupied"`
	TotalAmount  float64 `json:"totalAmount"`
	PaidAmount   float64 `json:"paidAmount"`
	UnpaidAmount float64 `json:"unpaidAmount"`
	PaidCount    int     `json:"paidCount"`
	UnpaidCount  int     `json:"unpaidCount"`
}
