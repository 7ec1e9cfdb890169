package services

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/hoteldesk/internal/models"
)

type CheckInRequest struct {
	Name    string
	Phone   string
	Email   string
	Amount  float64
	Paid    bool
	CheckIn *time.Time
}

// GuestUpdate carries a partial billing update; nil fields are left unchanged.
type GuestUpdate struct {
	Amount *float64
	Paid   *bool
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: "amount", Message: "must be a finite number"}
	}
	if amount < 0 {
		return &ValidationError{Field: "amount", Message: "must not be negative"}
	}
	return nil
}

func (req CheckInRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	return validateAmount(req.Amount)
}

func (u GuestUpdate) validate() error {
	if u.Amount != nil {
		return validateAmount(*u.Amount)
	}
	return nil
}

// checkIn moves an available room to occupied.
func checkIn(room *models.Room, req CheckInRequest, now time.Time) error {
	if room.Status == models.StatusOccupied {
		return ErrRoomOccupied
	}

	at := now
	if req.CheckIn != nil && !req.CheckIn.IsZero() {
		at = *req.CheckIn
	}
	room.Guest = &models.Guest{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Amount: req.Amount,
		Paid:   req.Paid,
	}
	room.CheckIn = &at
	room.CheckOut = nil
	room.Status = models.StatusOccupied
	return nil
}

// checkOut moves an occupied room to available, archiving a named guest's stay.
// It returns the archived stay, or nil when there was no guest to archive.
func checkOut(room *models.Room, now time.Time) (*models.Stay, error) {
	if room.Status == models.StatusAvailable {
		return nil, ErrRoomAvailable
	}

	var stay *models.Stay
	if room.HasGuest() {
		g := room.Guest
		room.History = append(room.History, models.Stay{
			ID:       uuid.New().String(),
			Name:     g.Name,
			Phone:    g.Phone,
			Email:    g.Email,
			Amount:   g.Amount,
			Paid:     g.Paid,
			CheckIn:  room.CheckIn,
			CheckOut: now,
		})
		stay = &room.History[len(room.History)-1]
	}
	room.Guest = nil
	room.CheckIn = nil
	room.CheckOut = nil
	room.Status = models.StatusAvailable
	return stay, nil
}

func updateGuest(room *models.Room, u GuestUpdate) error {
	if room.Status != models.StatusOccupied || !room.HasGuest() {
		return ErrNoGuest
	}
	if u.Amount != nil {
		room.Guest.Amount = *u.Amount
	}
	if u.Paid != nil {
		room.Guest.Paid = *u.Paid
	}
	return nil
}
