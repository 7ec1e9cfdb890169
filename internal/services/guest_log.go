package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hoteldesk/hoteldesk/internal/models"
)

// GuestFilter narrows the guest log. Zero values match everything.
type GuestFilter struct {
	Room int
	Name string
	From *time.Time
	To   *time.Time
}

func (f GuestFilter) match(rec models.GuestRecord) bool {
	if f.Room != 0 && rec.RoomNumber != f.Room {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.From != nil || f.To != nil {
		if rec.CheckIn == nil {
			return false
		}
		if f.From != nil && rec.CheckIn.Before(*f.From) {
			return false
		}
		if f.To != nil && rec.CheckIn.After(*f.To) {
			return false
		}
	}
	return true
}

// guestRecords flattens a room into one record per past stay plus one for the
// live occupant, if any.
func guestRecords(room *models.Room) []models.GuestRecord {
	records := make([]models.GuestRecord, 0, len(room.History)+1)
	for _, h := range room.History {
		checkOut := h.CheckOut
		records = append(records, models.GuestRecord{
			HistoryID:  h.ID,
			RoomNumber: room.Number,
			Name:       h.Name,
			Phone:      h.Phone,
			Email:      h.Email,
			Amount:     h.Amount,
			Paid:       h.Paid,
			CheckIn:    h.CheckIn,
			CheckOut:   &checkOut,
			Status:     models.RecordCheckedOut,
		})
	}
	if room.Status == models.StatusOccupied && room.HasGuest() {
		g := room.Guest
		records = append(records, models.GuestRecord{
			RoomNumber: room.Number,
			Name:       g.Name,
			Phone:      g.Phone,
			Email:      g.Email,
			Amount:     g.Amount,
			Paid:       g.Paid,
			CheckIn:    room.CheckIn,
			CheckOut:   room.CheckOut,
			Status:     models.RecordOccupied,
		})
	}
	return records
}

// ListGuestRecords returns the guest log sorted by room number, then check-in time.
func (s *roomService) ListGuestRecords(ctx context.Context, filter GuestFilter) ([]models.GuestRecord, error) {
	rooms, err := s.roomRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	records := []models.GuestRecord{}
	for _, room := range rooms {
		for _, rec := range guestRecords(room) {
			if filter.match(rec) {
				records = append(records, rec)
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.RoomNumber != b.RoomNumber {
			return a.RoomNumber < b.RoomNumber
		}
		if a.CheckIn == nil || b.CheckIn == nil {
			return a.CheckIn == nil && b.CheckIn != nil
		}
		return a.CheckIn.Before(*b.CheckIn)
	})
	return records, nil
}

func (s *roomService) GuestSummary(ctx context.Context, filter GuestFilter) (*models.GuestSummary, error) {
	records, err := s.ListGuestRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &models.GuestSummary{Count: len(records)}
	for _, rec := range records {
		summary.TotalAmount += rec.Amount
		if rec.Paid {
			summary.PaidAmount += rec.Amount
			summary.PaidCount++
		} else {
			summary.UnpaidAmount += rec.Amount
			summary.UnpaidCount++
		}
		if rec.Status == models.RecordOccupied {
			summary.Occupied++
		}
	}
	return summary, nil
}
