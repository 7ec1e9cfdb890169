package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/hoteldesk/internal/metrics"
	"github.com/hoteldesk/hoteldesk/internal/models"
	"github.com/hoteldesk/hoteldesk/internal/repositories"
)

const maxSaveAttempts = 3

var ErrRoomsInitialized = fmt.Errorf("%w: rooms already initialized", ErrInvalidState)

// RoomNotifier receives an event after every successful room change.
type RoomNotifier interface {
	RoomChanged(ctx context.Context, event models.RoomEvent) error
}

type RoomService interface {
	ListRooms(ctx context.Context) ([]*models.Room, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	CheckIn(ctx context.Context, id string, req CheckInRequest) (*models.Room, error)
	CheckOut(ctx context.Context, id string) (*models.Room, error)
	UpdateGuest(ctx context.Context, id string, update GuestUpdate) (*models.Room, error)
	IsAvailable(ctx context.Context, id string) (bool, error)
	ListGuestRecords(ctx context.Context, filter GuestFilter) ([]models.GuestRecord, error)
	GuestSummary(ctx context.Context, filter GuestFilter) (*models.GuestSummary, error)
	DeleteHistoryEntry(ctx context.Context, roomNumber int, historyID string) error
	InitRooms(ctx context.Context, count int, reset bool) ([]*models.Room, error)
}

type roomService struct {
	roomRepo repositories.RoomRepository
	notifier RoomNotifier
	now      func() time.Time
}

// NewRoomService builds a RoomService. notifier may be nil.
func NewRoomService(roomRepo repositories.RoomRepository, notifier RoomNotifier) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *roomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	rooms, err := s.roomRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRoomNotFound
	}
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return room, nil
}

func (s *roomService) CheckIn(ctx context.Context, id string, req CheckInRequest) (*models.Room, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	room, err := s.mutate(ctx, id, func(room *models.Room) error {
		return checkIn(room, req, s.now())
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx, models.EventCheckedIn, room)
	return room, nil
}

func (s *roomService) CheckOut(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.mutate(ctx, id, func(room *models.Room) error {
		_, err := checkOut(room, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx, models.EventCheckedOut, room)
	return room, nil
}

func (s *roomService) UpdateGuest(ctx context.Context, id string, update GuestUpdate) (*models.Room, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}
	room, err := s.mutate(ctx, id, func(room *models.Room) error {
		return updateGuest(room, update)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx, models.EventGuestUpdated, room)
	return room, nil
}

func (s *roomService) IsAvailable(ctx context.Context, id string) (bool, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return false, err
	}
	return room.IsAvailable(), nil
}

func (s *roomService) DeleteHistoryEntry(ctx context.Context, roomNumber int, historyID string) error {
	if _, err := uuid.Parse(historyID); err != nil {
		if _, err := s.roomRepo.FindByNumber(ctx, roomNumber); err != nil {
			return storeErr(err)
		}
		return ErrHistoryEntryNotFound
	}

	removed, err := s.roomRepo.RemoveHistoryEntry(ctx, roomNumber, historyID)
	if err != nil {
		return storeErr(err)
	}
	if !removed {
		return ErrHistoryEntryNotFound
	}

	room, err := s.roomRepo.FindByNumber(ctx, roomNumber)
	if err != nil {
		return storeErr(err)
	}
	if room.HistoryEntry(historyID) >= 0 {
		return ErrHistoryEntryNotFound
	}
	s.changed(ctx, models.EventHistoryDeleted, room)
	return nil
}

// InitRooms creates rooms numbered 1..count. Without reset it refuses to touch
// a store that already holds rooms.
func (s *roomService) InitRooms(ctx context.Context, count int, reset bool) ([]*models.Room, error) {
	if count <= 0 {
		return nil, &ValidationError{Field: "count", Message: "must be positive"}
	}
	rooms := make([]*models.Room, 0, count)
	for i := 1; i <= count; i++ {
		rooms = append(rooms, &models.Room{
			Number:  i,
			Status:  models.StatusAvailable,
			History: []models.Stay{},
		})
	}
	if err := s.roomRepo.Seed(ctx, rooms, reset); err != nil {
		if errors.Is(err, repositories.ErrAlreadySeeded) {
			return nil, ErrRoomsInitialized
		}
		return nil, err
	}
	log.Printf("Initialized %d rooms", count)
	return rooms, nil
}

// mutate loads a room, applies fn and saves it, retrying from a fresh read when
// another writer got there first. fn is re-run on each attempt.
func (s *roomService) mutate(ctx context.Context, id string, fn func(room *models.Room) error) (*models.Room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRoomNotFound
	}

	var lastErr error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		room, err := s.roomRepo.GetByID(ctx, id)
		if err != nil {
			return nil, storeErr(err)
		}
		if err := fn(room); err != nil {
			return nil, err
		}

		err = s.roomRepo.Save(ctx, room)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return nil, storeErr(err)
		}
		metrics.SaveConflictsTotal.Inc()
		log.Printf("Room %s changed during update (attempt %d/%d)", id, attempt, maxSaveAttempts)
		lastErr = err
	}
	return nil, fmt.Errorf("failed to update room %s: %w", id, lastErr)
}

func (s *roomService) changed(ctx context.Context, kind models.RoomEventType, room *models.Room) {
	metrics.RoomTransitionsTotal.WithLabelValues(string(kind)).Inc()
	if s.notifier == nil {
		return
	}
	event := models.RoomEvent{
		Type:       kind,
		RoomID:     room.ID,
		RoomNumber: room.Number,
		Status:     room.Status,
		At:         s.now(),
	}
	if err := s.notifier.RoomChanged(ctx, event); err != nil {
		log.Printf("Failed to publish %s event for room %d: %v", kind, room.Number, err)
	}
}

func storeErr(err error) error {
	if errors.Is(err, repositories.ErrRoomNotFound) {
		return ErrRoomNotFound
	}
	return err
}
