package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/hoteldesk/hoteldesk/internal/models"
)

type memoryRoomRepo struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room
}

// NewMemoryRoomRepository returns a RoomRepository kept in process memory.
// It applies the same version checks as the database store.
func NewMemoryRoomRepository() RoomRepository {
	return &memoryRoomRepo{rooms: make(map[string]*models.Room)}
}

func (r *memoryRoomRepo) ListAll(ctx context.Context) ([]*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room.Clone())
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms, nil
}

func (r *memoryRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (r *memoryRoomRepo) FindByNumber(ctx context.Context, number int) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room := r.byNumber(number)
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (r *memoryRoomRepo) byNumber(number int) *models.Room {
	for _, room := range r.rooms {
		if room.Number == number {
			return room
		}
	}
	return nil
}

func (r *memoryRoomRepo) Save(ctx context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rooms[room.ID]
	if !ok {
		return ErrRoomNotFound
	}
	if current.Version != room.Version {
		return ErrVersionConflict
	}

	next := room.Clone()
	next.Version++
	r.rooms[room.ID] = next
	room.Version = next.Version
	return nil
}

func (r *memoryRoomRepo) RemoveHistoryEntry(ctx context.Context, number int, historyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.byNumber(number)
	if room == nil {
		return false, ErrRoomNotFound
	}
	i := room.HistoryEntry(historyID)
	if i < 0 {
		return false, nil
	}
	room.History = append(room.History[:i:i], room.History[i+1:]...)
	room.Version++
	return true, nil
}

func (r *memoryRoomRepo) Seed(ctx context.Context, rooms []*models.Room, reset bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reset {
		r.rooms = make(map[string]*models.Room)
	} else if len(r.rooms) > 0 {
		return ErrAlreadySeeded
	}
	for _, room := range rooms {
		if room.ID == "" {
			room.ID = uuid.New().String()
		}
		r.rooms[room.ID] = room.Clone()
	}
	return nil
}

func (r *memoryRoomRepo) Ping(ctx context.Context) error {
	return nil
}
