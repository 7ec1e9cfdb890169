package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/hoteldesk/internal/models"
	"github.com/hoteldesk/hoteldesk/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) RoomChanged(ctx context.Context, event models.RoomEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newService(t *testing.T) (RoomService, []*models.Room) {
	svc := NewRoomService(repositories.NewMemoryRoomRepository(), nil)
	rooms, err := svc.InitRooms(context.Background(), 9, false)
	require.NoError(t, err)
	return svc, rooms
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCheckInCheckOutScenario(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()
	id := rooms[0].ID

	room, err := svc.CheckIn(ctx, id, CheckInRequest{Name: "Asha", Amount: 1000, CheckIn: ts("2024-01-01T10:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOccupied, room.Status)
	require.NotNil(t, room.Guest)
	assert.Equal(t, "Asha", room.Guest.Name)
	assert.False(t, room.Guest.Paid)

	before := time.Now()
	room, err = svc.CheckOut(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, room.Status)
	assert.Nil(t, room.Guest)
	assert.Nil(t, room.CheckIn)
	assert.Nil(t, room.CheckOut)
	require.Len(t, room.History, 1)
	assert.Equal(t, "Asha", room.History[0].Name)
	assert.Equal(t, 1000.0, room.History[0].Amount)
	assert.True(t, ts("2024-01-01T10:00:00Z").Equal(*room.History[0].CheckIn))
	assert.WithinDuration(t, before, room.History[0].CheckOut, 5*time.Second)

	records, err := svc.ListGuestRecords(ctx, GuestFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.RecordCheckedOut, records[0].Status)
	assert.Equal(t, 1, records[0].RoomNumber)
	assert.Equal(t, room.History[0].ID, records[0].HistoryID)
}

func TestCheckInOccupiedRoomFails(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()
	id := rooms[2].ID

	first, err := svc.CheckIn(ctx, id, CheckInRequest{Name: "Ravi", Amount: 800, CheckIn: ts("2024-02-01T12:00:00Z")})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, id, CheckInRequest{Name: "Other", Amount: 10})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, ErrRoomOccupied)

	room, err := svc.GetRoom(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", room.Guest.Name)
	assert.True(t, first.CheckIn.Equal(*room.CheckIn))
}

func TestCheckOutAvailableRoomFails(t *testing.T) {
	svc, rooms := newService(t)

	_, err := svc.CheckOut(context.Background(), rooms[0].ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, ErrRoomAvailable)

	room, err := svc.GetRoom(context.Background(), rooms[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, room.Status)
	assert.Empty(t, room.History)
}

func TestCheckOutWithoutGuestAddsNoHistory(t *testing.T) {
	repo := repositories.NewMemoryRoomRepository()
	svc := NewRoomService(repo, nil)
	ctx := context.Background()
	rooms, err := svc.InitRooms(ctx, 1, false)
	require.NoError(t, err)

	room, err := repo.GetByID(ctx, rooms[0].ID)
	require.NoError(t, err)
	room.Status = models.StatusOccupied
	require.NoError(t, repo.Save(ctx, room))

	room, err = svc.CheckOut(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, room.Status)
	assert.Empty(t, room.History)
}

func TestHistoryGrowsByOnePerStay(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()
	id := rooms[4].ID

	for i := 1; i <= 3; i++ {
		_, err := svc.CheckIn(ctx, id, CheckInRequest{Name: "Guest", Amount: float64(i * 100)})
		require.NoError(t, err)
		room, err := svc.CheckOut(ctx, id)
		require.NoError(t, err)
		assert.Len(t, room.History, i)
	}
}

func TestCheckInDefaultsToNow(t *testing.T) {
	svc, rooms := newService(t)

	room, err := svc.CheckIn(context.Background(), rooms[0].ID, CheckInRequest{Name: "Mei"})
	require.NoError(t, err)
	require.NotNil(t, room.CheckIn)
	assert.WithinDuration(t, time.Now(), *room.CheckIn, 5*time.Second)
}

func TestCheckInValidation(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		req   CheckInRequest
		field string
	}{
		{"missing name", CheckInRequest{Amount: 100}, "name"},
		{"blank name", CheckInRequest{Name: "   ", Amount: 100}, "name"},
		{"negative amount", CheckInRequest{Name: "Asha", Amount: -1}, "amount"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CheckIn(ctx, rooms[0].ID, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	available, err := svc.IsAvailable(ctx, rooms[0].ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUpdateGuest(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()
	id := rooms[1].ID

	paid := true
	_, err := svc.UpdateGuest(ctx, id, GuestUpdate{Paid: &paid})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, ErrNoGuest)

	_, err = svc.CheckIn(ctx, id, CheckInRequest{Name: "Lena", Amount: 1200})
	require.NoError(t, err)

	room, err := svc.UpdateGuest(ctx, id, GuestUpdate{Paid: &paid})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, room.Guest.Amount)
	assert.True(t, room.Guest.Paid)

	amount := 900.0
	room, err = svc.UpdateGuest(ctx, id, GuestUpdate{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 900.0, room.Guest.Amount)
	assert.True(t, room.Guest.Paid)

	negative := -5.0
	_, err = svc.UpdateGuest(ctx, id, GuestUpdate{Amount: &negative})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRoomNotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		_, err := svc.GetRoom(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.CheckIn(ctx, id, CheckInRequest{Name: "X"})
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.CheckOut(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.IsAvailable(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestDeleteHistoryEntry(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()
	id := rooms[3].ID

	_, err := svc.CheckIn(ctx, id, CheckInRequest{Name: "Omar", Amount: 300})
	require.NoError(t, err)
	room, err := svc.CheckOut(ctx, id)
	require.NoError(t, err)
	historyID := room.History[0].ID

	require.NoError(t, svc.DeleteHistoryEntry(ctx, 4, historyID))

	err = svc.DeleteHistoryEntry(ctx, 4, historyID)
	assert.ErrorIs(t, err, ErrHistoryEntryNotFound)

	err = svc.DeleteHistoryEntry(ctx, 42, historyID)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	err = svc.DeleteHistoryEntry(ctx, 4, "garbage")
	assert.ErrorIs(t, err, ErrHistoryEntryNotFound)

	err = svc.DeleteHistoryEntry(ctx, 42, "garbage")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	room, err = svc.GetRoom(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, room.History)
}

func TestInitRooms(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()
	assert.Len(t, rooms, 9)

	_, err := svc.InitRooms(ctx, 9, false)
	assert.ErrorIs(t, err, ErrRoomsInitialized)

	_, err = svc.InitRooms(ctx, 0, true)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CheckIn(ctx, rooms[0].ID, CheckInRequest{Name: "Asha"})
	require.NoError(t, err)

	fresh, err := svc.InitRooms(ctx, 9, true)
	require.NoError(t, err)
	listed, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 9)
	for i, room := range listed {
		assert.Equal(t, i+1, room.Number)
		assert.Equal(t, fresh[i].ID, room.ID)
		assert.True(t, room.IsAvailable())
	}
}

func TestConcurrentCheckInsAdmitOneGuest(t *testing.T) {
	svc, rooms := newService(t)
	ctx := context.Background()
	id := rooms[0].ID

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, id, CheckInRequest{Name: "Racer", Amount: 1})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

// conflictingRepo fails the first n saves with a version conflict.
type conflictingRepo struct {
	repositories.RoomRepository
	failures int
	saves    int
}

func (r *conflictingRepo) Save(ctx context.Context, room *models.Room) error {
	r.saves++
	if r.failures > 0 {
		r.failures--
		return repositories.ErrVersionConflict
	}
	return r.RoomRepository.Save(ctx, room)
}

func TestSaveConflictRetries(t *testing.T) {
	ctx := context.Background()
	repo := &conflictingRepo{RoomRepository: repositories.NewMemoryRoomRepository(), failures: 2}
	svc := NewRoomService(repo, nil)
	rooms, err := svc.InitRooms(ctx, 1, false)
	require.NoError(t, err)

	room, err := svc.CheckIn(ctx, rooms[0].ID, CheckInRequest{Name: "Asha"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOccupied, room.Status)
	assert.Equal(t, 3, repo.saves)

	repo.failures = maxSaveAttempts
	_, err = svc.CheckOut(ctx, rooms[0].ID)
	assert.ErrorIs(t, err, repositories.ErrVersionConflict)

	room, err = svc.GetRoom(ctx, rooms[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOccupied, room.Status)
}

func TestNotifierReceivesEvents(t *testing.T) {
	ctx := context.Background()
	notifier := new(mockNotifier)
	svc := NewRoomService(repositories.NewMemoryRoomRepository(), notifier)
	rooms, err := svc.InitRooms(ctx, 2, false)
	require.NoError(t, err)

	notifier.On("RoomChanged", ctx, mock.MatchedBy(func(e models.RoomEvent) bool {
		return e.Type == models.EventCheckedIn && e.RoomNumber == 2 && e.Status == models.StatusOccupied
	})).Return(nil).Once()
	notifier.On("RoomChanged", ctx, mock.MatchedBy(func(e models.RoomEvent) bool {
		return e.Type == models.EventCheckedOut && e.RoomID == rooms[1].ID
	})).Return(assert.AnError).Once()

	_, err = svc.CheckIn(ctx, rooms[1].ID, CheckInRequest{Name: "Noor"})
	require.NoError(t, err)
	// A failing notifier does not fail the request.
	_, err = svc.CheckOut(ctx, rooms[1].ID)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, rooms[1].ID)
	require.Error(t, err)

	notifier.AssertExpectations(t)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "room not found", Message(ErrRoomNotFound))
	assert.Equal(t, "room already occupied", Message(ErrRoomOccupied))
	assert.Equal(t, "no guest to update", Message(ErrNoGuest))
	assert.Equal(t, "name is required", Message(&ValidationError{Field: "name", Message: "is required"}))
}
