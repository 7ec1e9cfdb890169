package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hoteldesk/hoteldesk/internal/services"
)

type RoomController struct {
	roomService services.RoomService
}

func NewRoomController(roomService services.RoomService) *RoomController {
	return &RoomController{
		roomService: roomService,
	}
}

// RegisterRoutes registers all room-related routes
func (c *RoomController) RegisterRoutes(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", c.ListRooms)
		r.Get("/all-guests", c.ListGuests)
		r.Get("/all-guests/summary", c.GuestSummary)

		// {id} is the room id everywhere except under /history, where it is the room number.
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", c.GetRoom)
			r.Post("/checkin", c.CheckIn)
			r.Post("/checkout", c.CheckOut)
			r.Patch("/guest", c.UpdateGuest)
			r.Get("/availability", c.Availability)
			r.Delete("/history/{historyID}", c.DeleteHistoryEntry)
		})
	})
}

// ListRooms returns every room
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.roomService.ListRooms(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// GetRoom returns a single room by id
func (c *RoomController) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := c.roomService.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (c *RoomController) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string     `json:"name"`
		Phone   string     `json:"phone"`
		Email   string     `json:"email"`
		Amount  float64    `json:"amount"`
		Paid    bool       `json:"paid"`
		CheckIn *time.Time `json:"checkIn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := c.roomService.CheckIn(r.Context(), chi.URLParam(r, "id"), services.CheckInRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Amount:  req.Amount,
		Paid:    req.Paid,
		CheckIn: req.CheckIn,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (c *RoomController) CheckOut(w http.ResponseWriter, r *http.Request) {
	room, err := c.roomService.CheckOut(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// UpdateGuest edits the amount and paid flag of the current guest
func (c *RoomController) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount *float64 `json:"amount"`
		Paid   *bool    `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := c.roomService.UpdateGuest(r.Context(), chi.URLParam(r, "id"), services.GuestUpdate{
		Amount: req.Amount,
		Paid:   req.Paid,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (c *RoomController) Availability(w http.ResponseWriter, r *http.Request) {
	available, err := c.roomService.IsAvailable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// ListGuests returns the flattened guest log, optionally filtered
func (c *RoomController) ListGuests(w http.ResponseWriter, r *http.Request) {
	filter, err := parseGuestFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := c.roomService.ListGuestRecords(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (c *RoomController) GuestSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseGuestFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := c.roomService.GuestSummary(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (c *RoomController) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, services.ErrRoomNotFound)
		return
	}
	if err := c.roomService.DeleteHistoryEntry(r.Context(), number, chi.URLParam(r, "historyID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func parseGuestFilter(q url.Values) (services.GuestFilter, error) {
	var filter services.GuestFilter
	if v := q.Get("room"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("room must be a number")
		}
		filter.Room = n
	}
	filter.Name = q.Get("name")

	var err error
	if filter.From, err = parseTime(q.Get("from"), false); err != nil {
		return filter, errors.New("from must be a date or RFC3339 timestamp")
	}
	if filter.To, err = parseTime(q.Get("to"), true); err != nil {
		return filter, errors.New("to must be a date or RFC3339 timestamp")
	}
	return filter, nil
}

// parseTime accepts RFC3339 or a bare date; a bare upper bound covers the whole day.
func parseTime(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
