package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/hoteldesk/internal/models"
	"gorm.io/gorm"
)

type roomRecord struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Number       int    `gorm:"uniqueIndex;not null"`
	Status       string `gorm:"size:16;not null"`
	GuestPresent bool   `gorm:"not null;default:false"`
	GuestName    string `gorm:"size:255"`
	GuestPhone   string `gorm:"size:64"`
	GuestEmail   string `gorm:"size:255"`
	GuestAmount  float64
	GuestPaid    bool
	CheckIn      *time.Time
	CheckOut     *time.Time
	Version      int64        `gorm:"not null;default:0"`
	Stays        []stayRecord `gorm:"foreignKey:RoomID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (roomRecord) TableName() string { return "rooms" }

// BeforeCreate will set a UUID rather than numeric ID
func (r *roomRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type stayRecord struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	RoomID    string `gorm:"type:uuid;not null;index"`
	Name      string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:64"`
	Email     string `gorm:"size:255"`
	Amount    float64
	Paid      bool
	CheckIn   *time.Time
	CheckOut  time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (stayRecord) TableName() string { return "room_stays" }

func (s *stayRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func toRecord(room *models.Room) roomRecord {
	rec := roomRecord{
		ID:       room.ID,
		Number:   room.Number,
		Status:   string(room.Status),
		CheckIn:  room.CheckIn,
		CheckOut: room.CheckOut,
		Version:  room.Version,
	}
	if room.Guest != nil {
		rec.GuestPresent = true
		rec.GuestName = room.Guest.Name
		rec.GuestPhone = room.Guest.Phone
		rec.GuestEmail = room.Guest.Email
		rec.GuestAmount = room.Guest.Amount
		rec.GuestPaid = room.Guest.Paid
	}
	for _, s := range room.History {
		rec.Stays = append(rec.Stays, stayRecord{
			ID:       s.ID,
			RoomID:   room.ID,
			Name:     s.Name,
			Phone:    s.Phone,
			Email:    s.Email,
			Amount:   s.Amount,
			Paid:     s.Paid,
			CheckIn:  s.CheckIn,
			CheckOut: s.CheckOut,
		})
	}
	return rec
}

func (r *roomRecord) toModel() *models.Room {
	room := &models.Room{
		ID:       r.ID,
		Number:   r.Number,
		Status:   models.RoomStatus(r.Status),
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		History:  make([]models.Stay, 0, len(r.Stays)),
		Version:  r.Version,
	}
	if r.GuestPresent {
		room.Guest = &models.Guest{
			Name:   r.GuestName,
			Phone:  r.GuestPhone,
			Email:  r.GuestEmail,
			Amount: r.GuestAmount,
			Paid:   r.GuestPaid,
		}
	}
	for _, s := range r.Stays {
		room.History = append(room.History, models.Stay{
			ID:       s.ID,
			Name:     s.Name,
			Phone:    s.Phone,
			Email:    s.Email,
			Amount:   s.Amount,
			Paid:     s.Paid,
			CheckIn:  s.CheckIn,
			CheckOut: s.CheckOut,
		})
	}
	return room
}
