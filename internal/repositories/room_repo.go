package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoteldesk/hoteldesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	ListAll(ctx context.Context) ([]*models.Room, error)
	GetByID(ctx context.Context, id string) (*models.Room, error)
	FindByNumber(ctx context.Context, number int) (*models.Room, error)
	// Save writes the full room state if it is still at room.Version and
	// advances room.Version on success.
	Save(ctx context.Context, room *models.Room) error
	// RemoveHistoryEntry deletes one stay from the room with the given number
	// and reports whether a row was removed.
	RemoveHistoryEntry(ctx context.Context, number int, historyID string) (bool, error)
	Seed(ctx context.Context, rooms []*models.Room, reset bool) error
	Ping(ctx context.Context) error
}

type roomRepo struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

// Migrate creates or updates the room tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&roomRecord{}, &stayRecord{}); err != nil {
		return fmt.Errorf("failed to migrate rooms: %w", err)
	}
	return nil
}

func (r *roomRepo) withStays(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Stays", func(db *gorm.DB) *gorm.DB {
		return db.Order("check_out asc, created_at asc")
	})
}

func (r *roomRepo) ListAll(ctx context.Context) ([]*models.Room, error) {
	var records []roomRecord
	if err := r.withStays(ctx).Order("number asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	rooms := make([]*models.Room, 0, len(records))
	for i := range records {
		rooms = append(rooms, records[i].toModel())
	}
	return rooms, nil
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *roomRepo) FindByNumber(ctx context.Context, number int) (*models.Room, error) {
	return r.first(ctx, "number = ?", number)
}

func (r *roomRepo) first(ctx context.Context, query string, arg interface{}) (*models.Room, error) {
	var record roomRecord
	if err := r.withStays(ctx).Where(query, arg).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return record.toModel(), nil
}

func (r *roomRepo) Save(ctx context.Context, room *models.Room) error {
	rec := toRecord(room)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&roomRecord{}).
			Where("id = ? AND version = ?", rec.ID, rec.Version).
			Updates(map[string]interface{}{
				"status":        rec.Status,
				"guest_present": rec.GuestPresent,
				"guest_name":    rec.GuestName,
				"guest_phone":   rec.GuestPhone,
				"guest_email":   rec.GuestEmail,
				"guest_amount":  rec.GuestAmount,
				"guest_paid":    rec.GuestPaid,
				"check_in":      rec.CheckIn,
				"check_out":     rec.CheckOut,
				"version":       gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to save room: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&roomRecord{}).Where("id = ?", rec.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to save room: %w", err)
			}
			if count == 0 {
				return ErrRoomNotFound
			}
			return ErrVersionConflict
		}

		// Stays are append-only; rows already present are left untouched.
		if len(rec.Stays) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec.Stays).Error; err != nil {
				return fmt.Errorf("failed to save room history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	room.Version++
	return nil
}

func (r *roomRepo) RemoveHistoryEntry(ctx context.Context, number int, historyID string) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec roomRecord
		if err := tx.Select("id").Where("number = ?", number).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to find room: %w", err)
		}

		res := tx.Where("id = ? AND room_id = ?", historyID, rec.ID).Delete(&stayRecord{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete history entry: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true

		// A stale Save must not write the deleted stay back.
		if err := tx.Model(&roomRecord{}).Where("id = ?", rec.ID).
			Update("version", gorm.Expr("version + 1")).Error; err != nil {
			return fmt.Errorf("failed to bump room version: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (r *roomRepo) Seed(ctx context.Context, rooms []*models.Room, reset bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if err := all.Delete(&stayRecord{}).Error; err != nil {
				return fmt.Errorf("failed to clear room history: %w", err)
			}
			if err := all.Delete(&roomRecord{}).Error; err != nil {
				return fmt.Errorf("failed to clear rooms: %w", err)
			}
		} else {
			var count int64
			if err := tx.Model(&roomRecord{}).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count rooms: %w", err)
			}
			if count > 0 {
				return ErrAlreadySeeded
			}
		}

		for _, room := range rooms {
			rec := toRecord(room)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to create room %d: %w", room.Number, err)
			}
			room.ID = rec.ID
			room.Version = rec.Version
		}
		return nil
	})
}

func (r *roomRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
