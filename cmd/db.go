package main

import (
	"fmt"
	"log"

	"github.com/hoteldesk/hoteldesk/config"
	"github.com/hoteldesk/hoteldesk/internal/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openRoomRepository returns the configured store and a func that releases it.
func openRoomRepository(cfg config.Config) (repositories.RoomRepository, func(), error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Printf("Using in-memory room store")
		return repositories.NewMemoryRoomRepository(), func() {}, nil
	case config.DriverPostgres:
		if cfg.DBUrl == "" {
			return nil, nil, fmt.Errorf("DB_URL is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DBUrl)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DBUrl)
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return repositories.NewRoomRepository(db), closeDB, nil
}
