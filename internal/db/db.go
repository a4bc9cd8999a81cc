package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-booking-backend/config"
	"campus-booking-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unrecognized database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.Facility{},
		&model.Room{},
		&model.Booking{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.EnableExclusionConstraint {
		if cfg.Driver != "postgres" {
			log.Printf("Warning: enable_exclusion_constraint requires postgres; skipping on %q", cfg.Driver)
		} else {
			log.Println("Applying Postgres exclusion constraint DDL...")
			if err := applyExclusionDDL(db); err != nil {
				return nil, err
			}
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// applyExclusionDDL installs a GIST exclusion constraint so the database
// itself rejects two confirmed bookings overlapping within one
// (facility, room-or-0, date) scope. Times are "HH:MM" strings; the constraint
// compares them as half-open minute ranges.
func applyExclusionDDL(db *gorm.DB) error {
	ddls := []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist;",

		"ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_confirmed_no_overlap;",

		"ALTER TABLE bookings ADD CONSTRAINT bookings_confirmed_no_overlap " +
			"EXCLUDE USING GIST (" +
			"facility_id WITH =, " +
			"COALESCE(room_id, 0) WITH =, " +
			"date WITH =, " +
			"int4range(" +
			"split_part(start_time, ':', 1)::int * 60 + split_part(start_time, ':', 2)::int, " +
			"split_part(end_time, ':', 1)::int * 60 + split_part(end_time, ':', 2)::int, " +
			"'[)') WITH &&" +
			") WHERE (status = 'confirmed');",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
