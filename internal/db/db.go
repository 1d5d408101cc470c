package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Open connects to postgres for postgres:// DSNs and to SQLite for anything
// else (a file path or file::memory:).
func Open(dsn string, log *slog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	if isPostgres(dsn) {
		cfg.PrepareStmt = true
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if isPostgres(dsn) {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	} else {
		// One writer keeps SQLite from reporting "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("database connected", "driver", dialector.Name())
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.WeeklySchedule{},
		&models.Plan{},
		&models.PlanDiscount{},
		&models.Subscription{},
		&models.Appointment{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, stmt := range appointmentOverlapDDL() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add appointment overlap constraint: %w", err)
		}
	}
	return nil
}

const appointmentOverlapConstraint = "appointments_barber_no_overlap"

// appointmentOverlapDDL makes postgres reject two live appointments of one
// barber over intersecting [scheduled_at, ends_at) spans. Only cancelled
// rows give their interval back.
func appointmentOverlapDDL() []string {
	return []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist",
		fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE appointments
			ADD CONSTRAINT %s
			EXCLUDE USING gist (
				barber_id WITH =,
				tstzrange(scheduled_at, ends_at, '[)') WITH &&
			)
			WHERE (status <> '%s');
	END IF;
END
$$`, appointmentOverlapConstraint, appointmentOverlapConstraint, appointment.StatusCancelled),
	}
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
