package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// slotIndex enforces one active appointment per professional slot and start.
// It backs the repository's advisory-locked create against concurrent writers.
const slotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
	ON appointments (barbershop_id, professional_slot, date, start_time)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.BarberProduct{},
		&models.BarberCombo{},
		&models.WorkingHours{},
		&models.ProfessionalExcludedService{},
		&models.ProfessionalUnavailability{},
		&models.Client{},
		&models.Appointment{},
		&models.Revenue{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	if err := db.Exec(slotIndex).Error; err != nil {
		logger.Fatal("failed to create slot index", zap.Error(err))
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
