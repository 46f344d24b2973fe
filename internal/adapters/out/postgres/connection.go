// Package postgres opens the GORM connection and prepares the schema used by the
// orderrepo, menurepo and printjobrepo repositories.
package postgres

import (
	"fmt"

	"ordering/internal/adapters/out/postgres/menurepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/printjobrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Open connects to PostgreSQL. GORM's own logging is limited to warnings; queries
// are not logged.
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the orders, menus and pos_jobs tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &menurepo.MenuDTO{}, &printjobrepo.PrintJobDTO{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if err := db.Exec(menurepo.ConfirmedIndexDDL).Error; err != nil {
		return fmt.Errorf("create confirmed menu index: %w", err)
	}
	return nil
}
