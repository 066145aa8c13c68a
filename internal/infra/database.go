package infra

import (
	"fmt"

	"github.com/lyb5737-lyb77/inventory-management/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and brings the schema
// up to date: pre-migration patches, AutoMigrate of every model, then the
// idempotent SQL patches GORM cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// models lists every table owned by this service, in dependency order.
func models() []interface{} {
	return []interface{}{
		&model.Item{},
		&model.Transaction{},
		&model.ProductGroup{},
		&model.Warehouse{},
		&model.Customer{},
		&model.IPRange{},
		&model.IPDetail{},
		&model.Rental{},
	}
}

// applyPreMigrationPatches prepares what AutoMigrate relies on. UUID defaults
// use gen_random_uuid(), which needs pgcrypto before PostgreSQL 13.
func applyPreMigrationPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"enable pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("pre-patch %q: %w", p.descr, err)
		}
	}
	return nil
}

// applySchemaPatches runs idempotent DDL that struct tags cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// replay order for RecomputeStock
		`CREATE INDEX IF NOT EXISTS idx_stock_transactions_item_created
		    ON stock_transactions (item_id, created_at)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies the full schema. NewDatabase calls it at startup and
// integration tests call it against their container.
func RunMigrations(db *gorm.DB) error {
	if err := applyPreMigrationPatches(db); err != nil {
		return fmt.Errorf("pre-migration patches: %w", err)
	}
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}
