package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sjwaight/gu/internal/model"
)

// NewDatabase establishes a GORM connection with a bounded pool. Schema setup
// is a separate, explicit step — see RunMigrations.
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
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Editor{},
		&model.Author{},
		&model.Topic{},
		&model.Category{},
		&model.Region{},
		&model.Article{},
		&model.Fund{},
		&model.Invoice{},
		&model.Commission{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index backing the reconciliation queries: approved
		// commissions awaiting billing or notification.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_commissions_unbilled') THEN
		    CREATE INDEX idx_commissions_unbilled
		        ON commissions (author_id)
		        WHERE fund_id IS NOT NULL AND invoice_id IS NULL;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_commissions_unnotified') THEN
		    CREATE INDEX idx_commissions_unnotified
		        ON commissions (created_at)
		        WHERE fund_id IS NOT NULL AND date_notified_approved IS NULL;
		  END IF;
		END $$`,
		// Paid invoices awaiting the payment email.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_invoices_paid_unnotified') THEN
		    CREATE INDEX idx_invoices_paid_unnotified
		        ON invoices (updated_at)
		        WHERE status = '4' AND date_notified_payment IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
