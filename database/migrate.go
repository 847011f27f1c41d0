package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Harden applies (idempotent) schema hardening beyond AutoMigrate:
// - Money column types (NUMERIC(12,2))
// - Unique indexes guarding document numbers and booking codes
// - Basic CHECK constraints backing the core invariants
func Harden() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE invoices      ALTER COLUMN subtotal   TYPE numeric(12,2)`,
			`ALTER TABLE invoices      ALTER COLUMN tax_amount TYPE numeric(12,2)`,
			`ALTER TABLE invoices      ALTER COLUMN total      TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items ALTER COLUMN unit_price TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items ALTER COLUMN line_total TYPE numeric(12,2)`,
			`ALTER TABLE receipts      ALTER COLUMN amount     TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Unique / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_number ON invoices (number)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_receipts_number ON receipts (number)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_code ON bookings (code)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Counters never go negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sequence_counters'::regclass
					  AND conname  = 'chk_sequence_counters_nonneg'
				) THEN
					ALTER TABLE sequence_counters
					ADD CONSTRAINT chk_sequence_counters_nonneg
					CHECK (last_number >= 0);
				END IF;
			END $$;`,
			// Receipt amounts are strictly positive
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'receipts'::regclass
					  AND conname  = 'chk_receipts_amount_positive'
				) THEN
					ALTER TABLE receipts
					ADD CONSTRAINT chk_receipts_amount_positive
					CHECK (amount > 0);
				END IF;
			END $$;`,
			// Invoice items: positive quantity and price
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_items'::regclass
					  AND conname  = 'chk_invoice_items_positive'
				) THEN
					ALTER TABLE invoice_items
					ADD CONSTRAINT chk_invoice_items_positive
					CHECK (quantity > 0 AND unit_price > 0);
				END IF;
			END $$;`,
			// Roles are a closed enum at the store boundary too
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'users'::regclass
					  AND conname  = 'chk_users_role'
				) THEN
					ALTER TABLE users
					ADD CONSTRAINT chk_users_role
					CHECK (role IN ('admin', 'client'));
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
