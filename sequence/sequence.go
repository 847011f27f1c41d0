// Package sequence issues unique, monotonically increasing numbers for
// financial documents. The per-kind counter row is the single serialization
// point: the read of last_number and the write of last_number+1 must be one
// atomic unit in the store, never an application-level read-then-write.
package sequence

import "context"

// Counter kinds. Each has its own independent counter row.
const (
	KindInvoices = "invoices"
	KindReceipts = "receipts"
)

// Store reserves sequence numbers. Reserve must guarantee that no two
// concurrent callers ever receive the same integer for the same kind, and
// that each returned value is exactly previous+1. The first reservation for
// an unseen kind returns 1. On failure no number is considered issued.
type Store interface {
	Reserve(ctx context.Context, kind string) (int64, error)
}
