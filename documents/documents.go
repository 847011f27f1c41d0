// Package documents issues financial documents (invoices, receipts) with
// unique sequential numbers. The number reservation and the record write are
// one atomic unit: either both commit or neither does.
package documents

import (
	"context"
	"fmt"

	"github.com/brainworksstudio2-dev/brain-works/models"
	"github.com/brainworksstudio2-dev/brain-works/sequence"
)

// Kind selects a document type. Each kind has its own counter and number
// prefix.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindReceipt Kind = "receipt"
)

// CounterKey names the kind's row in the sequence counter table.
func (k Kind) CounterKey() string {
	switch k {
	case KindReceipt:
		return sequence.KindReceipts
	default:
		return sequence.KindInvoices
	}
}

// Prefix is the fixed human-readable number prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindReceipt:
		return "BW"
	default:
		return "INV"
	}
}

// FormatNumber renders a reserved counter value as the document number,
// zero-padded to four digits and growing naturally beyond 9999.
func (k Kind) FormatNumber(n int64) string {
	return fmt.Sprintf("%s-%04d", k.Prefix(), n)
}

// Store persists documents. Implementations must call build with the freshly
// reserved number inside the same atomic unit as the insert, so a failed
// build or insert spends no number visible to other readers.
type Store interface {
	CreateInvoice(ctx context.Context, build func(number int64) (*models.Invoice, error)) (*models.Invoice, error)
	CreateReceipt(ctx context.Context, build func(number int64) (*models.Receipt, error)) (*models.Receipt, error)

	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	ListReceipts(ctx context.Context) ([]models.Receipt, error)
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)
}
