package documents

import (
	"context"
	"encoding/json"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
	"github.com/brainworksstudio2-dev/brain-works/utils"
)

// LineItemInput is one invoice line as submitted by the form collaborator.
type LineItemInput struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"price" validate:"gt=0"`
}

// InvoiceInput is the validated submission for a new invoice. Field-level
// validation is owned by the form collaborator; the writer re-asserts the
// structural contract before spending a number.
type InvoiceInput struct {
	InvoiceTo     string          `json:"invoice_to" validate:"required,min=2"`
	ClientEmail   string          `json:"client_email" validate:"required,email"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=Cash 'Mobile Money' Bank Other"`
	Status        string          `json:"status" validate:"required,oneof=Paid Pending Late"`
	Items         []LineItemInput `json:"items" validate:"required,min=1,dive"`
	TaxPercent    float64         `json:"tax_percent" validate:"gte=0"`
	Notes         string          `json:"notes"`
	AuthorId      string          `json:"-"`
}

// ReceiptInput is the validated submission for a new receipt.
type ReceiptInput struct {
	ClientName    string  `json:"client_name" validate:"required,min=2"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=Cash 'Mobile Money' Bank Other"`
	Description   string  `json:"description" validate:"max=500"`
	BookingCode   string  `json:"booking_code"`
	AuthorId      string  `json:"-"`
}

// Writer turns validated input into persisted documents. It reserves the
// next sequence number, formats the number, computes derived totals and
// persists the record through the store's atomic create.
type Writer struct {
	store Store
}

func NewWriter(store Store) *Writer {
	return &Writer{store: store}
}

// CreateInvoice issues a new invoice. Safe to retry from scratch on
// ErrStoreUnavailable: a failed create spends no number.
func (w *Writer) CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	if err := validateInvoiceInput(in); err != nil {
		return nil, err
	}

	subtotal := 0.0
	items := make([]models.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		line := utils.Round2(float64(it.Quantity) * it.UnitPrice)
		subtotal += line
		items = append(items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   line,
		})
	}
	subtotal = utils.Round2(subtotal)
	taxAmount := utils.Round2(subtotal * in.TaxPercent / 100)
	total := utils.Round2(subtotal + taxAmount)

	snapshot, _ := json.Marshal(in)

	return w.store.CreateInvoice(ctx, func(number int64) (*models.Invoice, error) {
		return &models.Invoice{
			Number:        KindInvoice.FormatNumber(number),
			InvoiceTo:     in.InvoiceTo,
			ClientEmail:   in.ClientEmail,
			PaymentMethod: in.PaymentMethod,
			Status:        in.Status,
			Items:         items,
			TaxPercent:    in.TaxPercent,
			Subtotal:      subtotal,
			TaxAmount:     taxAmount,
			Total:         total,
			Notes:         in.Notes,
			Snapshot:      snapshot,
			AuthorId:      in.AuthorId,
		}, nil
	})
}

// CreateReceipt issues a new receipt.
func (w *Writer) CreateReceipt(ctx context.Context, in ReceiptInput) (*models.Receipt, error) {
	if err := validateReceiptInput(in); err != nil {
		return nil, err
	}

	var metadata []byte
	if in.BookingCode != "" {
		metadata, _ = json.Marshal(map[string]string{"booking_code": in.BookingCode})
	}

	return w.store.CreateReceipt(ctx, func(number int64) (*models.Receipt, error) {
		return &models.Receipt{
			Number:        KindReceipt.FormatNumber(number),
			ClientName:    in.ClientName,
			Amount:        utils.Round2(in.Amount),
			PaymentMethod: in.PaymentMethod,
			Description:   in.Description,
			Metadata:      metadata,
			AuthorId:      in.AuthorId,
		}, nil
	})
}

func validateInvoiceInput(in InvoiceInput) error {
	if len(in.Items) == 0 {
		return errs.Validation("at least one line item is required")
	}
	for _, it := range in.Items {
		if it.Description == "" {
			return errs.Validation("item description is required")
		}
		if it.Quantity <= 0 {
			return errs.Validation("item quantity must be positive")
		}
		if it.UnitPrice <= 0 {
			return errs.Validation("item price must be positive")
		}
	}
	if in.TaxPercent < 0 {
		return errs.Validation("tax cannot be negative")
	}
	return nil
}

func validateReceiptInput(in ReceiptInput) error {
	if in.ClientName == "" {
		return errs.Validation("client name is required")
	}
	if in.Amount <= 0 {
		return errs.Validation("amount must be positive")
	}
	return nil
}
