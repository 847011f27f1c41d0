package documents

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/sequence"
)

func validInvoiceInput() InvoiceInput {
	return InvoiceInput{
		InvoiceTo:     "Jane Client",
		ClientEmail:   "jane@example.com",
		PaymentMethod: "Cash",
		Status:        "Pending",
		Items: []LineItemInput{
			{Description: "Shoot", Quantity: 2, UnitPrice: 100},
		},
		TaxPercent: 5,
		AuthorId:   "admin-1",
	}
}

func TestCreateInvoiceTotalsAndNumber(t *testing.T) {
	w := NewWriter(NewInMemory())

	inv, err := w.CreateInvoice(context.Background(), validInvoiceInput())
	require.NoError(t, err)

	require.Equal(t, "INV-0001", inv.Number)
	require.InDelta(t, 200.0, inv.Subtotal, 1e-9)
	require.InDelta(t, 10.0, inv.TaxAmount, 1e-9)
	require.InDelta(t, 210.0, inv.Total, 1e-9)
	require.InDelta(t, inv.Subtotal+inv.TaxAmount, inv.Total, 1e-9)
}

func TestCreateInvoiceNumbersIncrement(t *testing.T) {
	w := NewWriter(NewInMemory())
	ctx := context.Background()

	first, err := w.CreateInvoice(ctx, validInvoiceInput())
	require.NoError(t, err)
	second, err := w.CreateInvoice(ctx, validInvoiceInput())
	require.NoError(t, err)

	require.Equal(t, "INV-0001", first.Number)
	require.Equal(t, "INV-0002", second.Number)
}

func TestCreateInvoiceRejectsBadInput(t *testing.T) {
	w := NewWriter(NewInMemory())
	ctx := context.Background()

	cases := map[string]func(*InvoiceInput){
		"no items":          func(in *InvoiceInput) { in.Items = nil },
		"zero quantity":     func(in *InvoiceInput) { in.Items[0].Quantity = 0 },
		"negative price":    func(in *InvoiceInput) { in.Items[0].UnitPrice = -1 },
		"negative tax":      func(in *InvoiceInput) { in.TaxPercent = -5 },
		"empty description": func(in *InvoiceInput) { in.Items[0].Description = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInvoiceInput()
			mutate(&in)
			_, err := w.CreateInvoice(ctx, in)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

// A rejected create must not advance the counter: the next valid invoice
// still gets INV-0001.
func TestCreateInvoiceFailureSpendsNoNumber(t *testing.T) {
	store := NewInMemory()
	w := NewWriter(store)
	ctx := context.Background()

	bad := validInvoiceInput()
	bad.Items = nil
	_, err := w.CreateInvoice(ctx, bad)
	require.ErrorIs(t, err, errs.ErrValidation)
	require.EqualValues(t, 0, store.LastNumber(sequence.KindInvoices))

	inv, err := w.CreateInvoice(ctx, validInvoiceInput())
	require.NoError(t, err)
	require.Equal(t, "INV-0001", inv.Number)
}

func TestCreateReceipt(t *testing.T) {
	w := NewWriter(NewInMemory())

	rec, err := w.CreateReceipt(context.Background(), ReceiptInput{
		ClientName:    "John Doe",
		Amount:        150.456,
		PaymentMethod: "Mobile Money",
		Description:   "Deposit for studio shoot",
		BookingCode:   "BW-A1B2",
		AuthorId:      "admin-1",
	})
	require.NoError(t, err)

	require.Equal(t, "BW-0001", rec.Number)
	require.InDelta(t, 150.46, rec.Amount, 1e-9)
	require.JSONEq(t, `{"booking_code":"BW-A1B2"}`, string(rec.Metadata))
}

func TestCreateReceiptRejectsNonPositiveAmount(t *testing.T) {
	w := NewWriter(NewInMemory())

	_, err := w.CreateReceipt(context.Background(), ReceiptInput{
		ClientName:    "John Doe",
		Amount:        0,
		PaymentMethod: "Cash",
	})
	require.ErrorIs(t, err, errs.ErrValidation)
}

// Receipt numbers come from their own counter: issuing invoices first must
// not shift receipt numbering.
func TestCountersIndependentAcrossKinds(t *testing.T) {
	w := NewWriter(NewInMemory())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := w.CreateInvoice(ctx, validInvoiceInput())
		require.NoError(t, err)
	}

	rec, err := w.CreateReceipt(ctx, ReceiptInput{
		ClientName:    "John Doe",
		Amount:        50,
		PaymentMethod: "Bank",
	})
	require.NoError(t, err)
	require.Equal(t, "BW-0001", rec.Number)
}

func TestConcurrentCreatesYieldUniqueNumbers(t *testing.T) {
	const workers = 32

	w := NewWriter(NewInMemory())
	numbers := make([]string, workers)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			inv, err := w.CreateInvoice(ctx, validInvoiceInput())
			if err != nil {
				return err
			}
			numbers[i] = inv.Number
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]bool, workers)
	for _, n := range numbers {
		require.False(t, seen[n], "duplicate number %s", n)
		seen[n] = true
	}
}

func TestFormatNumberGrowsPastFourDigits(t *testing.T) {
	require.Equal(t, "INV-0042", KindInvoice.FormatNumber(42))
	require.Equal(t, "BW-10001", KindReceipt.FormatNumber(10001))
	require.Equal(t, fmt.Sprintf("INV-%d", 123456), KindInvoice.FormatNumber(123456))
}
