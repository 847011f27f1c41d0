package documents

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// InMemory mirrors the transactional create semantics of the SQL store:
// the counter only advances when the build and the append both succeed.
type InMemory struct {
	mu       sync.Mutex
	counters map[string]int64
	invoices []models.Invoice
	receipts []models.Receipt
}

func NewInMemory() *InMemory {
	return &InMemory{counters: make(map[string]int64)}
}

func (s *InMemory) CreateInvoice(ctx context.Context, build func(number int64) (*models.Invoice, error)) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := KindInvoice.CounterKey()
	invoice, err := build(s.counters[key] + 1)
	if err != nil {
		return nil, err
	}
	s.counters[key]++
	invoice.Id = uuid.NewString()
	invoice.CreatedAt = time.Now().UTC()
	s.invoices = append(s.invoices, *invoice)
	return invoice, nil
}

func (s *InMemory) CreateReceipt(ctx context.Context, build func(number int64) (*models.Receipt, error)) (*models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := KindReceipt.CounterKey()
	receipt, err := build(s.counters[key] + 1)
	if err != nil {
		return nil, err
	}
	s.counters[key]++
	receipt.Id = uuid.NewString()
	receipt.CreatedAt = time.Now().UTC()
	s.receipts = append(s.receipts, *receipt)
	return receipt, nil
}

func (s *InMemory) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out, nil
}

func (s *InMemory) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].Id == id {
			inv := s.invoices[i]
			return &inv, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *InMemory) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Receipt, len(s.receipts))
	copy(out, s.receipts)
	return out, nil
}

func (s *InMemory) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.receipts {
		if s.receipts[i].Id == id {
			r := s.receipts[i]
			return &r, nil
		}
	}
	return nil, errs.ErrNotFound
}

// LastNumber exposes the counter state for tests asserting that failed
// creates spend no number.
func (s *InMemory) LastNumber(kind string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[kind]
}
