package documents

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
	"github.com/brainworksstudio2-dev/brain-works/sequence"
)

// GormStore persists documents in Postgres. Each create runs the sequence
// reservation and the record insert in one transaction; a rollback releases
// the counter row lock with the advance undone, so no reserved-but-unused
// number ever becomes visible.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateInvoice(ctx context.Context, build func(number int64) (*models.Invoice, error)) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := sequence.NewGormStore(tx).Reserve(ctx, KindInvoice.CounterKey())
		if err != nil {
			return err
		}
		invoice, err = build(number)
		if err != nil {
			return err
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("insert invoice: %w", errs.ErrStoreUnavailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *GormStore) CreateReceipt(ctx context.Context, build func(number int64) (*models.Receipt, error)) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := sequence.NewGormStore(tx).Reserve(ctx, KindReceipt.CounterKey())
		if err != nil {
			return err
		}
		receipt, err = build(number)
		if err != nil {
			return err
		}
		if err := tx.Create(receipt).Error; err != nil {
			return fmt.Errorf("insert receipt: %w", errs.ErrStoreUnavailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *GormStore) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", errs.ErrStoreUnavailable)
	}
	return invoices, nil
}

func (s *GormStore) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).Preload("Items").First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", errs.ErrStoreUnavailable)
	}
	return &invoice, nil
}

func (s *GormStore) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", errs.ErrStoreUnavailable)
	}
	return receipts, nil
}

func (s *GormStore) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := s.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get receipt: %w", errs.ErrStoreUnavailable)
	}
	return &receipt, nil
}
