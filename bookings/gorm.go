package bookings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// GormStore persists bookings in Postgres. The unique index on code is the
// final arbiter of code uniqueness; a violated insert maps to ErrCodeTaken.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check code: %w", errs.ErrStoreUnavailable)
	}
	return count > 0, nil
}

func (s *GormStore) Create(ctx context.Context, booking *models.Booking) error {
	err := s.db.WithContext(ctx).Create(booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeTaken
		}
		return fmt.Errorf("insert booking: %w", errs.ErrStoreUnavailable)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", errs.ErrStoreUnavailable)
	}
	return bookings, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", errs.ErrStoreUnavailable)
	}
	return &booking, nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update booking status: %w", errs.ErrStoreUnavailable)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
