// Package bookings handles client session requests: creation with a unique
// short code, listing, and confirmation.
package bookings

import (
	"context"
	"fmt"

	"github.com/brainworksstudio2-dev/brain-works/codes"
	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// ErrCodeTaken is returned by Store.Create when the code lost an insert race
// against a concurrent booking. It is the generator's collision signal, so a
// lost race spends an attempt from the same bounded redraw budget as a failed
// pre-check.
var ErrCodeTaken = codes.ErrTaken

// Store persists bookings. CodeExists backs the generator's collision check;
// Create must enforce code uniqueness (unique index) and return ErrCodeTaken
// on a lost race.
type Store interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
}

// Input is a validated booking submission.
type Input struct {
	ClientName  string `json:"client_name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,min=1"`
	ServiceType string `json:"service_type" validate:"required,oneof='Wedding Photography' 'Event Videography' 'Portrait Session' 'Corporate Shoot' 'Special Event' 'Studio Shoot'"`
	EventDate   string `json:"event_date" validate:"required,datetime=2006-01-02"`
	Message     string `json:"message"`
}

// Service creates bookings with generated codes and drives status changes.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create draws a code, checks it against existing bookings and persists the
// booking with status Pending. Check and insert form a single claim, so a
// pre-check collision and a lost insert race both spend one of the
// generator's codes.MaxAttempts draws; the caller only ever sees success or
// code-space exhaustion.
func (s *Service) Create(ctx context.Context, in Input) (*models.Booking, error) {
	if in.ClientName == "" || in.Email == "" {
		return nil, errs.Validation("client name and email are required")
	}

	var booking *models.Booking
	gen := codes.NewGenerator(func(ctx context.Context, code string) error {
		taken, err := s.store.CodeExists(ctx, code)
		if err != nil {
			return fmt.Errorf("check booking code: %w", err)
		}
		if taken {
			return codes.ErrTaken
		}
		candidate := &models.Booking{
			Code:        code,
			ClientName:  in.ClientName,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
			ServiceType: in.ServiceType,
			EventDate:   in.EventDate,
			Message:     in.Message,
			Status:      models.BookingPending,
		}
		if err := s.store.Create(ctx, candidate); err != nil {
			return err
		}
		booking = candidate
		return nil
	})
	if _, err := gen.Generate(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

// List returns bookings, newest first.
func (s *Service) List(ctx context.Context) ([]models.Booking, error) {
	return s.store.List(ctx)
}

// Confirm moves a pending booking to Confirmed. Confirming an already
// confirmed booking is a no-op.
func (s *Service) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingConfirmed {
		return booking, nil
	}
	if err := s.store.UpdateStatus(ctx, id, models.BookingConfirmed); err != nil {
		return nil, err
	}
	booking.Status = models.BookingConfirmed
	return booking, nil
}
