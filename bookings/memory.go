package bookings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// InMemory is the test double for the booking store.
type InMemory struct {
	mu      sync.Mutex
	byID    map[string]*models.Booking
	byCode  map[string]string
	ordered []string
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[string]*models.Booking),
		byCode: make(map[string]string),
	}
}

func (s *InMemory) CodeExists(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byCode[code]
	return ok, nil
}

func (s *InMemory) Create(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[booking.Code]; ok {
		return ErrCodeTaken
	}
	if booking.Id == "" {
		booking.Id = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	booking.CreatedAt = time.Now().UTC()
	clone := *booking
	s.byID[booking.Id] = &clone
	s.byCode[booking.Code] = booking.Id
	s.ordered = append(s.ordered, booking.Id)
	return nil
}

func (s *InMemory) List(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Booking, 0, len(s.ordered))
	for i := len(s.ordered) - 1; i >= 0; i-- {
		out = append(out, *s.byID[s.ordered[i]])
	}
	return out, nil
}

func (s *InMemory) Get(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (s *InMemory) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	b.Status = status
	return nil
}

// Preset inserts a booking with a fixed code, for collision tests.
func (s *InMemory) Preset(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.byID[id] = &models.Booking{Id: id, Code: code, Status: models.BookingPending}
	s.byCode[code] = id
	s.ordered = append(s.ordered, id)
}
