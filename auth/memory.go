package auth

import (
	"context"
	"sync"
	"time"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// InMemoryProfileStore is the test double for ProfileStore.
type InMemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*models.User
}

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{profiles: make(map[string]*models.User)}
}

func (s *InMemoryProfileStore) FindByID(ctx context.Context, principalID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.profiles[principalID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *InMemoryProfileStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.profiles {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *InMemoryProfileStore) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[user.Id]; ok {
		return false, nil
	}
	for _, u := range s.profiles {
		if u.Email != "" && u.Email == user.Email {
			return false, errs.Validation("email already exists")
		}
	}
	if !user.Role.Valid() {
		return false, errs.Validation("invalid role")
	}
	user.CreatedAt = time.Now().UTC()
	clone := *user
	s.profiles[user.Id] = &clone
	return true, nil
}

// Count reports how many profiles exist, for race tests.
func (s *InMemoryProfileStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

// Seed stores a profile directly, e.g. a pre-registered admin.
func (s *InMemoryProfileStore) Seed(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.profiles[user.Id] = &clone
}
