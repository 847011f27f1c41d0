package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// Resolver maps a sign-in event to the principal's profile. A principal with
// no existing profile gets a default client profile; admin profiles are only
// ever created through the explicit admin registration path.
type Resolver struct {
	store ProfileStore
}

func NewResolver(store ProfileStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up the profile for id, creating a client profile on first
// sign-in. Resolution is idempotent: the same principal always yields the
// same profile and role, and a lost creation race falls back to re-reading
// the winner's profile.
func (r *Resolver) Resolve(ctx context.Context, id Identity) (*models.User, error) {
	if id.PrincipalID == "" {
		return nil, errs.Validation("principal id is required")
	}

	profile, err := r.store.FindByID(ctx, id.PrincipalID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("look up profile: %w", err)
	}

	fresh := &models.User{
		Id:          id.PrincipalID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        models.RoleClient,
	}
	created, err := r.store.CreateIfAbsent(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if created {
		return fresh, nil
	}

	// Lost the first-sign-in race: the winner's profile is authoritative.
	profile, err = r.store.FindByID(ctx, id.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("re-read profile after race: %w", err)
	}
	return profile, nil
}
