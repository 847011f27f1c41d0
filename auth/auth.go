// Package auth resolves authenticated principals to profiles and roles.
// Sign-in and sign-out are modeled as discrete events driving a small state
// machine, so the whole flow is testable without a real identity provider.
package auth

import (
	"context"

	"github.com/brainworksstudio2-dev/brain-works/models"
)

// Post-authentication destinations, a pure function of role.
const (
	AdminDestination  = "/admin"
	ClientDestination = "/book"
)

// DestinationFor returns where a freshly authenticated principal lands.
func DestinationFor(role models.Role) string {
	if role == models.RoleAdmin {
		return AdminDestination
	}
	return ClientDestination
}

// Identity carries the attributes the identity provider reports on sign-in.
type Identity struct {
	PrincipalID string
	Email       string
	DisplayName string
}

// ProfileStore persists user profiles. CreateIfAbsent must be a
// create-if-absent primitive: when a concurrent first sign-in wins the race,
// it reports created=false without error and the caller re-reads the winner.
type ProfileStore interface {
	FindByID(ctx context.Context, principalID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateIfAbsent(ctx context.Context, user *models.User) (created bool, err error)
}
