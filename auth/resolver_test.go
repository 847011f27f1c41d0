package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

func testIdentity() Identity {
	return Identity{
		PrincipalID: "principal-1",
		Email:       "jane@example.com",
		DisplayName: "Jane Client",
	}
}

func TestResolveCreatesClientProfileOnFirstSignIn(t *testing.T) {
	store := NewInMemoryProfileStore()
	r := NewResolver(store)

	profile, err := r.Resolve(context.Background(), testIdentity())
	require.NoError(t, err)

	require.Equal(t, models.RoleClient, profile.Role, "a new principal is never an admin")
	require.Equal(t, "principal-1", profile.Id)
	require.Equal(t, 1, store.Count())
}

func TestResolveIsIdempotent(t *testing.T) {
	store := NewInMemoryProfileStore()
	r := NewResolver(store)
	ctx := context.Background()

	first, err := r.Resolve(ctx, testIdentity())
	require.NoError(t, err)
	second, err := r.Resolve(ctx, testIdentity())
	require.NoError(t, err)

	require.Equal(t, first.Role, second.Role)
	require.Equal(t, first.Id, second.Id)
	require.Equal(t, 1, store.Count(), "second resolve must not create a second profile")
}

func TestResolveKeepsStoredAdminRole(t *testing.T) {
	store := NewInMemoryProfileStore()
	store.Seed(&models.User{
		Id:          "admin-1",
		Email:       "owner@brainworks.studio",
		DisplayName: "Studio Owner",
		Role:        models.RoleAdmin,
	})
	r := NewResolver(store)

	profile, err := r.Resolve(context.Background(), Identity{
		PrincipalID: "admin-1",
		Email:       "owner@brainworks.studio",
		DisplayName: "Studio Owner",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, profile.Role)
}

// Two concurrent first sign-ins must leave exactly one profile; the loser
// re-reads the winner's record instead of failing.
func TestResolveConcurrentFirstSignIn(t *testing.T) {
	store := NewInMemoryProfileStore()
	r := NewResolver(store)

	const attempts = 16
	profiles := make([]*models.User, attempts)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < attempts; i++ {
		i := i
		g.Go(func() (err error) {
			profiles[i], err = r.Resolve(ctx, testIdentity())
			return
		})
	}
	require.NoError(t, g.Wait())

	require.Equal(t, 1, store.Count())
	for _, p := range profiles {
		require.Equal(t, models.RoleClient, p.Role)
		require.Equal(t, "principal-1", p.Id)
	}
}

// A second account racing onto the same email hits the unique email index,
// not the id conflict clause. That is a user error, not a storage outage.
func TestCreateIfAbsentRejectsDuplicateEmail(t *testing.T) {
	store := NewInMemoryProfileStore()
	store.Seed(&models.User{
		Id:    "u1",
		Email: "jane@example.com",
		Role:  models.RoleClient,
	})

	_, err := store.CreateIfAbsent(context.Background(), &models.User{
		Id:    "u2",
		Email: "jane@example.com",
		Role:  models.RoleClient,
	})
	require.ErrorIs(t, err, errs.ErrValidation)
	require.NotErrorIs(t, err, errs.ErrStoreUnavailable)
	require.Equal(t, 1, store.Count())
}

func TestResolveRequiresPrincipalID(t *testing.T) {
	r := NewResolver(NewInMemoryProfileStore())

	_, err := r.Resolve(context.Background(), Identity{Email: "x@example.com"})
	require.Error(t, err)
}
