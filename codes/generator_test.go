package codes

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainworksstudio2-dev/brain-works/errs"
)

var codeShape = regexp.MustCompile(`^BW-[A-Z0-9]{4}$`)

func TestGenerateShape(t *testing.T) {
	g := NewGenerator(func(ctx context.Context, code string) error {
		return nil
	})

	for i := 0; i < 100; i++ {
		code, err := g.Generate(context.Background())
		require.NoError(t, err)
		require.Regexp(t, codeShape, code)
	}
}

func TestGenerateNeverReturnsExistingCode(t *testing.T) {
	existing := make(map[string]bool)
	g := NewGenerator(func(ctx context.Context, code string) error {
		if existing[code] {
			return ErrTaken
		}
		existing[code] = true
		return nil
	})

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := g.Generate(context.Background())
		require.NoError(t, err)
		require.False(t, seen[code])
		seen[code] = true
	}
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	collisions := 0
	g := NewGenerator(func(ctx context.Context, code string) error {
		if collisions < MaxAttempts-1 {
			collisions++
			return ErrTaken
		}
		return nil
	})

	code, err := g.Generate(context.Background())
	require.NoError(t, err)
	require.Regexp(t, codeShape, code)
	require.Equal(t, MaxAttempts-1, collisions)
}

func TestGenerateExhaustsAfterBound(t *testing.T) {
	claims := 0
	g := NewGenerator(func(ctx context.Context, code string) error {
		claims++
		return ErrTaken
	})

	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, errs.ErrCodeSpaceExhausted)
	// Every collision spends a draw from the one budget; no draws beyond it.
	require.Equal(t, MaxAttempts, claims)
}

func TestGenerateSurfacesClaimError(t *testing.T) {
	boom := errors.New("store down")
	g := NewGenerator(func(ctx context.Context, code string) error {
		return boom
	})

	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, boom)
}
