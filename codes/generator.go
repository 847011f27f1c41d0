// Package codes generates short human-readable booking codes ("BW-XXXX").
// The suffix space is finite (~1.68M combinations), so every candidate must
// be claimed against existing codes and redrawn on collision, up to a bound.
package codes

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/brainworksstudio2-dev/brain-works/errs"
)

const (
	prefix    = "BW-"
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLen = 4

	// MaxAttempts bounds the redraw loop. Past it the generator reports
	// errs.ErrCodeSpaceExhausted instead of ever returning a duplicate.
	MaxAttempts = 5
)

// ErrTaken is the claim's collision signal: the candidate code is already in
// use, whether seen in a pre-check or lost to a concurrent insert. Either way
// it spends one attempt of the same budget.
var ErrTaken = errors.New("booking code already taken")

// ClaimFunc atomically takes a candidate code for the caller. It returns
// ErrTaken when the code is unavailable and any other error to abort.
type ClaimFunc func(ctx context.Context, code string) error

// Generator draws uniformly random codes and retries claims on collision.
type Generator struct {
	claim ClaimFunc
}

func NewGenerator(claim ClaimFunc) *Generator {
	return &Generator{claim: claim}
}

// Generate draws codes until one is claimed, with at most MaxAttempts draws
// in total. Collisions reported by the claim (including an insert that lost
// to a concurrent writer) each consume one attempt.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		code, err := draw()
		if err != nil {
			return "", err
		}
		claimErr := g.claim(ctx, code)
		if claimErr == nil {
			return code, nil
		}
		if errors.Is(claimErr, ErrTaken) {
			continue
		}
		return "", claimErr
	}
	return "", errs.ErrCodeSpaceExhausted
}

func draw() (string, error) {
	buf := make([]byte, suffixLen)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw booking code: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return prefix + string(buf), nil
}
