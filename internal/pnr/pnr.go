// Package pnr issues the 6-character confirmation codes assigned to
// confirmed bookings.
package pnr

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
)

// Alphabet excludes 0/O and 1/I so codes survive being read over the phone.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// maxAttempts bounds the collision retry loop. With 32^6 possible codes the
// bound is effectively unreachable; hitting it means the store is lying.
const maxAttempts = 10

// ErrExhausted is returned when maxAttempts consecutive draws collide.
// Callers must treat it as fatal for the operation and log it.
var ErrExhausted = errors.New("pnr generation exhausted retry budget")

// Exists answers whether a candidate code is already assigned.
type Exists func(ctx context.Context, code string) (bool, error)

type Generator struct {
	exists Exists
}

func NewGenerator(exists Exists) *Generator {
	return &Generator{exists: exists}
}

// Generate draws random codes until one is unused, retrying at most
// maxAttempts times.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := draw()
		if err != nil {
			return "", err
		}
		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check pnr uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}

func draw() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	code := make([]byte, codeLength)
	for i, b := range buf {
		code[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(code), nil
}
