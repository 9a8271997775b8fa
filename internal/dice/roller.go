// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dice

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// Roller is the interface for random number generation in the dice package.
// Implementations must be safe for concurrent use.
type Roller interface {
	// Roll returns a random number from 1 to size (inclusive).
	// Returns an error if size <= 0.
	Roll(size int) (int, error)

	// RollN rolls count dice of the given size. ctx allows a caller on the
	// world executor to cancel a long batch roll at a suspension point
	// (spec §5); CryptoRoller and SeededRoller both check ctx.Err() between
	// individual rolls.
	// Returns an error if size <= 0 or count < 0.
	RollN(ctx context.Context, count, size int) ([]int, error)
}

// CryptoRoller implements Roller using crypto/rand for cryptographically
// secure randomness. Used outside of the deterministic core path — e.g. a
// front-end's "flavor" rolls that must never be reproducible. Gameplay-
// affecting rolls use SeededRoller instead (see seeded.go) so that the
// non-LLM parts of the engine are deterministic given a fixed world seed
// and action trace (spec §9).
type CryptoRoller struct{}

// Roll returns a cryptographically secure random number from 1 to size.
func (c *CryptoRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("dice: invalid die size %d", size)
	}

	// crypto/rand.Int returns [0, max), so we use size as max to get [0, size-1]
	// then add 1 to get [1, size]
	n, err := rand.Int(rand.Reader, big.NewInt(int64(size)))
	if err != nil {
		return 0, fmt.Errorf("dice: crypto/rand error: %w", err)
	}

	return int(n.Int64()) + 1, nil
}

// RollN rolls multiple dice using crypto/rand.
func (c *CryptoRoller) RollN(ctx context.Context, count, size int) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dice: invalid die size %d", size)
	}
	if count < 0 {
		return nil, fmt.Errorf("dice: invalid die count %d", count)
	}

	results := make([]int, count)
	for i := 0; i < count; i++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("dice: %w", err)
			}
		}
		roll, err := c.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = roll
	}
	return results, nil
}

// DefaultRoller is the default roller using crypto/rand.
var DefaultRoller Roller = &CryptoRoller{}

// SetDefaultRoller allows changing the default roller (primarily for testing).
// This function is not safe for concurrent use with other dice operations.
func SetDefaultRoller(r Roller) {
	DefaultRoller = r
}
