// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
)

func TestMockRollerCyclesResults(t *testing.T) {
	m := dice.NewMockRoller(1, 2, 20)

	v, err := m.Roll(20)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = m.Roll(20)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = m.Roll(20)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	// cycles back to the beginning
	v, err = m.Roll(20)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestMockRollerRejectsOutOfRangeResult(t *testing.T) {
	m := dice.NewMockRoller(7)
	_, err := m.Roll(6)
	assert.Error(t, err)
}

func TestMockRollerRollN(t *testing.T) {
	m := dice.NewMockRoller(3, 4, 5, 6)
	results, err := m.RollN(context.Background(), 4, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5, 6}, results)
}

func TestMockRollerReset(t *testing.T) {
	m := dice.NewMockRoller(9, 9, 9)
	_, _ = m.Roll(20)
	m.Reset()
	v, err := m.Roll(20)
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestMockRollerPanicsOnEmptyResults(t *testing.T) {
	assert.Panics(t, func() {
		dice.NewMockRoller()
	})
}
