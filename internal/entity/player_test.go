package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerID(t *testing.T) {
	t.Run("Accepts every seat", func(t *testing.T) {
		assert.Equal(t, PlayerID(0), NewPlayerID(0))
		assert.Equal(t, PlayerID(1), NewPlayerID(1))
	})

	t.Run("Panics out of range", func(t *testing.T) {
		assert.Panics(t, func() { NewPlayerID(PlayerCount) })
		assert.Panics(t, func() { NewPlayerID(-1) })
	})
}

func TestPlayer_Mark(t *testing.T) {
	x := NewPlayer(0, TypeLocalHuman)
	o := NewPlayer(1, TypeLocalAI)

	assert.Equal(t, PlayerX, x.Mark())
	assert.Equal(t, PlayerO, o.Mark())
	assert.Equal(t, PlayerID(1), x.ID.Other())
	assert.True(t, o.IsBot())
	assert.True(t, x.IsHuman())
}

func TestParsePlayerType(t *testing.T) {
	t.Run("Accepts aliases", func(t *testing.T) {
		for value, want := range map[string]PlayerType{
			"human":       TypeLocalHuman,
			"AI":          TypeLocalAI,
			" local-ai ":  TypeLocalAI,
			"remote":      TypeRemote,
			"local-human": TypeLocalHuman,
		} {
			got, err := ParsePlayerType(value)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Rejects unknown types", func(t *testing.T) {
		_, err := ParsePlayerType("alien")

		assert.ErrorIs(t, err, ErrUnknownPlayerType)
	})
}
