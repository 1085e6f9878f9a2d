package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file overriding the match section
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
redis:
  host: redis
  port: "6380"
match:
  rounds: 3
  players: [ai, ai]
  tick-interval: 10ms
  bot-delay: 1s
  seed: 99
`)

		// When: loading it
		conf := MustLoad(path)

		// Then: file values win and the rest falls back to defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 3, conf.Match.Rounds)
		assert.Equal(t, []string{"ai", "ai"}, conf.Match.Players)
		assert.Equal(t, 10*time.Millisecond, conf.Match.TickInterval)
		assert.Equal(t, time.Second, conf.Match.BotDelay)
		assert.Equal(t, int64(99), conf.Match.Seed)
		assert.Equal(t, "@every 10s", conf.Match.SnapshotSchedule)
	})

	t.Run("Panics when the file is missing", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
	})
}

func TestMatch_PlayerTypes(t *testing.T) {
	t.Run("Maps aliases in seat order", func(t *testing.T) {
		match := Match{Players: []string{"human", "ai"}}

		types, err := match.PlayerTypes()

		require.NoError(t, err)
		assert.Equal(t, [entity.PlayerCount]entity.PlayerType{entity.TypeLocalHuman, entity.TypeLocalAI}, types)
	})

	t.Run("Rejects the wrong number of seats", func(t *testing.T) {
		match := Match{Players: []string{"human"}}

		_, err := match.PlayerTypes()

		assert.ErrorIs(t, err, ErrPlayerCount)
	})

	t.Run("Rejects unknown types", func(t *testing.T) {
		match := Match{Players: []string{"human", "robot"}}

		_, err := match.PlayerTypes()

		assert.ErrorIs(t, err, entity.ErrUnknownPlayerType)
	})

	t.Run("Rejects remote seats", func(t *testing.T) {
		// Given: a remote player nobody can act for
		match := Match{Players: []string{"remote", "ai"}}

		// When: mapping the seats
		_, err := match.PlayerTypes()

		// Then: it points at the missing dedicated mode
		assert.ErrorIs(t, err, apperror.ErrDedicatedNotImplemented)
	})
}

func TestMatch_SeedOrNow(t *testing.T) {
	now := time.Unix(0, 12345)

	assert.Equal(t, int64(7), (&Match{Seed: 7}).SeedOrNow(now))
	assert.Equal(t, int64(12345), (&Match{}).SeedOrNow(now))
}
