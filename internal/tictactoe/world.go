package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// AI produces actions for one local-ai player by looking at the state once per tick.
type AI interface {
	PlayerID() entity.PlayerID
	// Act may enqueue actions for the player. now is the time elapsed since the first tick.
	Act(state entity.State, now time.Duration)
	SetBaseActDelay(delay time.Duration)
}

type WorldOption func(*World)

// WithTimeSource replaces time.Now as the source of the world clock.
func WithTimeSource(source func() time.Time) WorldOption {
	return func(world *World) {
		world.timeSource = source
	}
}

// World drives a match one tick at a time: clock, then every AI, then the logic.
type World struct {
	state      entity.State
	logic      *Logic
	ais        []AI
	clock      *Clock
	timeSource func() time.Time
}

// NewWorld panics unless there is exactly one AI per local-ai player.
func NewWorld(state entity.State, logic *Logic, ais []AI, opts ...WorldOption) *World {
	aiPlayers := 0
	for _, player := range state.Players {
		if player.IsBot() {
			aiPlayers++
		}
	}

	if aiPlayers != len(ais) {
		panic(fmt.Sprintf("%d AIs for %d local-ai players", len(ais), aiPlayers))
	}

	for _, ai := range ais {
		id := ai.PlayerID()
		if id.Index() < 0 || id.Index() >= len(state.Players) || !state.Player(id).IsBot() {
			panic(fmt.Sprintf("AI for player %d does not control a local-ai player", id))
		}
	}

	world := &World{
		state:      state,
		logic:      logic,
		ais:        ais,
		timeSource: time.Now,
	}

	for _, opt := range opts {
		opt(world)
	}

	return world
}

func (that *World) Advance() {
	if that.clock == nil {
		that.clock = NewClock(that.timeSource)
	}

	that.clock.Advance()

	for _, ai := range that.ais {
		ai.Act(that.state.Clone(), that.clock.Now())
	}

	that.logic.Advance(&that.state)
}

// State returns a copy of the current state.
func (that *World) State() entity.State {
	return that.state.Clone()
}

func (that *World) AIs() []AI {
	return that.ais
}

// Now is zero until the first tick.
func (that *World) Now() time.Duration {
	if that.clock == nil {
		return 0
	}

	return that.clock.Now()
}
