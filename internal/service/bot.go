package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const DefaultBaseActDelay = 700 * time.Millisecond

// opportunity identifies one moment the bot is expected to act in.
type opportunity struct {
	phase entity.Phase
	round int
	step  int
}

// RandomBot readies whenever it is required to and occupies a uniformly random empty
// cell on its turn. Every action is held back by a jittered delay so a human can follow.
type RandomBot struct {
	mu sync.Mutex

	queue     *tictactoe.DefaultActionQueue
	rng       *rand.Rand
	baseDelay time.Duration

	current  opportunity
	armed    bool
	acted    bool
	deadline time.Duration
}

func NewRandomBot(queue *tictactoe.DefaultActionQueue, seed int64, baseDelay time.Duration) *RandomBot {
	return &RandomBot{
		queue:     queue,
		rng:       rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
		baseDelay: baseDelay,
	}
}

func (that *RandomBot) PlayerID() entity.PlayerID {
	return that.queue.PlayerID()
}

func (that *RandomBot) SetBaseActDelay(delay time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.baseDelay = delay
	// reschedule a pending action with the new delay
	that.armed = false
}

func (that *RandomBot) Act(state entity.State, now time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.expected(&state) {
		that.armed = false
		return
	}

	current := opportunity{phase: state.Phase, round: state.Round, step: state.Step}
	if !that.armed || that.current != current {
		that.current = current
		that.armed = true
		that.acted = false
		that.deadline = now + that.delay()
	}

	if that.acted || now < that.deadline {
		return
	}

	that.acted = true

	if state.Phase.IsLobby() {
		that.queue.Add(entity.Ready())
		return
	}

	that.queue.Add(entity.Occupy(that.pickCell(&state)))
}

// expected reports whether the logic is waiting for this bot right now.
func (that *RandomBot) expected(state *entity.State) bool {
	switch state.Phase {
	case entity.PhaseBeginning, entity.PhaseOutround:
		return state.RequiredReady.Contains(that.PlayerID())
	case entity.PhaseInround:
		return state.Turn() == that.PlayerID()
	default:
		return false
	}
}

// delay is uniform in [base/2, 3*base/2).
func (that *RandomBot) delay() time.Duration {
	if that.baseDelay <= 0 {
		return 0
	}

	return that.baseDelay/2 + time.Duration(that.rng.Int63n(int64(that.baseDelay)))
}

func (that *RandomBot) pickCell(state *entity.State) entity.Cell {
	availableCells := state.Board.EmptyCells()

	return availableCells[that.rng.Intn(len(availableCells))]
}
