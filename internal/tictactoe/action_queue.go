package tictactoe

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// ActionQueue is the per-player mailbox drained by Logic.
type ActionQueue interface {
	PlayerID() entity.PlayerID
	// Pop returns the oldest action, false when the queue is empty. It never blocks.
	Pop() (entity.Action, bool)
}

// DefaultActionQueue is an unbounded FIFO safe for one producer and one consumer
// on different goroutines.
type DefaultActionQueue struct {
	mu       sync.Mutex
	playerID entity.PlayerID
	actions  []entity.Action
}

func NewDefaultActionQueue(playerID entity.PlayerID) *DefaultActionQueue {
	return &DefaultActionQueue{
		playerID: playerID,
	}
}

func (that *DefaultActionQueue) PlayerID() entity.PlayerID {
	return that.playerID
}

func (that *DefaultActionQueue) Add(action entity.Action) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.actions = append(that.actions, action)
}

func (that *DefaultActionQueue) Pop() (entity.Action, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.actions) == 0 {
		return entity.Action{}, false
	}

	action := that.actions[0]
	that.actions = that.actions[1:]
	if len(that.actions) == 0 {
		that.actions = nil
	}

	return action, true
}

func (that *DefaultActionQueue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.actions)
}
