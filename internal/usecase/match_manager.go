package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const subscriberBuffer = 8

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
}

type resultRepo interface {
	Append(ctx context.Context, result *entity.MatchResult) error
	List(ctx context.Context, limit int64) ([]entity.MatchResult, error)
}

type MatchOptions struct {
	PlayerTypes [entity.PlayerCount]entity.PlayerType
	Rounds      int
	BotDelay    time.Duration
	// Seed feeds the bots; bot i uses Seed+i.
	Seed int64
	// TimeSource defaults to time.Now.
	TimeSource func() time.Time
}

type subscriber struct {
	ch        chan entity.Match
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() { close(that.ch) })
}

// MatchManager hosts one match. It is the only writer of the match state: ticks and
// human submissions are serialized by mu, readers get copies.
type MatchManager struct {
	logger     *slog.Logger
	matchRepo  matchRepo
	resultRepo resultRepo
	timeSource func() time.Time

	mu        sync.RWMutex
	id        string
	world     *tictactoe.World
	queues    [entity.PlayerCount]*tictactoe.DefaultActionQueue
	updatedAt time.Time
	recorded  bool
	recording bool

	subsMu sync.Mutex
	subs   map[*subscriber]struct{}
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepo, resultRepo resultRepo, opts MatchOptions) *MatchManager {
	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = entity.DefaultRounds
	}

	timeSource := opts.TimeSource
	if timeSource == nil {
		timeSource = time.Now
	}

	var (
		players     [entity.PlayerCount]entity.Player
		queues      [entity.PlayerCount]*tictactoe.DefaultActionQueue
		logicQueues [entity.PlayerCount]tictactoe.ActionQueue
		ais         []tictactoe.AI
	)

	for i, playerType := range opts.PlayerTypes {
		id := entity.NewPlayerID(i)
		players[i] = entity.NewPlayer(id, playerType)
		queues[i] = tictactoe.NewDefaultActionQueue(id)
		logicQueues[i] = queues[i]

		if players[i].IsBot() {
			ais = append(ais, service.NewRandomBot(queues[i], opts.Seed+int64(i), opts.BotDelay))
		}
	}

	world := tictactoe.NewWorld(
		entity.NewState(players, rounds),
		tictactoe.NewLogic(logicQueues),
		ais,
		tictactoe.WithTimeSource(timeSource),
	)

	return &MatchManager{
		logger:     logger.With("component", "match"),
		matchRepo:  matchRepo,
		resultRepo: resultRepo,
		timeSource: timeSource,

		id:        uuid.NewString(),
		world:     world,
		queues:    queues,
		updatedAt: timeSource(),

		subs: make(map[*subscriber]struct{}),
	}
}

func (that *MatchManager) ID() string {
	return that.id
}

// Advance runs one tick. Once the match is over the final state is stored and a
// result is appended to the history, exactly once per successful store.
func (that *MatchManager) Advance(ctx context.Context) error {
	that.mu.Lock()

	before := that.world.State()
	that.world.Advance()
	after := that.world.State()

	changed := !before.Equal(&after)
	if changed {
		that.updatedAt = that.timeSource()
		that.logTransition(&before, &after)
	}

	finished := after.IsGameOver() && !that.recorded && !that.recording
	if finished {
		that.recording = true
	}

	match := that.snapshotLocked()
	that.mu.Unlock()

	if changed {
		that.publish(match)
	}

	if !finished {
		return nil
	}

	err := that.record(ctx, &match)

	// a failed record is retried on the next tick
	that.mu.Lock()
	that.recording = false
	that.recorded = err == nil
	that.mu.Unlock()

	return err
}

// Run ticks until the match is over and recorded, or ctx is done. Storage errors are
// logged and the record is retried on the next tick.
func (that *MatchManager) Run(ctx context.Context, interval time.Duration) error {
	log := that.logger.With("method", "Run")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("match started", "matchID", that.id, "tick", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("match loop stopped", "matchID", that.id)
			return nil
		case <-ticker.C:
			if err := that.Advance(ctx); err != nil {
				log.Error("failed to record match", "matchID", that.id, "error", err)
				continue
			}

			if that.isRecorded() {
				log.Info("match finished", "matchID", that.id)
				return nil
			}
		}
	}
}

func (that *MatchManager) IsGameOver() bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	state := that.world.State()

	return state.IsGameOver()
}

func (that *MatchManager) isRecorded() bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.recorded
}

func (that *MatchManager) Snapshot() entity.Match {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.snapshotLocked()
}

// Submit queues an action for a human player. It is only accepted when the logic can
// apply it as is, and a player may have one action in flight at a time.
func (that *MatchManager) Submit(playerIdx int, action entity.Action) error {
	if playerIdx < 0 || playerIdx >= entity.PlayerCount {
		return fmt.Errorf("%w: %d", apperror.ErrUnknownPlayer, playerIdx)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	playerID := entity.NewPlayerID(playerIdx)
	state := that.world.State()

	if err := validateAction(&state, playerID, action); err != nil {
		return err
	}

	queue := that.queues[playerID]
	if queue.Len() > 0 {
		return fmt.Errorf("%w: player %d", apperror.ErrActionPending, playerID)
	}

	queue.Add(action)

	that.logger.Debug("action queued", "method", "Submit", "player", playerID, "action", action.String())

	return nil
}

func validateAction(state *entity.State, playerID entity.PlayerID, action entity.Action) error {
	if !state.Player(playerID).IsHuman() {
		return fmt.Errorf("%w: player %d", apperror.ErrNotHumanPlayer, playerID)
	}

	if state.IsGameOver() {
		return apperror.ErrGameFinished
	}

	switch action.Kind {
	case entity.ActionReady:
		if !state.Phase.IsLobby() || !state.RequiredReady.Contains(playerID) {
			return fmt.Errorf("%w: %s in %s", apperror.ErrUnexpectedAction, action, state.Phase)
		}

		return nil
	case entity.ActionOccupy:
		if !action.Cell.Valid() {
			return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, action.Cell)
		}

		if err := validateTurn(state, playerID, action); err != nil {
			return err
		}

		if _, ok := state.Board.Get(action.Cell); ok {
			return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, action.Cell)
		}

		return nil
	case entity.ActionSurrender:
		return validateTurn(state, playerID, action)
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnexpectedAction, action.Kind)
	}
}

func validateTurn(state *entity.State, playerID entity.PlayerID, action entity.Action) error {
	if state.Phase != entity.PhaseInround {
		return fmt.Errorf("%w: %s in %s", apperror.ErrUnexpectedAction, action, state.Phase)
	}

	if state.Turn() != playerID {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// SetBotDelay changes the pacing of every bot in the match.
func (that *MatchManager) SetBotDelay(delay time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, ai := range that.world.AIs() {
		ai.SetBaseActDelay(delay)
	}

	that.logger.Info("bot delay changed", "method", "SetBotDelay", "delay", delay)
}

// Persist stores the current snapshot.
func (that *MatchManager) Persist(ctx context.Context) error {
	match := that.Snapshot()

	if err := that.matchRepo.CreateOrUpdate(ctx, &match); err != nil {
		return fmt.Errorf("failed to persist match: %w", err)
	}

	return nil
}

func (that *MatchManager) Results(ctx context.Context, limit int64) ([]entity.MatchResult, error) {
	results, err := that.resultRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

// Subscribe returns a channel receiving a snapshot after every tick that changed the
// state. Subscribers that fall behind are dropped and their channel is closed.
func (that *MatchManager) Subscribe() (<-chan entity.Match, func()) {
	sub := &subscriber{ch: make(chan entity.Match, subscriberBuffer)}

	that.subsMu.Lock()
	that.subs[sub] = struct{}{}
	that.subsMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			that.subsMu.Lock()
			delete(that.subs, sub)
			that.subsMu.Unlock()
			sub.close()
		})
	}

	return sub.ch, unsubscribe
}

func (that *MatchManager) publish(match entity.Match) {
	that.subsMu.Lock()
	defer that.subsMu.Unlock()

	for sub := range that.subs {
		select {
		case sub.ch <- match:
		default:
			// drop slow subscriber
			sub.close()
			delete(that.subs, sub)
		}
	}
}

func (that *MatchManager) record(ctx context.Context, match *entity.Match) error {
	log := that.logger.With("method", "record", "matchID", match.ID)

	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to store final match: %w", err)
	}

	result := entity.NewMatchResult(match.ID, match.State, match.UpdatedAt)
	if err := that.resultRepo.Append(ctx, &result); err != nil {
		return fmt.Errorf("failed to append match result: %w", err)
	}

	log.Info("match result recorded", "wins", result.Wins)

	return nil
}

func (that *MatchManager) snapshotLocked() entity.Match {
	return entity.Match{
		ID:        that.id,
		State:     that.world.State(),
		UpdatedAt: that.updatedAt,
	}
}

func (that *MatchManager) logTransition(before, after *entity.State) {
	log := that.logger.With("method", "Advance", "matchID", that.id, "round", after.Round)

	if before.Phase == after.Phase && before.Round == after.Round {
		return
	}

	switch after.Phase {
	case entity.PhaseInround:
		log.Info("round started", "opening", after.Turn())
	case entity.PhaseOutround:
		switch {
		case after.WinLine != nil:
			log.Info("round won", "winner", before.Turn(), "line", after.WinLine.String())
		case before.Players != after.Players:
			log.Info("round surrendered", "winner", before.Turn().Other())
		default:
			log.Info("round drawn")
		}
	}
}
