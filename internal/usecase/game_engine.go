package usecase

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

// DefaultComputerDelay is how long the computer waits before replying, so the human sees their own mark first.
const DefaultComputerDelay = 500 * time.Millisecond

type movePolicy interface {
	ChooseCell(board entity.Board) (int, bool)
}

// Scheduler runs f once, after d has passed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Observer receives a snapshot after every change of the engine state.
type Observer func(snapshot entity.Snapshot)

type Option func(*GameEngine)

func WithScheduler(scheduler Scheduler) Option {
	return func(that *GameEngine) {
		that.scheduler = scheduler
	}
}

func WithComputerDelay(delay time.Duration) Option {
	return func(that *GameEngine) {
		that.delay = delay
	}
}

func WithMode(mode entity.Mode) Option {
	return func(that *GameEngine) {
		if mode.IsValid() {
			that.mode = mode
		}
	}
}

// GameEngine owns the current match, the score ledger and the game mode.
// Invalid commands are ignored: every command returns the resulting snapshot and never fails.
type GameEngine struct {
	logger    *slog.Logger
	policy    movePolicy
	scheduler Scheduler
	delay     time.Duration

	mu     sync.Mutex
	game   entity.Game
	scores entity.Scores
	mode   entity.Mode
	// match grows on every reset; a computer reply only applies to the match it was scheduled in.
	match   uint64
	pending bool

	// notifyMu serializes commands together with their notification, so observers see
	// snapshots in the order they were produced. Lock order is notifyMu, then mu.
	notifyMu       sync.Mutex
	observersMu    sync.RWMutex
	observers      map[uint64]Observer
	nextObserverID uint64
}

func NewGameEngine(logger *slog.Logger, policy movePolicy, opts ...Option) *GameEngine {
	engine := &GameEngine{
		logger:    logger.With("component", "engine"),
		policy:    policy,
		scheduler: timerScheduler{},
		delay:     DefaultComputerDelay,
		game:      tictactoe.NewGame(),
		mode:      entity.HumanVsHuman,
		observers: make(map[uint64]Observer),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Snapshot returns the current state without changing it.
func (that *GameEngine) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Subscribe registers observer and returns a function that removes it.
// Observers are called synchronously. They may read Snapshot but must not issue engine commands from the callback.
func (that *GameEngine) Subscribe(observer Observer) func() {
	that.observersMu.Lock()
	id := that.nextObserverID
	that.nextObserverID++
	that.observers[id] = observer
	that.observersMu.Unlock()

	return func() {
		that.observersMu.Lock()
		delete(that.observers, id)
		that.observersMu.Unlock()
	}
}

// MakeTurn places the current mark on cell for the person playing.
// Against the computer the human mark is the only one a person can place; the reply is scheduled.
func (that *GameEngine) MakeTurn(cell int) entity.Snapshot {
	log := that.logger.With("method", "MakeTurn", "cell", cell)

	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	that.mu.Lock()

	if that.mode.IsWithBot() && that.game.Turn != entity.HumanMark {
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		log.Debug("turn ignored", "error", apperror.ErrNotYourTurn)
		return snapshot
	}

	if err := that.applyTurnLocked(cell); err != nil {
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		log.Debug("turn ignored", "error", err)
		return snapshot
	}

	if that.mode.IsWithBot() && that.game.Outcome.IsOngoing() {
		that.scheduleComputerTurnLocked()
	}

	return that.commitLocked()
}

// Reset starts a new match with X to move. Scores are kept.
func (that *GameEngine) Reset() entity.Snapshot {
	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	that.mu.Lock()
	that.resetLocked()

	return that.commitLocked()
}

// ResetScores clears the score ledger and starts a new match.
func (that *GameEngine) ResetScores() entity.Snapshot {
	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	that.mu.Lock()
	that.scores = entity.Scores{}
	that.resetLocked()

	that.logger.Info("scores reset")

	return that.commitLocked()
}

// SetMode switches the game mode and starts a new match. Unknown modes are ignored.
func (that *GameEngine) SetMode(mode entity.Mode) entity.Snapshot {
	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	that.mu.Lock()

	if !mode.IsValid() {
		snapshot := that.snapshotLocked()
		that.mu.Unlock()

		that.logger.Debug("mode ignored", "mode", mode, "error", entity.ErrUnknownMode)
		return snapshot
	}

	that.setModeLocked(mode)

	return that.commitLocked()
}

// ToggleMode flips between human vs human and human vs computer.
func (that *GameEngine) ToggleMode() entity.Snapshot {
	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	that.mu.Lock()
	that.setModeLocked(that.mode.Toggle())

	return that.commitLocked()
}

func (that *GameEngine) setModeLocked(mode entity.Mode) {
	that.mode = mode
	that.resetLocked()

	that.logger.Info("mode changed", "mode", mode)
}

func (that *GameEngine) scheduleComputerTurnLocked() {
	match := that.match
	that.pending = true

	that.scheduler.AfterFunc(that.delay, func() {
		that.makeComputerTurn(match)
	})
}

// makeComputerTurn is the deferred reply. It does nothing when the match it was scheduled for is gone.
func (that *GameEngine) makeComputerTurn(match uint64) {
	log := that.logger.With("method", "makeComputerTurn")

	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	that.mu.Lock()

	if match != that.match || !that.game.Outcome.IsOngoing() || that.game.Turn != entity.ComputerMark {
		that.mu.Unlock()

		log.Debug("stale computer turn dropped")
		return
	}

	that.pending = false

	cell, ok := that.policy.ChooseCell(that.game.Board)
	if !ok {
		log.Debug("computer has no move")
		that.commitLocked()
		return
	}

	if err := that.applyTurnLocked(cell); err != nil {
		log.Error("computer chose an illegal cell", "cell", cell, "error", err)
	}

	that.commitLocked()
}

// applyTurnLocked plays cell and records a win in the score ledger.
func (that *GameEngine) applyTurnLocked(cell int) error {
	game, err := tictactoe.MakeTurn(that.game, cell)
	if err != nil {
		return err
	}

	that.game = game

	switch game.Outcome.Status {
	case entity.StatusWon:
		that.scores = that.scores.Add(game.Outcome.Winner)
		that.logger.Info("match won", "winner", game.Outcome.Winner, "scores", that.scores)
	case entity.StatusDrawn:
		that.logger.Info("match drawn", "scores", that.scores)
	}

	return nil
}

func (that *GameEngine) resetLocked() {
	that.match++
	that.pending = false
	that.game = tictactoe.NewGame()
}

func (that *GameEngine) snapshotLocked() entity.Snapshot {
	return entity.Snapshot{
		Game:             that.game,
		Scores:           that.scores,
		Mode:             that.mode,
		ComputerThinking: that.pending,
	}
}

// commitLocked releases mu and hands the new snapshot to every observer.
// The caller holds notifyMu until the observers are done.
func (that *GameEngine) commitLocked() entity.Snapshot {
	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.observersMu.RLock()
	observers := make([]Observer, 0, len(that.observers))
	for _, observer := range that.observers {
		observers = append(observers, observer)
	}
	that.observersMu.RUnlock()

	for _, observer := range observers {
		observer(snapshot)
	}

	return snapshot
}
