package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type modeRepo interface {
	Load(ctx context.Context) (entity.Mode, error)
	Save(ctx context.Context, mode entity.Mode) error
}

type moveSelector interface {
	Decide(state *entity.GameState, player entity.Player) (service.Decision, error)
}

// Turn is the outcome of one human move and, against the computer, its reply.
type Turn struct {
	Match        *entity.Match `json:"match"`
	Player       entity.Player `json:"player"`
	Cell         entity.Cell   `json:"cell"`
	ComputerCell entity.Cell   `json:"computerCell,omitempty"`
}

// MatchManager owns every match in flight. Moves on one match are serialised:
// while a move is being processed (including the computer's thinking time)
// input for that match is disabled.
type MatchManager struct {
	logger *slog.Logger

	matchRepo matchRepo
	modeRepo  modeRepo
	selector  moveSelector

	thinkDelay time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepo, modeRepo modeRepo, selector moveSelector, thinkDelay time.Duration) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match_manager"),

		matchRepo: matchRepo,
		modeRepo:  modeRepo,
		selector:  selector,

		thinkDelay: thinkDelay,
		pending:    make(map[string]struct{}),
	}
}

func (that *MatchManager) GetMode(ctx context.Context) (entity.Mode, error) {
	mode, err := that.modeRepo.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load mode: %w", err)
	}

	return mode, nil
}

func (that *MatchManager) SetMode(ctx context.Context, mode entity.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	if err := that.modeRepo.Save(ctx, mode); err != nil {
		return fmt.Errorf("failed to save mode: %w", err)
	}

	that.logger.Info("mode selected", "mode", mode)

	return nil
}

// ToggleMode switches between playing with a friend and with the computer and persists the choice.
func (that *MatchManager) ToggleMode(ctx context.Context) (entity.Mode, error) {
	mode, err := that.GetMode(ctx)
	if err != nil {
		return "", err
	}

	mode = mode.Toggle()
	if err = that.SetMode(ctx, mode); err != nil {
		return "", err
	}

	return mode, nil
}

// NewMatch starts a match in the given mode, or in the saved mode when mode is empty.
func (that *MatchManager) NewMatch(ctx context.Context, mode entity.Mode) (*entity.Match, error) {
	if mode == "" {
		saved, err := that.GetMode(ctx)
		if err != nil {
			return nil, err
		}
		mode = saved
	}

	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	match := entity.NewMatch(pkg.GenerateMatchID(), mode)
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	that.logger.Info("match created", "matchID", match.ID, "mode", mode)

	return match, nil
}

func (that *MatchManager) GetMatch(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// MakeTurn plays cell for the player to move. An empty player means whoever's turn it is.
// Against the computer, the reply is chosen after the thinking delay and applied in the same call.
func (that *MatchManager) MakeTurn(ctx context.Context, id string, player entity.Player, cell entity.Cell) (*Turn, error) {
	if !that.acquire(id) {
		return nil, apperror.ErrInputDisabled
	}
	defer that.release(id)

	log := that.logger.With("method", "MakeTurn", "matchID", id)

	match, err := that.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = match.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if player == "" {
		player = match.State.Turn
	}

	if err = that.confirmHumanTurn(match, player); err != nil {
		return nil, err
	}

	if err = match.State.ApplyMove(cell, player); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}
	match.UpdateStatus()

	log.Debug("player made a turn", "player", player, "cell", cell)

	turn := &Turn{Match: match, Player: player, Cell: cell}

	if match.IsComputerTurn() {
		if turn.ComputerCell, err = that.playComputer(ctx, match); err != nil {
			return nil, err
		}
	}

	if match.IsFinished() {
		if err = that.finish(ctx, match); err != nil {
			return nil, err
		}

		return turn, nil
	}

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return turn, nil
}

// Abandon drops a match that will not be finished.
func (that *MatchManager) Abandon(ctx context.Context, id string) error {
	if !that.acquire(id) {
		return apperror.ErrInputDisabled
	}
	defer that.release(id)

	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to abandon match: %w", err)
	}

	that.logger.Info("match abandoned", "matchID", id)

	return nil
}

func (that *MatchManager) confirmHumanTurn(match *entity.Match, player entity.Player) error {
	if !player.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if player != match.State.Turn {
		return fmt.Errorf("%w: %s is to move", apperror.ErrNotYourTurn, match.State.Turn)
	}

	if match.IsWithComputer() && player == match.Computer {
		return fmt.Errorf("%w: %s is played by the computer", apperror.ErrNotYourTurn, player)
	}

	return nil
}

func (that *MatchManager) playComputer(ctx context.Context, match *entity.Match) (entity.Cell, error) {
	if err := that.think(ctx); err != nil {
		return 0, fmt.Errorf("computer turn interrupted: %w", err)
	}

	decision, err := that.selector.Decide(match.State, match.Computer)
	if err != nil {
		return 0, fmt.Errorf("failed to select computer move: %w", err)
	}

	if err = match.State.ApplyMove(decision.Cell, match.Computer); err != nil {
		return 0, fmt.Errorf("failed to make computer turn: %w", err)
	}
	match.UpdateStatus()

	that.logger.Debug("computer made a turn", "matchID", match.ID, "cell", decision.Cell, "strategy", decision.Strategy)

	return decision.Cell, nil
}

func (that *MatchManager) think(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// finish stores the final state and then removes the match. A failed delete leaves the
// match stored as finished, so no further move is accepted on it.
func (that *MatchManager) finish(ctx context.Context, match *entity.Match) error {
	log := that.logger.With("method", "finish", "matchID", match.ID)

	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to finish match: %w", err)
	}

	if err := that.matchRepo.DeleteByID(ctx, match.ID); err != nil {
		log.Error("failed to delete match", "error", err)
	}

	log.Info("match finished", "winner", match.Winner)

	return nil
}

func (that *MatchManager) acquire(id string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, busy := that.pending[id]; busy {
		return false
	}
	that.pending[id] = struct{}{}

	return true
}

func (that *MatchManager) release(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.pending, id)
}
