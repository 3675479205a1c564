package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryMatch struct {
	mu      sync.Mutex
	matches map[string]entity.Match
}

// NewMemoryMatchRepository - keeps matches in process memory. Stored values are copies.
func NewMemoryMatchRepository() MatchRepository {
	return &memoryMatch{
		matches: make(map[string]entity.Match),
	}
}

func (that *memoryMatch) CreateOrUpdate(_ context.Context, match *entity.Match) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.matches[match.ID] = copyMatch(match)

	return nil
}

func (that *memoryMatch) GetByID(_ context.Context, id string) (*entity.Match, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	match, ok := that.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrMatchNotFound, id)
	}

	cp := copyMatch(&match)

	return &cp, nil
}

func (that *memoryMatch) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.matches[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrMatchNotFound, id)
	}

	delete(that.matches, id)

	return nil
}

func copyMatch(match *entity.Match) entity.Match {
	cp := *match
	if match.State != nil {
		state := *match.State
		cp.State = &state
	}

	return cp
}
