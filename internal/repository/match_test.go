package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

func TestMatchRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage, time.Minute)

	// Given: a match with a move on the board
	match := entity.NewMatch("123", entity.ModeWithComputer)
	require.NoError(t, match.State.ApplyMove(5, entity.Circle))

	// When: CreateOrUpdate is called
	err := matchRepo.CreateOrUpdate(ctx, match)

	// Then: no error is returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "match:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// Given: a stored match in progress
		match := entity.NewMatch("123", entity.ModeWithFriend)
		require.NoError(t, match.State.ApplyMove(1, entity.Circle))
		require.NoError(t, match.State.ApplyMove(5, entity.Cross))
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

		// When: GetByID is called with the existing ID
		retrievedMatch, err := matchRepo.GetByID(ctx, match.ID)

		// Then: the retrieved match equals the saved one
		require.NoError(t, err)
		assert.Equal(t, match, retrievedMatch)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// When: GetByID is called with a non-existent ID
		retrievedMatch, err := matchRepo.GetByID(ctx, "9999999")

		// Then: ErrMatchNotFound is returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		assert.Nil(t, retrievedMatch)
	})

	t.Run("GetByID_Corrupted", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// Given: a stored match where both players hold cell 1
		raw := `{"id":"bad","game_mode":"withFriend","state":{"circle":[1],"cross":[1],"player_turn":"circle"},"status":"ongoing"}`
		require.NoError(t, st.Storage.Set(ctx, "match:bad", raw, 0).Err())

		// When: GetByID is called
		_, err := matchRepo.GetByID(ctx, "bad")

		// Then: the corruption is reported
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// Given: a stored match
		match := entity.NewMatch("123", entity.ModeWithFriend)
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

		// When: DeleteByID is called with the existing ID
		err := matchRepo.DeleteByID(ctx, match.ID)

		// Then: the match is gone
		require.NoError(t, err)

		_, err = matchRepo.GetByID(ctx, match.ID)
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage, 0)

		// When: DeleteByID is called with a non-existent ID
		err := matchRepo.DeleteByID(ctx, "9999999")

		// Then: ErrMatchNotFound is returned
		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})
}
