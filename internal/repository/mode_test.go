package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

func TestModeRepository(t *testing.T) {
	t.Run("Defaults to with friend", func(t *testing.T) {
		ctx, st := suite.New(t)

		modeRepo := NewModeRepository(st.Storage)

		// When: nothing was saved yet
		mode, err := modeRepo.Load(ctx)

		// Then: the default mode is returned
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultMode, mode)
	})

	t.Run("Save and load", func(t *testing.T) {
		ctx, st := suite.New(t)

		modeRepo := NewModeRepository(st.Storage)

		// When: with computer is saved
		require.NoError(t, modeRepo.Save(ctx, entity.ModeWithComputer))

		// Then: it is stored as a gameMode record and loads back
		raw, err := st.Storage.Get(ctx, "ticTacToe").Result()
		require.NoError(t, err)
		assert.JSONEq(t, `{"gameMode":"withComputer"}`, raw)

		mode, err := modeRepo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeWithComputer, mode)
	})
}

func TestFileModeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to with friend without a file", func(t *testing.T) {
		// Given: a path that does not exist yet
		modeRepo := NewFileModeRepository(filepath.Join(t.TempDir(), "ticTacToe.json"))

		// When: loading the mode
		mode, err := modeRepo.Load(ctx)

		// Then: the default mode is returned
		require.NoError(t, err)
		assert.Equal(t, entity.ModeWithFriend, mode)
	})

	t.Run("Save and load", func(t *testing.T) {
		// Given: a file repository
		path := filepath.Join(t.TempDir(), "ticTacToe.json")
		modeRepo := NewFileModeRepository(path)

		// When: saving with computer
		require.NoError(t, modeRepo.Save(ctx, entity.ModeWithComputer))

		// Then: the file holds the record and loads back
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"gameMode":"withComputer"}`, string(data))

		mode, err := modeRepo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.ModeWithComputer, mode)
	})

	t.Run("Rejects unknown modes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ticTacToe.json")
		modeRepo := NewFileModeRepository(path)

		err := modeRepo.Save(ctx, entity.Mode("online"))

		require.ErrorIs(t, err, apperror.ErrInvalidMode)
		assert.NoFileExists(t, path)
	})

	t.Run("Reports a corrupted record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ticTacToe.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"gameMode":"playerWithComputer"}`), 0o600))

		_, err := NewFileModeRepository(path).Load(ctx)

		require.ErrorIs(t, err, apperror.ErrInvalidMode)
	})
}
