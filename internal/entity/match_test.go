package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

func TestNewMatch(t *testing.T) {
	t.Run("With friend", func(t *testing.T) {
		// When: a match between two humans is created
		match := NewMatch("123", ModeWithFriend)

		// Then: nobody is controlled by the computer
		expected := &Match{ID: "123", Mode: ModeWithFriend, State: NewGameState(), Status: StatusOngoing}
		require.Equal(t, expected, match)
		assert.False(t, match.IsComputerTurn())
	})

	t.Run("With computer", func(t *testing.T) {
		// When: a match against the computer is created
		match := NewMatch("123", ModeWithComputer)

		// Then: the computer plays cross and circle opens
		assert.Equal(t, Cross, match.Computer)
		assert.Equal(t, Circle, match.State.Turn)
		assert.False(t, match.IsComputerTurn())
	})
}

func TestMatch_UpdateStatus(t *testing.T) {
	t.Run("Win finishes the match", func(t *testing.T) {
		// Given: cross holds the middle column
		match := NewMatch("123", ModeWithFriend)
		match.State = &GameState{Circle: NewCellSet(1, 3), Cross: NewCellSet(2, 5, 8), Turn: Circle}

		// When: updating the status
		match.UpdateStatus()

		// Then: cross is the winner
		assert.Equal(t, StatusFinished, match.Status)
		assert.Equal(t, string(Cross), match.Winner)
		assert.ErrorIs(t, match.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Draw finishes the match", func(t *testing.T) {
		// Given: a full board without a line
		match := NewMatch("123", ModeWithFriend)
		match.State = &GameState{Circle: NewCellSet(1, 3, 4, 8, 9), Cross: NewCellSet(2, 5, 6, 7), Turn: Cross}

		// When: updating the status
		match.UpdateStatus()

		// Then: the match is a tie
		assert.True(t, match.IsFinished())
		assert.Equal(t, PlayerTie, match.Winner)
	})

	t.Run("Open board keeps the match going", func(t *testing.T) {
		match := NewMatch("123", ModeWithComputer)
		require.NoError(t, match.State.ApplyMove(1, Circle))

		match.UpdateStatus()

		assert.True(t, match.IsOngoing())
		assert.Empty(t, match.Winner)
		assert.True(t, match.IsComputerTurn())
		assert.NoError(t, match.ConfirmOngoingState())
	})
}

func TestMatch_Validate(t *testing.T) {
	t.Run("Unknown mode", func(t *testing.T) {
		match := NewMatch("123", Mode("online"))

		assert.ErrorIs(t, match.Validate(), apperror.ErrInvalidMode)
	})

	t.Run("Missing state", func(t *testing.T) {
		match := &Match{ID: "123", Mode: ModeWithFriend}

		assert.Error(t, match.Validate())
	})

	t.Run("Corrupted state", func(t *testing.T) {
		match := NewMatch("123", ModeWithFriend)
		match.State.Cross = NewCellSet(4)
		match.State.Circle = NewCellSet(4)

		assert.ErrorIs(t, match.Validate(), apperror.ErrCellOccupied)
	})
}

func TestMode(t *testing.T) {
	t.Run("Parse known modes", func(t *testing.T) {
		for _, value := range []string{"withFriend", "withComputer"} {
			mode, err := ParseMode(value)

			require.NoError(t, err)
			assert.Equal(t, Mode(value), mode)
		}
	})

	t.Run("Parse unknown mode", func(t *testing.T) {
		_, err := ParseMode("playerWithComputer")

		assert.ErrorIs(t, err, apperror.ErrInvalidMode)
	})

	t.Run("Toggle", func(t *testing.T) {
		assert.Equal(t, ModeWithComputer, ModeWithFriend.Toggle())
		assert.Equal(t, ModeWithFriend, ModeWithComputer.Toggle())
	})
}
