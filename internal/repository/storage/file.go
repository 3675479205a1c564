package storage

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

const modeFileName = "tictactoe/ticTacToe.json"

// ModeFilePath - returns path when it is set, otherwise the mode file in the user's XDG config directory.
func ModeFilePath(path string) (string, error) {
	if path != "" {
		return filepath.Clean(path), nil
	}

	resolved, err := xdg.ConfigFile(modeFileName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve mode file: %w", err)
	}

	return resolved, nil
}
