package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const modeFilePermissions = 0o644

type fileMode struct {
	path string
}

// NewFileModeRepository - keeps the mode record in a JSON file, for the terminal front-end.
func NewFileModeRepository(path string) ModeRepository {
	return &fileMode{
		path: path,
	}
}

func (that *fileMode) Load(_ context.Context) (entity.Mode, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.DefaultMode, nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to read mode file: %w", err)
	}

	return decodeMode(data)
}

func (that *fileMode) Save(_ context.Context, mode entity.Mode) error {
	data, err := encodeMode(mode)
	if err != nil {
		return err
	}

	if err = os.WriteFile(that.path, data, modeFilePermissions); err != nil {
		return fmt.Errorf("failed to write mode file: %w", err)
	}

	return nil
}
