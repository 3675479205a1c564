package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// modeKey is the single record holding the last selected mode.
const modeKey = "ticTacToe"

type ModeRepository interface {
	Load(ctx context.Context) (entity.Mode, error)
	Save(ctx context.Context, mode entity.Mode) error
}

type dbMode struct {
	client *redis.Client
}

func NewModeRepository(client *redis.Client) ModeRepository {
	return &dbMode{
		client: client,
	}
}

// Load - returns the saved mode, or entity.DefaultMode when nothing was saved yet.
func (that *dbMode) Load(ctx context.Context) (entity.Mode, error) {
	response, err := that.client.Get(ctx, modeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.DefaultMode, nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to get mode: %w", err)
	}

	return decodeMode(response)
}

func (that *dbMode) Save(ctx context.Context, mode entity.Mode) error {
	data, err := encodeMode(mode)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, modeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}

	return nil
}

func encodeMode(mode entity.Mode) ([]byte, error) {
	if _, err := entity.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	data, err := json.Marshal(entity.ModeRecord{GameMode: mode})
	if err != nil {
		return nil, fmt.Errorf("could not marshal mode: %w", err)
	}

	return data, nil
}

func decodeMode(data []byte) (entity.Mode, error) {
	var record entity.ModeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", fmt.Errorf("failed to unmarshal mode: %w", err)
	}

	mode, err := entity.ParseMode(string(record.GameMode))
	if err != nil {
		return "", fmt.Errorf("stored mode is corrupted: %w", err)
	}

	return mode, nil
}
