package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const toggleArg = "toggle"

type modeSwitcher interface {
	GetMode(ctx context.Context) (entity.Mode, error)
	SetMode(ctx context.Context, mode entity.Mode) error
	ToggleMode(ctx context.Context) (entity.Mode, error)
}

func Mode() *cobra.Command {
	return &cobra.Command{
		Use:       "mode [withFriend|withComputer|toggle]",
		Short:     "Shows or changes the saved game mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(entity.ModeWithFriend), string(entity.ModeWithComputer), toggleArg},

		RunE: func(cmd *cobra.Command, args []string) error {
			conf := loadConfig(cmd)

			manager, err := newLocalManager(initLogger(cmd.ErrOrStderr(), "warn"), conf)
			if err != nil {
				return err
			}

			mode, err := runMode(cmd.Context(), manager, args)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), mode)

			return nil
		},
	}
}

func runMode(ctx context.Context, manager modeSwitcher, args []string) (entity.Mode, error) {
	if len(args) == 0 {
		return manager.GetMode(ctx)
	}

	if args[0] == toggleArg {
		return manager.ToggleMode(ctx)
	}

	mode, err := entity.ParseMode(args[0])
	if err != nil {
		return "", err
	}

	if err = manager.SetMode(ctx, mode); err != nil {
		return "", err
	}

	return mode, nil
}
