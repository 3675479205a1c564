package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const spinnerCharSet = 14

type matchPlayer interface {
	NewMatch(ctx context.Context, mode entity.Mode) (*entity.Match, error)
	MakeTurn(ctx context.Context, id string, player entity.Player, cell entity.Cell) (*usecase.Turn, error)
	Abandon(ctx context.Context, id string) error
}

type indicator interface {
	Start()
	Stop()
}

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Plays a match in the terminal",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := loadConfig(cmd)

			level := "warn"
			if conf.LogLevel == "debug" {
				level = conf.LogLevel
			}

			manager, err := newLocalManager(initLogger(cmd.ErrOrStderr(), level), conf)
			if err != nil {
				return err
			}

			var mode entity.Mode
			if value := cmd.Flag("mode").Value.String(); value != "" {
				if mode, err = entity.ParseMode(value); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()

			return newSession(cmd.InOrStdin(), out, manager, newIndicator(out)).run(cmd.Context(), mode)
		},
	}

	cmd.Flags().StringP("mode", "m", "", "withFriend or withComputer, the saved mode when omitted")

	return cmd
}

type noIndicator struct{}

func (noIndicator) Start() {}

func (noIndicator) Stop() {}

// newIndicator - returns a spinner drawing on out, or nothing when out is not a file.
// The spinner itself stays quiet unless the file is a terminal.
func newIndicator(out io.Writer) indicator {
	file, ok := out.(*os.File)
	if !ok {
		return noIndicator{}
	}

	return spinner.New(
		spinner.CharSets[spinnerCharSet],
		100*time.Millisecond,
		spinner.WithWriterFile(file),
		spinner.WithSuffix(" thinking..."),
	)
}

// newLocalManager - wires a match manager that keeps matches in memory and the mode in a file.
func newLocalManager(logger *slog.Logger, conf *config.Config) (*usecase.MatchManager, error) {
	path, err := storage.ModeFilePath(conf.ModeFile)
	if err != nil {
		return nil, err
	}

	return usecase.NewMatchManager(
		logger,
		repository.NewMemoryMatchRepository(),
		repository.NewFileModeRepository(path),
		service.NewMoveSelector(app.NewRandSource()),
		conf.ThinkDelay,
	), nil
}

type session struct {
	in       *bufio.Scanner
	out      io.Writer
	manager  matchPlayer
	thinking indicator
}

func newSession(in io.Reader, out io.Writer, manager matchPlayer, thinking indicator) *session {
	return &session{
		in:       bufio.NewScanner(in),
		out:      out,
		manager:  manager,
		thinking: thinking,
	}
}

// run plays matches until the player quits or the input ends.
func (that *session) run(ctx context.Context, mode entity.Mode) error {
	for {
		quit, err := that.playMatch(ctx, mode)
		if err != nil || quit {
			return err
		}

		answer, ok := that.prompt("Play again? [y/N] ")
		if !ok || (answer != "y" && answer != "yes") {
			return nil
		}
	}
}

// playMatch returns true when the player left before the match was over.
func (that *session) playMatch(ctx context.Context, mode entity.Mode) (bool, error) {
	match, err := that.manager.NewMatch(ctx, mode)
	if err != nil {
		return false, fmt.Errorf("failed to start match: %w", err)
	}

	fmt.Fprintf(that.out, "New match (%s), %s moves first.\n", match.Mode, match.State.Turn)
	fmt.Fprint(that.out, renderBoard(match.State))

	for match.IsOngoing() {
		line, ok := that.prompt(fmt.Sprintf("%s, pick a cell (1-9, q to quit): ", match.State.Turn))
		if !ok || line == "q" {
			if err = that.manager.Abandon(ctx, match.ID); err != nil {
				return true, fmt.Errorf("failed to leave match: %w", err)
			}

			return true, nil
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(that.out, "Enter a cell number from 1 to 9.")
			continue
		}

		turn, err := that.makeTurn(ctx, match, entity.Cell(cell))
		switch {
		case errors.Is(err, apperror.ErrCellOccupied):
			fmt.Fprintf(that.out, "Cell %d is already taken.\n", cell)
			continue
		case errors.Is(err, apperror.ErrInvalidCell):
			fmt.Fprintln(that.out, "Enter a cell number from 1 to 9.")
			continue
		case err != nil:
			return false, err
		}

		match = turn.Match

		if turn.ComputerCell != 0 {
			fmt.Fprintf(that.out, "Computer plays %d.\n", turn.ComputerCell)
		}

		fmt.Fprint(that.out, renderBoard(match.State))
	}

	fmt.Fprintln(that.out, announce(match))

	return false, nil
}

func (that *session) makeTurn(ctx context.Context, match *entity.Match, cell entity.Cell) (*usecase.Turn, error) {
	if match.IsWithComputer() {
		that.thinking.Start()
		defer that.thinking.Stop()
	}

	return that.manager.MakeTurn(ctx, match.ID, "", cell)
}

func (that *session) prompt(question string) (string, bool) {
	fmt.Fprint(that.out, question)

	if !that.in.Scan() {
		fmt.Fprintln(that.out)
		return "", false
	}

	return strings.ToLower(strings.TrimSpace(that.in.Text())), true
}
