package cli

import (
	"io"
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe with a friend or against the computer",
		Long: heredoc.Doc(`tictactoe plays tic-tac-toe on a 3x3 board numbered 1 to 9 from
			the top-left corner. Circle always moves first.

			Play in the terminal with "tictactoe play", or run the HTTP and
			WebSocket servers with "tictactoe serve". The selected game mode
			is remembered between runs.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", "config.yml", "Path to the config file")

	root.AddCommand(Serve())
	root.AddCommand(Play())
	root.AddCommand(Mode())

	return root
}

// loadConfig - reads the file named by --config, falling back to the environment when it does not exist.
func loadConfig(cmd *cobra.Command) *config.Config {
	return config.MustLoad(cmd.Flag("config").Value.String())
}

// initLogger - builds the JSON logger for the given level.
func initLogger(w io.Writer, logLevel string) *slog.Logger {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
