package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/config"
	"github.com/emprendo/copiloto/internal/logger"
	"github.com/emprendo/copiloto/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "copiloto",
	Short: "Copiloto - sales pipeline for small businesses",
	Long: `Copiloto manages a small-business sales pipeline: clients, stages,
notes, tasks and logged communications, with pipeline metrics.

Run 'copiloto' without arguments to launch the interactive board.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("copiloto started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch the board TUI
		store, dbConn, err := openStore()
		if err != nil {
			logger.Error("failed to open store", logger.F("error", err))
			return err
		}
		defer dbConn.Close()

		logger.Info("launching board")
		m := tui.NewModel(store)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("board error", logger.F("error", err))
			return fmt.Errorf("failed to run board: %w", err)
		}

		// Persist whatever the session changed
		if err := saveStore(store, dbConn); err != nil {
			logger.Error("failed to save on exit", logger.F("error", err))
			return err
		}

		logger.Info("board exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("copiloto exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	// Subcommands
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(commCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}
