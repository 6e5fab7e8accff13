package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/config"
	"github.com/emprendo/copiloto/internal/logger"
	"github.com/emprendo/copiloto/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline HTTP API",
	Long: `Run the HTTP API on the configured listen address. The server's
state starts from the saved snapshot but lives in memory for the
server's lifetime; it is written back on shutdown only if --persist
is set.`,
	RunE: runServe,
}

var (
	serveAddr    string
	servePersist bool
	serveSeed    bool
)

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&servePersist, "persist", false, "Save the snapshot when the server stops")
	serveCmd.Flags().BoolVar(&serveSeed, "demo", false, "Start from the demo dataset instead of saved data")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if serveSeed {
		store.Reset()
		if err := store.Seed(); err != nil {
			return err
		}
	}

	srv := server.New(store, cfg.APIToken)

	logger.Info("API server starting", logger.F("addr", addr))
	fmt.Printf("Copiloto API listening on %s\n", addr)
	serveErr := srv.Start(addr)

	if servePersist {
		if err := saveStore(store, dbConn); err != nil {
			logger.Error("failed to persist on shutdown", logger.F("error", err))
		}
	}
	return serveErr
}
