package cli

import (
	"fmt"

	"github.com/emprendo/copiloto/internal/config"
	"github.com/emprendo/copiloto/internal/db"
	"github.com/emprendo/copiloto/internal/pipeline"
)

// openStore loads the persisted snapshot into a fresh in-memory store.
// CLI commands are one-shot, so the session snapshot is how state
// survives between invocations.
func openStore() (*pipeline.Store, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	var dbConn *db.DB
	if cfg.DataPath != "" {
		dbConn, err = db.Open(cfg.DataPath)
	} else {
		dbConn, err = db.OpenDefault()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	snap, err := dbConn.LoadSnapshot()
	if err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("failed to load pipeline: %w", err)
	}

	store := pipeline.NewStore()
	store.Import(snap)
	return store, dbConn, nil
}

// saveStore writes the store back to the session snapshot.
func saveStore(store *pipeline.Store, dbConn *db.DB) error {
	if err := dbConn.SaveSnapshot(store.Export()); err != nil {
		return fmt.Errorf("failed to save pipeline: %w", err)
	}
	return nil
}
