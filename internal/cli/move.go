package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/model"
)

var moveCmd = &cobra.Command{
	Use:   "move [client-id] [stage]",
	Short: "Move a client to another pipeline stage",
	Long: `Move a client to another stage.

Stages: lead, qualified, proposal, negotiation, closed-won, closed-lost

Examples:
  copiloto move 3f2a qualified
  copiloto move 3f2a closed-won`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	to, ok := model.ParseStage(args[1])
	if !ok {
		return fmt.Errorf("unknown stage: %s", args[1])
	}

	from, err := store.StageOf(id)
	if err != nil {
		return err
	}
	if err := store.MoveClient(id, from, to); err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	c, _ := store.GetClient(id)
	fmt.Printf("✓ Moved %q: %s → %s\n", c.Name, from.Label(), to.Label())
	return nil
}
