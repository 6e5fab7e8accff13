package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset (replaces current data)",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	store.Reset()
	if err := store.Seed(); err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	fmt.Printf("✓ Seeded %d demo clients\n", store.Metrics().TotalClients)
	return nil
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all pipeline data",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	fmt.Print("This deletes every client and record. Are you sure? [y/N]: ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "y" && confirm != "Y" {
		fmt.Println("Cancelled.")
		return nil
	}

	store.Reset()
	if err := saveStore(store, dbConn); err != nil {
		return err
	}
	fmt.Println("✓ Pipeline cleared")
	return nil
}
