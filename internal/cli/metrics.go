package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/model"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show pipeline metrics",
	RunE:  runMetrics,
}

func runMetrics(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	m := store.Metrics()

	fmt.Println("\nPipeline")
	fmt.Println(strings.Repeat("─", 44))
	for _, st := range model.AllStages {
		bar := strings.Repeat("█", m.CountByStage[st])
		fmt.Printf("  %-12s %3d  %10.0f€  %s\n", st.Label(), m.CountByStage[st], m.ValueByStage[st], bar)
	}
	fmt.Println(strings.Repeat("─", 44))
	fmt.Printf("  Clients:          %d\n", m.TotalClients)
	fmt.Printf("  Total value:      %.0f€\n", m.TotalValue)
	fmt.Printf("  Avg deal size:    %.0f€\n", m.AverageDealSize)
	fmt.Printf("  Conversion rate:  %.0f%%\n", m.ConversionRate*100)
	fmt.Println()
	return nil
}
