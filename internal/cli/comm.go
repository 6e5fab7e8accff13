package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

var commCmd = &cobra.Command{
	Use:   "comm",
	Short: "Manage logged communications",
}

var commLogCmd = &cobra.Command{
	Use:   "log [client-id] [content]",
	Short: "Log a communication with a client",
	Long: `Log an interaction. Logging one updates the client's last-contact date.

Examples:
  copiloto comm log 3f2a "Discussed pricing tiers" --type call --direction outbound --duration 25
  copiloto comm log 3f2a "Asked about onboarding" --type whatsapp --direction inbound`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCommLog,
}

var (
	commType      string
	commDirection string
	commSubject   string
	commDuration  int
	commOutcome   string
	commAuthor    string
)

func init() {
	commLogCmd.Flags().StringVarP(&commType, "type", "t", "call", "Type (call, email, meeting, video_call, sms, whatsapp, linkedin, other)")
	commLogCmd.Flags().StringVarP(&commDirection, "direction", "d", "outbound", "Direction (inbound, outbound)")
	commLogCmd.Flags().StringVar(&commSubject, "subject", "", "Subject")
	commLogCmd.Flags().IntVar(&commDuration, "duration", 0, "Duration in minutes (calls/meetings)")
	commLogCmd.Flags().StringVar(&commOutcome, "outcome", "", "Outcome (positive, neutral, negative, follow_up_needed)")
	commLogCmd.Flags().StringVar(&commAuthor, "author", "", "Author name")

	commCmd.AddCommand(commLogCmd)
	commCmd.AddCommand(commListCmd)
}

func runCommLog(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}

	cm, err := store.AddCommunication(id, pipeline.CommInput{
		Type:         model.CommType(commType),
		Direction:    model.Direction(commDirection),
		Subject:      commSubject,
		Content:      strings.Join(args[1:], " "),
		DurationMins: commDuration,
		Outcome:      model.Outcome(commOutcome),
		Author:       commAuthor,
	})
	if err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	fmt.Printf("✓ Logged %s %s (%s)\n", cm.Direction, cm.Type, shortID(cm.ID))
	return nil
}

var commListCmd = &cobra.Command{
	Use:     "list [client-id]",
	Aliases: []string{"ls"},
	Short:   "List a client's communications",
	Args:    cobra.ExactArgs(1),
	RunE:    runCommList,
}

var commFilterType string

func init() {
	commListCmd.Flags().StringVarP(&commFilterType, "type", "t", "", "Filter by type")
}

func runCommList(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	comms, err := store.ListCommunications(id, pipeline.CommFilter{Type: model.CommType(commFilterType)})
	if err != nil {
		return err
	}
	if len(comms) == 0 {
		fmt.Println("No communications.")
		return nil
	}
	for _, cm := range comms {
		duration := ""
		if cm.DurationMins > 0 {
			duration = fmt.Sprintf(" (%dm)", cm.DurationMins)
		}
		fmt.Printf("  %-8s  %-8s %-10s%s  %s\n",
			shortID(cm.ID), cm.Direction, cm.Type, duration, truncate(cm.Content, 44))
	}
	return nil
}
