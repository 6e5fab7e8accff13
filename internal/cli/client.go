package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/config"
	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage pipeline clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Long: `Add a new client to the pipeline.

Examples:
  copiloto client add "Ana Martín" --email ana@retailplus.com
  copiloto client add "Carlos Ruiz" --email carlos@ruiz.es --value 1800 --stage qualified`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClientAdd,
}

var (
	addEmail     string
	addCompany   string
	addPhone     string
	addValue     float64
	addPotential string
	addSource    string
	addStage     string
)

func init() {
	clientAddCmd.Flags().StringVarP(&addEmail, "email", "e", "", "Email address (required)")
	clientAddCmd.Flags().StringVarP(&addCompany, "company", "c", "", "Company name")
	clientAddCmd.Flags().StringVar(&addPhone, "phone", "", "Phone number")
	clientAddCmd.Flags().Float64VarP(&addValue, "value", "v", 0, "Deal value")
	clientAddCmd.Flags().StringVarP(&addPotential, "potential", "p", "medium", "Potential (high, medium, low)")
	clientAddCmd.Flags().StringVar(&addSource, "source", "", "Lead source")
	clientAddCmd.Flags().StringVarP(&addStage, "stage", "s", "lead", "Starting stage")

	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientShowCmd)
	clientCmd.AddCommand(clientDeleteCmd)
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	name := strings.Join(args, " ")
	c, err := store.CreateClient(pipeline.ClientInput{
		Name:      name,
		Company:   addCompany,
		Email:     addEmail,
		Phone:     addPhone,
		Value:     addValue,
		Potential: model.Potential(addPotential),
		Source:    addSource,
		Status:    model.Stage(addStage),
	})
	if err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	fmt.Printf("✓ Added %q to [%s] (%s)\n", c.Name, c.Status.Label(), shortID(c.ID))
	return nil
}

var clientListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clients",
	Long: `List clients, optionally filtered.

Examples:
  copiloto client list
  copiloto client list --stage negotiation
  copiloto client list -q maria --potential high`,
	RunE: runClientList,
}

var (
	listText      string
	listStage     string
	listPotential string
)

func init() {
	clientListCmd.Flags().StringVarP(&listText, "query", "q", "", "Free-text filter (name, company, email)")
	clientListCmd.Flags().StringVarP(&listStage, "stage", "s", "", "Filter by stage")
	clientListCmd.Flags().StringVarP(&listPotential, "potential", "p", "", "Filter by potential")
}

func runClientList(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	clients := store.Search(pipeline.ClientFilter{
		Text:      listText,
		Stage:     model.Stage(listStage),
		Potential: model.Potential(listPotential),
	})

	if len(clients) == 0 {
		fmt.Println("No clients found. Add one with: copiloto client add \"Name\" --email a@b.com")
		return nil
	}

	fmt.Printf("\n%d client(s)\n", len(clients))
	fmt.Println(strings.Repeat("─", 72))
	for _, c := range clients {
		printClient(c)
	}
	fmt.Println()
	return nil
}

func printClient(c model.Client) {
	company := c.Company
	if company == "" {
		company = "-"
	}
	fmt.Printf("  %-8s  %-22s  %-18s  %-12s  %8.0f€\n",
		shortID(c.ID), truncate(c.Name, 22), truncate(company, 18), c.Status.Label(), c.Value)
}

var clientShowCmd = &cobra.Command{
	Use:   "show [client-id]",
	Short: "Show a client with its notes, tasks and communications",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientShow,
}

func runClientShow(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	c, err := store.GetClient(id)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s  (%s)\n", c.Name, shortID(c.ID))
	fmt.Println(strings.Repeat("─", 48))
	fmt.Printf("  Stage:        %s\n", c.Status.Label())
	fmt.Printf("  Company:      %s\n", c.Company)
	fmt.Printf("  Email:        %s\n", c.Email)
	if c.Phone != "" {
		fmt.Printf("  Phone:        %s  (%s)\n", c.Phone, c.WhatsAppURL())
	}
	fmt.Printf("  Value:        %.0f€\n", c.Value)
	fmt.Printf("  Potential:    %s\n", c.Potential)
	fmt.Printf("  Last contact: %s\n", c.LastContactAt.Format("2006-01-02 15:04"))

	notes, _ := store.ListNotes(id, pipeline.NoteFilter{})
	if len(notes) > 0 {
		fmt.Printf("\n  Notes (%d):\n", len(notes))
		for _, n := range notes {
			fmt.Printf("    [%s] %s (%s)\n", n.Type, truncate(n.Content, 48), shortID(n.ID))
		}
	}
	tasks, _ := store.ListTasks(id, pipeline.TaskFilter{})
	if len(tasks) > 0 {
		fmt.Printf("\n  Tasks (%d):\n", len(tasks))
		for _, t := range tasks {
			marker := "[ ]"
			if t.Status == model.TaskCompleted {
				marker = "[x]"
			}
			overdue := ""
			if t.IsOverdue() {
				overdue = "  OVERDUE"
			}
			fmt.Printf("    %s %s  due %s%s  (%s)\n",
				marker, truncate(t.Title, 40), t.DueDate.Format("Jan 2"), overdue, shortID(t.ID))
		}
	}
	comms, _ := store.ListCommunications(id, pipeline.CommFilter{})
	if len(comms) > 0 {
		fmt.Printf("\n  Communications (%d):\n", len(comms))
		for _, cm := range comms {
			fmt.Printf("    %s %s: %s (%s)\n", cm.Direction, cm.Type, truncate(cm.Content, 40), shortID(cm.ID))
		}
	}
	fmt.Println()
	return nil
}

var clientDeleteCmd = &cobra.Command{
	Use:     "delete [client-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a client and all its records",
	Args:    cobra.ExactArgs(1),
	RunE:    runClientDelete,
}

func runClientDelete(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	c, err := store.GetClient(id)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if cfg.ConfirmDelete {
		fmt.Printf("About to delete %q and all its notes, tasks and communications.\n", c.Name)
		fmt.Print("Are you sure? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := store.DeleteClient(id); err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted %q\n", c.Name)
	return nil
}

// shortID returns the first 8 chars of a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
