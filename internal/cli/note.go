package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage client notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [client-id] [content]",
	Short: "Add a note to a client",
	Long: `Add a note. Adding a note updates the client's last-contact date.

Examples:
  copiloto note add 3f2a "Asked for a second demo"
  copiloto note add 3f2a "Decision maker is the CFO" --type meeting --priority high`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNoteAdd,
}

var (
	noteType     string
	notePriority string
	noteAuthor   string
)

func init() {
	noteAddCmd.Flags().StringVarP(&noteType, "type", "t", "general", "Note type (general, call, email, meeting, follow-up, important)")
	noteAddCmd.Flags().StringVarP(&notePriority, "priority", "p", "medium", "Priority (low, medium, high)")
	noteAddCmd.Flags().StringVar(&noteAuthor, "author", "", "Author name")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}

	n, err := store.AddNote(id, pipeline.NoteInput{
		Content:  strings.Join(args[1:], " "),
		Type:     model.NoteType(noteType),
		Priority: model.Priority(notePriority),
		Author:   noteAuthor,
	})
	if err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	fmt.Printf("✓ Note added (%s)\n", shortID(n.ID))
	return nil
}

var noteListCmd = &cobra.Command{
	Use:     "list [client-id]",
	Aliases: []string{"ls"},
	Short:   "List a client's notes",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteList,
}

var noteFilterType string

func init() {
	noteListCmd.Flags().StringVarP(&noteFilterType, "type", "t", "", "Filter by note type")
}

func runNoteList(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	notes, err := store.ListNotes(id, pipeline.NoteFilter{Type: model.NoteType(noteFilterType)})
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Println("No notes.")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("  %-8s  [%-9s]  %s\n", shortID(n.ID), n.Type, truncate(n.Content, 56))
	}
	return nil
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete [client-id] [note-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(2),
	RunE:    runNoteDelete,
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	noteID, err := resolveRecordID(args[1], func() []string {
		notes, _ := store.ListNotes(id, pipeline.NoteFilter{})
		ids := make([]string, len(notes))
		for i, n := range notes {
			ids[i] = n.ID
		}
		return ids
	})
	if err != nil {
		return fmt.Errorf("note not found: %s", args[1])
	}
	if err := store.RemoveNote(id, noteID); err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}
	fmt.Println("✓ Note deleted")
	return nil
}

// resolveRecordID expands a unique id prefix against a candidate list.
func resolveRecordID(prefix string, list func() []string) (string, error) {
	var matches []string
	for _, id := range list() {
		if id == prefix {
			return id, nil
		}
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			matches = append(matches, id)
		}
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("no unique match for %q", prefix)
	}
	return matches[0], nil
}
