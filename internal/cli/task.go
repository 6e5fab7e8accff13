package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage client follow-up tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [client-id] [title]",
	Short: "Add a task for a client",
	Long: `Add a follow-up task. A due date is required.

Examples:
  copiloto task add 3f2a "Call back" --due 2026-09-15
  copiloto task add 3f2a "Send contract" --due 2026-09-01 --type contract --priority urgent`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTaskAdd,
}

var (
	taskDue      string
	taskType     string
	taskPriority string
	taskAssignee string
	taskDesc     string
)

func init() {
	taskAddCmd.Flags().StringVarP(&taskDue, "due", "d", "", "Due date, YYYY-MM-DD (required)")
	taskAddCmd.Flags().StringVarP(&taskType, "type", "t", "follow-up", "Task type")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "medium", "Priority (low, medium, high, urgent)")
	taskAddCmd.Flags().StringVar(&taskAssignee, "assignee", "", "Assignee")
	taskAddCmd.Flags().StringVar(&taskDesc, "desc", "", "Description")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}

	var due time.Time
	if taskDue != "" {
		due, err = time.ParseInLocation("2006-01-02", taskDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", taskDue)
		}
	}

	t, err := store.AddTask(id, pipeline.TaskInput{
		Title:       strings.Join(args[1:], " "),
		Description: taskDesc,
		Type:        model.TaskType(taskType),
		Priority:    model.Priority(taskPriority),
		DueDate:     due,
		Assignee:    taskAssignee,
	})
	if err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	fmt.Printf("✓ Task added: %q due %s (%s)\n", t.Title, t.DueDate.Format("Jan 2"), shortID(t.ID))
	return nil
}

var taskListCmd = &cobra.Command{
	Use:     "list [client-id]",
	Aliases: []string{"ls"},
	Short:   "List a client's tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskList,
}

var taskFilterStatus string

func init() {
	taskListCmd.Flags().StringVarP(&taskFilterStatus, "status", "s", "", "Filter by status (pending, in-progress, completed, cancelled)")
}

func runTaskList(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	tasks, err := store.ListTasks(id, pipeline.TaskFilter{Status: model.TaskStatus(taskFilterStatus)})
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	for _, t := range tasks {
		marker := "[ ]"
		if t.Status == model.TaskCompleted {
			marker = "[x]"
		} else if t.Status == model.TaskCancelled {
			marker = "[-]"
		}
		overdue := ""
		if t.IsOverdue() {
			overdue = "  ⚠ overdue"
		}
		fmt.Printf("  %s %-8s  %-36s  due %-7s%s\n",
			marker, shortID(t.ID), truncate(t.Title, 36), t.DueDate.Format("Jan 2"), overdue)
	}
	return nil
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [client-id] [task-id]",
	Short: "Toggle a task between pending and completed",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskDone,
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	taskID, err := resolveRecordID(args[1], func() []string {
		tasks, _ := store.ListTasks(id, pipeline.TaskFilter{})
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}
		return ids
	})
	if err != nil {
		return fmt.Errorf("task not found: %s", args[1])
	}

	t, err := store.ToggleComplete(id, taskID)
	if err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}

	if t.Status == model.TaskCompleted {
		fmt.Printf("✓ Completed: %q\n", t.Title)
	} else {
		fmt.Printf("○ Reopened: %q\n", t.Title)
	}
	return nil
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [client-id] [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(2),
	RunE:    runTaskDelete,
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	store, dbConn, err := openStore()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	id, err := store.ResolveClientID(args[0])
	if err != nil {
		return fmt.Errorf("client not found: %s", args[0])
	}
	taskID, err := resolveRecordID(args[1], func() []string {
		tasks, _ := store.ListTasks(id, pipeline.TaskFilter{})
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}
		return ids
	})
	if err != nil {
		return fmt.Errorf("task not found: %s", args[1])
	}
	if err := store.RemoveTask(id, taskID); err != nil {
		return err
	}
	if err := saveStore(store, dbConn); err != nil {
		return err
	}
	fmt.Println("✓ Task deleted")
	return nil
}
