package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/notify"
	"taskdeck/internal/task"
	"taskdeck/internal/view"
)

// errNeedsConfirm implements the confirmation-required half of the
// destructive command protocol: the caller must re-run with --yes.
var errNeedsConfirm = errors.New("confirmation required: re-run with --yes")

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetString("desc")
		due, _ := cmd.Flags().GetString("due")
		prio, _ := cmd.Flags().GetString("priority")

		t, err := store.Add(args[0], desc, due, task.Priority(prio))
		if err != nil {
			return err
		}
		fmt.Printf("Added task #%d %q\n", t.ID, t.Title)
		if msg, ok := notify.ReminderForNew(t, time.Now()); ok {
			fmt.Println(msg)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		prio, _ := cmd.Flags().GetString("priority")
		status, _ := cmd.Flags().GetString("status")

		pf := view.PriorityAll
		if prio != "" {
			pf = view.PriorityFilter(prio)
		}
		cf := view.CompletionAll
		if status != "" {
			cf = view.CompletionFilter(status)
		}

		filtered := view.Filter(store.Tasks(), search, pf, cf)
		for _, t := range filtered {
			checkbox := "[ ]"
			if t.Completed {
				checkbox = "[x]"
			}
			line := fmt.Sprintf("%4d %s %-6s %s", t.ID, checkbox, t.Priority, t.Title)
			if t.DueDate != "" {
				line += "  due " + t.DueDate
			}
			fmt.Println(line)
		}
		st := view.Collect(filtered)
		fmt.Printf("%d shown • %d done • %d%% complete\n", st.Total, st.Completed, st.Percent())
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		t, err := store.ToggleCompleted(id)
		if err != nil {
			return err
		}
		state := "pending"
		if t.Completed {
			state = "done"
		}
		fmt.Printf("Task #%d %q is now %s\n", t.ID, t.Title, state)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errNeedsConfirm
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted task #%d\n", id)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errNeedsConfirm
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		n := store.Len()
		store.ClearAll()
		fmt.Printf("Deleted %d task(s)\n", n)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func init() {
	addCmd.Flags().String("desc", "", "task description")
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().String("priority", "", "Low, Medium or High (default Medium)")

	listCmd.Flags().String("search", "", "substring match on title or description")
	listCmd.Flags().String("priority", "", "filter by priority")
	listCmd.Flags().String("status", "", "All, Pending or Completed")

	rmCmd.Flags().Bool("yes", false, "confirm deletion")
	clearCmd.Flags().Bool("yes", false, "confirm deletion")
}
