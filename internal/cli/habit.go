package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/habitd/internal/ledger"
	"github.com/sandeepkv93/habitd/internal/model"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage the habit list",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitAdd,
}

var habitRenameCmd = &cobra.Command{
	Use:   "rename <habit> <new name>",
	Short: "Rename a habit",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runHabitRename,
}

var habitDeleteCmd = &cobra.Command{
	Use:   "delete <habit>",
	Short: "Delete a habit and every day entry recorded for it",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDelete,
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with today's status",
	Args:  cobra.NoArgs,
	RunE:  runHabitList,
}

func init() {
	habitCmd.AddCommand(habitAddCmd, habitRenameCmd, habitDeleteCmd, habitListCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(eng *ledger.Engine) error {
		h, err := eng.AddHabit(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("Added %q (%s)\n", h.Name, h.ID)
		return nil
	})
}

func runHabitRename(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(eng *ledger.Engine) error {
		h, err := resolveHabit(eng, args[0])
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		if err := eng.RenameHabit(cmd.Context(), h.ID, name); err != nil {
			return err
		}
		fmt.Printf("Renamed %q to %q\n", h.Name, strings.TrimSpace(name))
		return nil
	})
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(eng *ledger.Engine) error {
		h, err := resolveHabit(eng, args[0])
		if err != nil {
			return err
		}
		if err := eng.DeleteHabit(cmd.Context(), h.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q and its history\n", h.Name)
		return nil
	})
}

func runHabitList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(eng *ledger.Engine) error {
		habits := eng.Habits()
		if len(habits) == 0 {
			fmt.Println("No habits yet. Add one with: habitd habit add <name>")
			return nil
		}

		today := model.KeyFor(time.Now())
		rows := make([][]string, 0, len(habits))
		for _, h := range habits {
			status := ""
			reason := ""
			if entry, ok := eng.Entry(today, h.ID); ok {
				status = string(entry.Status)
				reason = entry.Reason
			}
			rows = append(rows, []string{h.Name, RenderStatus(status), reason, h.ID})
		}

		fmt.Print(RenderTable(Table{
			Title:   fmt.Sprintf("HABITS  %s", today),
			Headers: []string{"Name", "Today", "Reason", "ID"},
			Rows:    rows,
		}))
		return nil
	})
}
