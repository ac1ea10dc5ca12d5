package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/habitd/internal/ledger"
	"github.com/sandeepkv93/habitd/internal/model"
)

var (
	flagMarkDate  string
	flagClearDate string
)

var markCmd = &cobra.Command{
	Use:   "mark <habit> done|failed [reason]",
	Short: "Record a habit's outcome for a day",
	Long: "Record a habit as done or failed for a day. A reason may follow " +
		"a failed status; omitting it keeps any previously recorded reason.",
	Args: cobra.MinimumNArgs(2),
	RunE: runMark,
}

var clearCmd = &cobra.Command{
	Use:   "clear <habit>",
	Short: "Remove a habit's entry for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

func init() {
	markCmd.Flags().StringVar(&flagMarkDate, "date", "", "Day to record (YYYY-MM-DD, today, yesterday)")
	clearCmd.Flags().StringVar(&flagClearDate, "date", "", "Day to clear (YYYY-MM-DD, today, yesterday)")
	rootCmd.AddCommand(markCmd, clearCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	status, err := model.ParseStatus(args[1])
	if err != nil {
		return err
	}

	var reason *string
	if len(args) > 2 {
		if status == model.StatusDone {
			return fmt.Errorf("a reason only applies to failed days")
		}
		joined := strings.TrimSpace(strings.Join(args[2:], " "))
		reason = &joined
	}

	key, err := ParseDateArg(flagMarkDate, time.Now())
	if err != nil {
		return err
	}

	return withEngine(cmd, func(eng *ledger.Engine) error {
		h, err := resolveHabit(eng, args[0])
		if err != nil {
			return err
		}
		if err := eng.SetStatus(cmd.Context(), string(key), h.ID, status, reason); err != nil {
			return err
		}
		fmt.Printf("%s: %s %s  (day at %s)\n", key, h.Name, status, FormatPercent(eng.DayPercent(key)))
		return nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	key, err := ParseDateArg(flagClearDate, time.Now())
	if err != nil {
		return err
	}

	return withEngine(cmd, func(eng *ledger.Engine) error {
		h, err := resolveHabit(eng, args[0])
		if err != nil {
			return err
		}
		if err := eng.ClearStatus(cmd.Context(), string(key), h.ID); err != nil {
			return err
		}
		fmt.Printf("%s: cleared %s\n", key, h.Name)
		return nil
	})
}
