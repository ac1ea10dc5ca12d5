package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/habitd/internal/ledger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Completion reports",
}

var reportDailyCmd = &cobra.Command{
	Use:   "daily [date]",
	Short: "One day's score, statuses, and failure reasons",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportDaily,
}

var reportWeeklyCmd = &cobra.Command{
	Use:   "weekly [date]",
	Short: "Scores for the Monday-start week containing a day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportWeekly,
}

var reportMonthlyCmd = &cobra.Command{
	Use:   "monthly [YYYY-MM]",
	Short: "Share of perfect days in a month",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportMonthly,
}

var reportYearlyCmd = &cobra.Command{
	Use:   "yearly [YYYY]",
	Short: "Best and worst month of a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReportYearly,
}

func init() {
	reportCmd.AddCommand(reportDailyCmd, reportWeeklyCmd, reportMonthlyCmd, reportYearlyCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportDaily(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	key, err := ParseDateArg(arg, time.Now())
	if err != nil {
		return err
	}

	return withEngine(cmd, func(eng *ledger.Engine) error {
		fmt.Println()
		fmt.Println(RenderTitle(fmt.Sprintf("DAILY  %s  %s", key, FormatPercent(eng.DayPercent(key)))))
		fmt.Println()

		habits := eng.Habits()
		if len(habits) == 0 {
			fmt.Println("No habits defined.")
			return nil
		}

		rows := make([][]string, 0, len(habits))
		for _, h := range habits {
			status := ""
			reason := ""
			completed := "-"
			if entry, ok := eng.Entry(key, h.ID); ok {
				status = string(entry.Status)
				reason = entry.Reason
				completed = FormatCompletion(entry)
			}
			rows = append(rows, []string{h.Name, RenderStatus(status), reason, completed})
		}
		fmt.Print(RenderTable(Table{
			Headers: []string{"Habit", "Status", "Reason", "Completed"},
			Rows:    rows,
		}))

		if reasons := eng.SummarizeReasons(key); len(reasons) > 0 {
			fmt.Println()
			fmt.Println("Failure reasons:")
			for _, r := range reasons {
				fmt.Printf("  - %s\n", r)
			}
		}
		return nil
	})
}

func runReportWeekly(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	key, err := ParseDateArg(arg, time.Now())
	if err != nil {
		return err
	}
	anchor, err := key.Time()
	if err != nil {
		return err
	}

	return withEngine(cmd, func(eng *ledger.Engine) error {
		bars := eng.WeeklyBars(anchor)

		fmt.Println()
		fmt.Println(RenderTitle(fmt.Sprintf("WEEK OF %s", bars[0].Date)))
		fmt.Println()

		rows := make([][]string, 0, len(bars))
		for _, bar := range bars {
			day, err := bar.Date.Time()
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				string(bar.Date),
				FormatDayOfWeek(int(day.Weekday())),
				FormatBar(bar.Percent, 10),
				FormatPercent(bar.Percent),
			})
		}
		fmt.Print(RenderTable(Table{
			Headers: []string{"Date", "Day", "", "Score"},
			Rows:    rows,
		}))
		return nil
	})
}

func runReportMonthly(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) == 1 {
		parsed, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
		}
		year, month = parsed.Year(), parsed.Month()
	}

	return withEngine(cmd, func(eng *ledger.Engine) error {
		perfect, total := eng.MonthlyPerfectCount(year, month)
		pct := eng.MonthlyPercent(year, month)

		fmt.Println()
		fmt.Println(RenderTitle(fmt.Sprintf("%s %d  %s", month, year, FormatPercent(pct))))
		fmt.Println()
		fmt.Printf("Perfect days: %d of %d\n", perfect, total)

		if reasons := eng.TopReasons(year, month, 5); len(reasons) > 0 {
			fmt.Println()
			rows := make([][]string, 0, len(reasons))
			for _, rc := range reasons {
				rows = append(rows, []string{rc.Reason, strconv.Itoa(rc.Count)})
			}
			fmt.Print(RenderTable(Table{
				Title:   "TOP FAILURE REASONS",
				Headers: []string{"Reason", "Days"},
				Rows:    rows,
			}))
		}
		return nil
	})
}

func runReportYearly(cmd *cobra.Command, args []string) error {
	year := time.Now().Year()
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid year %q", args[0])
		}
		year = parsed
	}

	return withEngine(cmd, func(eng *ledger.Engine) error {
		best, bestPct, worst, worstPct := eng.YearlyBestWorstMonth(year)

		fmt.Println()
		fmt.Println(RenderTitle(fmt.Sprintf("YEAR %d", year)))
		fmt.Println()
		fmt.Printf("Best month:  %-9s %s\n", best, FormatPercent(bestPct))
		fmt.Printf("Worst month: %-9s %s\n", worst, FormatPercent(worstPct))

		rows := make([][]string, 0, 12)
		for month := time.January; month <= time.December; month++ {
			pct := eng.MonthlyPercent(year, month)
			rows = append(rows, []string{month.String(), FormatBar(pct, 10), FormatPercent(pct)})
		}
		fmt.Println()
		fmt.Print(RenderTable(Table{
			Headers: []string{"Month", "", "Score"},
			Rows:    rows,
		}))
		return nil
	})
}
