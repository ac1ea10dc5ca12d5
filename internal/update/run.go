package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/config"
	"github.com/sandeepkv93/habitd/internal/ledger"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

// Run starts the interactive session over an open ledger and blocks until
// the user quits.
func Run(eng *ledger.Engine, cfg config.Config) error {
	sched := scheduler.NewEngine(cfg.General.SchedulerBuffer)
	sched.Start()
	defer sched.Stop()

	now := time.Now()
	if err := sched.ScheduleRollover(now); err != nil {
		return err
	}
	if cfg.Nudge.Enabled {
		if err := sched.ScheduleNudge(now, cfg.Nudge.Hour); err != nil {
			return err
		}
	}

	m := NewModelWithScheduler(eng, cfg, sched)
	if DesktopNotificationsEnabledFromEnv() {
		m.notifier = ExecDesktopNotifier{}
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}
