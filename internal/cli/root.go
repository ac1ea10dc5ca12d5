package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/habitd/internal/config"
	"github.com/sandeepkv93/habitd/internal/ledger"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/storage"
	"github.com/sandeepkv93/habitd/internal/update"
)

var flagDBPath string

var rootCmd = &cobra.Command{
	Use:   "habitd",
	Short: "Daily habit tracker",
	Long:  "Track daily habits, mark days done or failed, and review streak reports.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the habit database")
	rootCmd.SilenceUsage = true
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	eng, closeFn, err := openEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	return update.Run(eng, cfg)
}

// withEngine is the shared open/close path used by the headless commands.
func withEngine(cmd *cobra.Command, fn func(*ledger.Engine) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	eng, closeFn, err := openEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(eng)
}

// openEngine opens the ledger over the configured database. The --db
// flag wins over config, which wins over the default location.
func openEngine(ctx context.Context, cfg config.Config) (*ledger.Engine, func() error, error) {
	path := flagDBPath
	if path == "" {
		path = cfg.General.DBPath
	}
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	kv, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}

	eng, err := ledger.Open(ctx, kv)
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	return eng, kv.Close, nil
}

// resolveHabit maps a user-supplied target to a habit. Exact id wins,
// then exact name (case-insensitive), then a unique name prefix.
func resolveHabit(eng *ledger.Engine, target string) (model.Habit, error) {
	if h, ok := eng.Habit(target); ok {
		return h, nil
	}

	needle := strings.ToLower(strings.TrimSpace(target))
	var prefix []model.Habit
	for _, h := range eng.Habits() {
		name := strings.ToLower(h.Name)
		if name == needle {
			return h, nil
		}
		if strings.HasPrefix(name, needle) {
			prefix = append(prefix, h)
		}
	}
	switch len(prefix) {
	case 1:
		return prefix[0], nil
	case 0:
		return model.Habit{}, fmt.Errorf("no habit matches %q", target)
	default:
		names := make([]string, 0, len(prefix))
		for _, h := range prefix {
			names = append(names, h.Name)
		}
		return model.Habit{}, fmt.Errorf("habit %q is ambiguous: %s", target, strings.Join(names, ", "))
	}
}
