// Package cmd implements the runwise CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/runwise/internal/config"
	"github.com/theirongolddev/runwise/internal/format"
	"github.com/theirongolddev/runwise/internal/logger"
	"github.com/theirongolddev/runwise/internal/model"
	"github.com/theirongolddev/runwise/internal/store"
	"github.com/theirongolddev/runwise/internal/workspace"
)

var (
	flagMonths   int
	flagDataDir  string
	flagScenario string
	flagQuiet    bool
	flagLogLevel string
)

var (
	cfg config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:               "runwise",
	Short:             "Startup runway and scenario planning",
	Long:              "Project cash, burn and runway for your startup and compare what-if scenarios.",
	RunE:              runSummary,
	PersistentPreRunE: initRuntime,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "n", 0, "Projection horizon in months (default from workspace)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding runwise.db (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario id (default: active scenario)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// initRuntime loads config and builds the logger before any command runs.
func initRuntime(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	format.CurrencySymbol = cfg.General.CurrencySymbol

	log, err = logger.New(cfg.Log.Level, cfg.Log.Format)
	return err
}

func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", zap.String("path", cfg.DBPath()))
	return st, nil
}

// loadWorkspace is the shared read path used by all report commands.
// Without a saved workspace it falls back to the defaults.
func loadWorkspace() (workspace.Workspace, error) {
	st, err := openStore()
	if err != nil {
		return workspace.Workspace{}, err
	}
	defer func() { _ = st.Close() }()

	ws, _, err := st.LoadWorkspace()
	if errors.Is(err, store.ErrNoWorkspace) {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  No saved workspace, showing defaults. Run `runwise sample` for example data.\n")
		}
		ws = workspace.Default()
		ws.ProjectionMonths = cfg.General.ProjectionMonths
		return ws, nil
	}
	return ws, err
}

// mutate applies fn to the saved workspace, validates the result and
// saves it.
func mutate(fn func(workspace.Workspace) (workspace.Workspace, error)) (workspace.Workspace, error) {
	st, err := openStore()
	if err != nil {
		return workspace.Workspace{}, err
	}
	defer func() { _ = st.Close() }()

	ws, _, err := st.LoadWorkspace()
	if errors.Is(err, store.ErrNoWorkspace) {
		ws = workspace.Default()
		ws.ProjectionMonths = cfg.General.ProjectionMonths
	} else if err != nil {
		return ws, err
	}

	next, err := fn(ws)
	if err != nil {
		return ws, err
	}
	if err := next.Validate(); err != nil {
		return ws, fmt.Errorf("rejected change: %w", err)
	}
	if err := st.SaveWorkspace(next); err != nil {
		return ws, err
	}
	log.Debug("workspace saved", zap.Int("scenarios", len(next.Scenarios)))
	return next, nil
}

// horizon returns --months, else the workspace setting.
func horizon(ws workspace.Workspace) int {
	if flagMonths > 0 {
		return flagMonths
	}
	return ws.Months()
}

// selectedScenario returns --scenario, else the active scenario.
func selectedScenario(ws workspace.Workspace) (model.Scenario, error) {
	if flagScenario != "" {
		s, ok := ws.Scenario(flagScenario)
		if !ok {
			return s, fmt.Errorf("scenario %q: %w", flagScenario, workspace.ErrNotFound)
		}
		return s, nil
	}
	s, ok := ws.ActiveScenario()
	if !ok {
		return s, errors.New("workspace has no scenarios")
	}
	return s, nil
}

func done(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf("  "+format+"\n", args...)
}
