package cmd

import (
	"github.com/spf13/cobra"

	"github.com/theirongolddev/runwise/internal/workspace"
)

var flagResetHistory bool

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Load the TechStartup Inc. example workspace",
	RunE: func(_ *cobra.Command, _ []string) error {
		return replaceWorkspace(workspace.Sample(), "Loaded sample workspace (TechStartup Inc., 4 scenarios)")
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over with an empty workspace",
	RunE: func(_ *cobra.Command, _ []string) error {
		ws := workspace.Default()
		ws.ProjectionMonths = cfg.General.ProjectionMonths
		return replaceWorkspace(ws, "Workspace reset to defaults")
	},
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also delete recorded metric history")
	rootCmd.AddCommand(sampleCmd, resetCmd)
}

func replaceWorkspace(ws workspace.Workspace, msg string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if flagResetHistory {
		if err := st.Reset(); err != nil {
			return err
		}
	}
	if err := st.SaveWorkspace(ws); err != nil {
		return err
	}
	done("%s", msg)
	return nil
}
