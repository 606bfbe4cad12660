package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/runwise/internal/planfile"
	"github.com/theirongolddev/runwise/internal/workspace"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the workspace with a YAML or JSON plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the workspace to a YAML or JSON plan file (- for YAML on stdout)",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	imported, err := planfile.Read(args[0])
	if err != nil {
		return err
	}
	ws, err := mutate(func(workspace.Workspace) (workspace.Workspace, error) {
		return imported, nil
	})
	if err != nil {
		return err
	}
	log.Info("plan imported", zap.String("file", args[0]), zap.Int("scenarios", len(ws.Scenarios)))
	done("Imported %s: %d revenue streams, %d costs, %d team members, %d scenarios",
		ws.Inputs.Company.Name, len(ws.Inputs.Revenue), len(ws.Inputs.Costs), len(ws.Inputs.Team), len(ws.Scenarios))
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	if args[0] == "-" {
		data, err := planfile.Encode(planfile.FormatYAML, ws)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := planfile.Write(args[0], ws); err != nil {
		return err
	}
	done("Exported to %s", args[0])
	return nil
}
