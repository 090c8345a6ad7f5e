package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/benchseed/cmd/benchseed/output"
	"github.com/marshallshelly/benchseed/pkg/dataset"
	"github.com/marshallshelly/benchseed/pkg/db"
)

var resetYes bool

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the empty dataset schema",
	Long: `Drop and recreate the four entity tables without populating them.
Destructive: any previously generated dataset is discarded. The run ledger
is preserved.

Examples:
  benchseed reset --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReset(cmd)
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command) error {
	url, err := resolveDB()
	if err != nil {
		return err
	}

	if !resetYes && !confirm("This drops the current dataset and recreates the tables empty.") {
		output.Warning("Aborted")
		return nil
	}

	ctx := cmd.Context()
	pool, err := db.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := dataset.Reset(ctx, pool); err != nil {
		return err
	}

	output.Success("Schema reset; all entity tables are empty")
	return nil
}
