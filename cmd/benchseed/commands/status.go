package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/benchseed/cmd/benchseed/output"
	"github.com/marshallshelly/benchseed/pkg/dataset"
	"github.com/marshallshelly/benchseed/pkg/db"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset cardinalities and the last seeding run",
	Long: `Show the current row counts of the four entity tables together with the
most recent run recorded in the ledger.

Examples:
  benchseed status
  benchseed status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusView struct {
	Counts  *dataset.Counts    `json:"counts,omitempty"`
	LastRun *dataset.RunRecord `json:"last_run,omitempty"`
}

func runStatus(cmd *cobra.Command) error {
	url, err := resolveDB()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := db.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	var view statusView

	view.Counts, err = dataset.CountRows(ctx, pool)
	if err != nil && !dataset.IsUndefinedTable(err) {
		return err
	}

	view.LastRun, err = dataset.LastRun(ctx, pool)
	if err != nil && !errors.Is(err, dataset.ErrNoRuns) && !dataset.IsUndefinedTable(err) {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	if view.Counts == nil {
		output.Warning("Dataset tables not found; run `benchseed seed` first")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "TABLE\tROWS")
		_, _ = fmt.Fprintln(w, "-----\t----")
		_, _ = fmt.Fprintf(w, "%s\t%d\n", dataset.TableCategory, view.Counts.Categories)
		_, _ = fmt.Fprintf(w, "%s\t%d\n", dataset.TableTag, view.Counts.Tags)
		_, _ = fmt.Fprintf(w, "%s\t%d\n", dataset.TableProduct, view.Counts.Products)
		_, _ = fmt.Fprintf(w, "%s\t%d\n", dataset.TableProductTag, view.Counts.Links)
		_ = w.Flush()
	}

	fmt.Println()
	if view.LastRun == nil {
		output.Muted("No seeding runs recorded")
		return nil
	}

	run := view.LastRun
	state := "done"
	switch {
	case run.Error != nil:
		state = "failed"
	case !run.Completed():
		state = "running"
	}
	output.Info("Last run %s %s", run.ID, output.StageIcon(state))
	output.Muted("  stage: %s, started: %s", run.Stage, run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.Error != nil {
		output.Error("  error: %s", *run.Error)
	}
	return nil
}
