package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/marshallshelly/benchseed/cmd/benchseed/output"
	"github.com/marshallshelly/benchseed/pkg/dataset"
	"github.com/marshallshelly/benchseed/pkg/db"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the dataset invariants against a live database",
	Long: `Check the generated dataset against its invariants: exact cardinalities,
dense contiguous id ranges, category reference and popularity domains, and
bridge integrity.

By default the expected scale is read from the last completed run in the
ledger; pass flags to override.

Examples:
  benchseed verify
  benchseed verify --products 10000 --categories 50 --tags 100
  benchseed verify --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Int("categories", 0, "Expected category count (overrides the ledger)")
	verifyCmd.Flags().Int("tags", 0, "Expected tag count (overrides the ledger)")
	verifyCmd.Flags().Int("products", 0, "Expected product count (overrides the ledger)")
	verifyCmd.Flags().Int("links", 0, "Expected link attempt count (overrides the ledger)")
	verifyCmd.Flags().Bool("with-links", false, "Expect a populated product_tag bridge")
}

func runVerify(cmd *cobra.Command) error {
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

	expect, err := expectedParams(cmd, pool)
	if err != nil {
		return err
	}

	report, err := dataset.Verify(ctx, pool, expect)
	if err != nil {
		if dataset.IsUndefinedTable(err) {
			return fmt.Errorf("dataset tables not found; run `benchseed seed` first")
		}
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		output.Section("Dataset Verification")
		output.Info("categories=%d tags=%d products=%d links=%d",
			report.Categories, report.Tags, report.Products, report.Links)

		for _, v := range report.Violations {
			output.Error("%s", v)
		}
		if report.OK() {
			output.Success("All invariants hold")
		}
	}

	if !report.OK() {
		return fmt.Errorf("%d invariant violation(s)", len(report.Violations))
	}
	return nil
}

// expectedParams resolves the expected scale: explicit flags win, then the
// last completed run recorded in the ledger.
func expectedParams(cmd *cobra.Command, pool *pgxpool.Pool) (dataset.Params, error) {
	flags := cmd.Flags()
	anyFlag := flags.Changed("categories") || flags.Changed("tags") ||
		flags.Changed("products") || flags.Changed("links") || flags.Changed("with-links")

	var expect dataset.Params
	run, err := dataset.LastCompletedRun(cmd.Context(), pool)
	switch {
	case err == nil:
		expect = dataset.Params{
			Categories: run.Categories,
			Tags:       run.Tags,
			Products:   run.Products,
			Links:      run.Links,
			WithLinks:  run.WithLinks,
		}
	case errors.Is(err, dataset.ErrNoRuns) || dataset.IsUndefinedTable(err):
		if !anyFlag {
			return dataset.Params{}, fmt.Errorf("no completed run in the ledger; pass the expected scale as flags")
		}
	default:
		return dataset.Params{}, err
	}

	if flags.Changed("categories") {
		expect.Categories, _ = flags.GetInt("categories")
	}
	if flags.Changed("tags") {
		expect.Tags, _ = flags.GetInt("tags")
	}
	if flags.Changed("products") {
		expect.Products, _ = flags.GetInt("products")
	}
	if flags.Changed("links") {
		expect.Links, _ = flags.GetInt("links")
	}
	if flags.Changed("with-links") {
		expect.WithLinks, _ = flags.GetBool("with-links")
	}

	return expect, nil
}
