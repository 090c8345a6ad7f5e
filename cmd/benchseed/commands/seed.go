package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/marshallshelly/benchseed/cmd/benchseed/output"
	"github.com/marshallshelly/benchseed/cmd/benchseed/tui"
	"github.com/marshallshelly/benchseed/pkg/dataset"
	"github.com/marshallshelly/benchseed/pkg/db"
)

var (
	// Seed flags
	createDB    bool
	assumeYes   bool
	interactive bool
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate the benchmark dataset",
	Long: `Generate the benchmark dataset: reset the schema, then populate
categories, tags, products and (optionally) product-tag links.

The reset is destructive: any previously generated dataset is dropped first,
which is what makes regeneration idempotent.

Examples:
  benchseed seed --yes                              # reference scale (100/500/1M)
  benchseed seed --products 10000 --batch-size 1000 # small dataset
  benchseed seed --with-links --links 200000        # include the product-tag bridge
  benchseed seed -i                                 # interactive TUI
  benchseed seed --seed 42 --yes                    # reproducible sampling`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Int("categories", dataset.DefaultCategories, "Number of categories (N)")
	seedCmd.Flags().Int("tags", dataset.DefaultTags, "Number of tags (M)")
	seedCmd.Flags().Int("products", dataset.DefaultProducts, "Number of products (P)")
	seedCmd.Flags().Int("links", dataset.DefaultLinks, "Number of product-tag link attempts (K)")
	seedCmd.Flags().Bool("with-links", false, "Generate product-tag links")
	seedCmd.Flags().Int("batch-size", dataset.DefaultBatchSize, "Rows per bulk-insert round trip")
	seedCmd.Flags().Int64("seed", 0, "Random seed (0 = derive from the clock)")
	seedCmd.Flags().BoolVar(&createDB, "create-db", false, "Create the target database if it does not exist")
	seedCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the destructive-reset confirmation")
	seedCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run in interactive mode with TUI")

	for _, key := range []string{"categories", "tags", "products", "links", "with-links", "batch-size", "seed"} {
		_ = viper.BindPFlag(key, seedCmd.Flags().Lookup(key))
	}
}

// seedParams assembles the scale parameters from flags, env and config file.
func seedParams() dataset.Params {
	return dataset.Params{
		Categories: viper.GetInt("categories"),
		Tags:       viper.GetInt("tags"),
		Products:   viper.GetInt("products"),
		Links:      viper.GetInt("links"),
		WithLinks:  viper.GetBool("with-links"),
		BatchSize:  viper.GetInt("batch-size"),
		Seed:       viper.GetInt64("seed"),
	}
}

func runSeed(cmd *cobra.Command) error {
	url, err := resolveDB()
	if err != nil {
		return err
	}

	params := seedParams()
	if err := params.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	if createDB {
		if err := db.EnsureDatabase(ctx, url); err != nil {
			return err
		}
	}

	if interactive {
		return tui.RunSeedUI(url, params)
	}

	prompt := fmt.Sprintf("This drops and recreates the dataset (%d categories, %d tags, %d products).",
		params.Categories, params.Tags, params.Products)
	if !assumeYes && !confirm(prompt) {
		output.Warning("Aborted")
		return nil
	}

	pool, err := db.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	printer := &stagePrinter{}
	gen, err := dataset.NewGenerator(pool, params)
	if err != nil {
		return err
	}
	gen.WithProgress(printer.report)

	output.Section("Seeding Dataset")

	run, err := gen.Run(ctx)
	if err != nil {
		var stageErr *dataset.StageError
		if errors.As(err, &stageErr) {
			output.Error("Seeding failed in stage %s: %v", stageErr.Stage, stageErr.Err)
		} else {
			output.Error("Seeding failed: %v", err)
		}
		return err
	}
	printer.finish()

	fmt.Println()
	output.Success("Run %s complete", run.ID)
	output.Info("%d categories, %d tags, %d products", params.Categories, params.Tags, params.Products)
	if params.WithLinks {
		output.Info("%d link attempts (duplicates dropped)", params.Links)
	}
	return nil
}

// confirm asks before a destructive operation.
func confirm(message string) bool {
	output.Warning("%s", message)
	fmt.Print("Continue? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// stagePrinter renders generator progress as plain log lines.
type stagePrinter struct {
	current  dataset.Stage
	lastStep int
}

var stageLabels = map[dataset.Stage]string{
	dataset.StageReset:      "Resetting schema",
	dataset.StageCategories: "Generating categories",
	dataset.StageTags:       "Generating tags",
	dataset.StageProducts:   "Generating products",
	dataset.StageLinks:      "Generating links",
}

func (p *stagePrinter) report(stage dataset.Stage, done, total int) {
	if stage != p.current {
		p.close()
		p.current = stage
		p.lastStep = 0
		if total > 0 {
			output.Info("%s (%d rows)...", stageLabels[stage], total)
		} else {
			output.Info("%s...", stageLabels[stage])
		}
		return
	}

	if !verbose || total == 0 {
		return
	}

	// One line per decile keeps long stages visible without flooding.
	step := done * 10 / total
	if step > p.lastStep {
		p.lastStep = step
		output.Muted("  %s: %d/%d", p.current, done, total)
	}
}

// close marks the stage in progress as finished.
func (p *stagePrinter) close() {
	if p.current != "" {
		output.Success("%s done", stageLabels[p.current])
	}
}

// finish closes the final stage after a successful run.
func (p *stagePrinter) finish() {
	p.close()
	p.current = ""
}
