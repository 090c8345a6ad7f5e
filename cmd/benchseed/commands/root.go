package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	dbURL      string
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "benchseed",
	Short: "benchseed - synthetic relational dataset generator for query benchmarks",
	Long: `benchseed seeds a PostgreSQL database with a self-consistent relational
dataset (categories, tags, products, product-tag links) used to benchmark
downstream query and dataflow workloads.

Every run starts by dropping and recreating the dataset, so re-running with
the same parameters always yields a dataset with identical cardinalities and
invariants. Referential constraints are declared in the schema and enforced
by PostgreSQL.

The database URL is resolved from --db, then $BENCHSEED_DB, then
$DATABASE_URL (a .env file is honored).`,
	Version: "1.3.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env files are fine; explicit flags and env still apply.
		_ = godotenv.Load()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// initConfig wires viper so scale parameters can come from benchseed.yaml or
// BENCHSEED_* environment variables as well as flags (flags win).
func initConfig() {
	viper.SetConfigName("benchseed")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BENCHSEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// The config file is optional.
	_ = viper.ReadInConfig()
}

// resolveDB returns the database URL or an error naming every place it
// could have been set.
func resolveDB() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	if url := viper.GetString("db"); url != "" {
		return url, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("no database configured: set --db, $BENCHSEED_DB or $DATABASE_URL")
}
