package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imamrpratama/folio"
	"github.com/imamrpratama/folio/content"
)

var (
	seedDB     string
	seedDryRun bool
)

var seedCmd = &cobra.Command{
	Use:   "seed [content.yaml]",
	Short: "Validate a content file and write it into the store",
	Long: `Load a YAML content file (or the built-in content when no file is given),
validate it, and replace the catalog held in the SQLite store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDB, "db", "", "SQLite database path (overrides FOLIO_DB)")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Validate only; do not write the store")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	cat, err := content.Load(path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	out := cmd.OutOrStdout()
	if seedDryRun {
		fmt.Fprintf(out, "content ok: %d projects, %d skill categories\n", len(cat.Projects), len(cat.Skills))
		return nil
	}

	dbPath := seedDB
	if dbPath == "" {
		dbPath = folio.EnvOr("FOLIO_DB", "data/folio.db")
	}
	store, err := folio.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.Seed(cat); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	fmt.Fprintf(out, "seeded %s: %d projects, %d skill categories\n", dbPath, len(cat.Projects), len(cat.Skills))
	return nil
}
