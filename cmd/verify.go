package cmd

import (
	"fmt"

	"github.com/northloop/chatgpt-backup/internal"
	"github.com/spf13/cobra"
)

var verifyCatalogPath string

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify evidence hashes against the catalog",
	Long: `Re-hash every document in the source directory and compare against the
most recent run recorded in the evidence catalog. Any changed, missing or
added file breaks the chain of custody for a repeat extraction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := requireSource()
		if err != nil {
			return err
		}

		current, err := internal.HashDirectory(dir)
		if err != nil {
			return err
		}

		catalog, err := internal.OpenCatalog(verifyCatalogPath)
		if err != nil {
			return err
		}
		defer func() { _ = catalog.Close() }()

		result, err := catalog.Verify(dir, current)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("no recorded run for %s (record one with 'chatgpt-backup extract --catalog %s')", dir, verifyCatalogPath)
		}

		internal.PrintInfo(fmt.Sprintf("Comparing against run %s recorded %s",
			result.Run.ID, result.Run.RecordedAt.Format("2006-01-02 15:04:05")))
		internal.PrintInfo(fmt.Sprintf("%d file(s) matched", len(result.Matched)))

		if result.Clean() {
			internal.PrintSuccess("Evidence unchanged since recorded run")
			return nil
		}

		for _, f := range result.Changed {
			internal.PrintError("changed: " + f)
		}
		for _, f := range result.Missing {
			internal.PrintError("missing: " + f)
		}
		for _, f := range result.Added {
			internal.PrintWarning("added: " + f)
		}
		return fmt.Errorf("evidence differs from recorded run: %d changed, %d missing, %d added",
			len(result.Changed), len(result.Missing), len(result.Added))
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyCatalogPath, "catalog", "evidence-catalog.db", "Evidence catalog database")
}
