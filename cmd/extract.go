package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/northloop/chatgpt-backup/internal"
	"github.com/northloop/chatgpt-backup/internal/report"
	"github.com/spf13/cobra"
)

var (
	format      string
	outputDir   string
	caseFile    string
	dateFrom    string
	dateTo      string
	catalogPath string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract conversations and write a report",
	Long: `Reconstruct every conversation in the source directory and render a
report (html, json, csv, md).

Each source file is hashed (SHA-256) before parsing, malformed files are
recorded and skipped, and the run can be recorded in an evidence catalog
for later verification with 'chatgpt-backup verify'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := requireSource()
		if err != nil {
			return err
		}

		opts, err := parseDateRange()
		if err != nil {
			return err
		}

		caseInfo := internal.CaseInfo{}
		if caseFile != "" {
			caseInfo, err = internal.LoadCaseInfo(caseFile)
			if err != nil {
				return err
			}
		}

		extractor := internal.NewExtractor(opts)
		conversations, err := extractor.ExtractAll(dir)
		if err != nil {
			return err
		}

		device := internal.CollectDeviceInfo(dir)
		run := extractor.NewRun(dir, device, caseInfo, conversations)

		reporter, err := report.NewReporter(format)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outPath := filepath.Join(outputDir, "chatgpt_forensic_report."+reporter.Extension())

		file, err := os.Create(outPath)
		if err != nil {
			return &internal.ReportError{Format: format, Path: outPath, Err: err}
		}
		if err := reporter.Render(run, file); err != nil {
			_ = file.Close()
			return &internal.ReportError{Format: format, Path: outPath, Err: err}
		}
		if err := file.Close(); err != nil {
			return &internal.ReportError{Format: format, Path: outPath, Err: err}
		}

		if catalogPath != "" {
			catalog, err := internal.OpenCatalog(catalogPath)
			if err != nil {
				return err
			}
			defer func() { _ = catalog.Close() }()

			runID, err := catalog.RecordRun(run)
			if err != nil {
				return err
			}
			internal.LogInfo("Run recorded in catalog: %s", runID)
		}

		stats := extractor.Stats()
		internal.PrintSuccess(fmt.Sprintf("Report written: %s", outPath))
		internal.PrintInfo(fmt.Sprintf("%d conversation(s), %d message(s) from %d file(s)",
			len(conversations), stats.MessageTotal, stats.FilesTotal))
		if stats.FilesFailed > 0 {
			internal.PrintWarning(fmt.Sprintf("%d file(s) failed to parse:", stats.FilesFailed))
			for i, msg := range stats.Errors {
				if i >= 5 {
					internal.PrintWarning(fmt.Sprintf("... and %d more (see the report error list)", len(stats.Errors)-i))
					break
				}
				internal.PrintWarning("  " + msg)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&format, "format", "f", "html", "Report format (html, json, csv, md)")
	extractCmd.Flags().StringVarP(&outputDir, "out", "o", ".", "Output directory")
	extractCmd.Flags().StringVar(&caseFile, "case", "", "Case metadata YAML file")
	extractCmd.Flags().StringVar(&dateFrom, "from", "", "Only include conversations created on or after this date (YYYY-MM-DD)")
	extractCmd.Flags().StringVar(&dateTo, "to", "", "Only include conversations created on or before this date (YYYY-MM-DD)")
	extractCmd.Flags().StringVar(&catalogPath, "catalog", "", "Evidence catalog database to record this run in")
}

// parseDateRange builds extraction options from the --from/--to flags.
func parseDateRange() (internal.Options, error) {
	var opts internal.Options
	var err error
	if dateFrom != "" {
		if opts.DateFrom, err = internal.ParseReportDate(dateFrom); err != nil {
			return opts, err
		}
	}
	if dateTo != "" {
		if opts.DateTo, err = internal.ParseReportDate(dateTo); err != nil {
			return opts, err
		}
	}
	return opts, nil
}
