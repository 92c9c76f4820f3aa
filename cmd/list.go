package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/northloop/chatgpt-backup/internal"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations in the backup",
	Long:  `List every reconstructable conversation in the source directory, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := requireSource()
		if err != nil {
			return err
		}

		extractor := internal.NewExtractor(internal.Options{})
		conversations, err := extractor.ExtractAll(dir)
		if err != nil {
			return err
		}

		if len(conversations) == 0 {
			internal.PrintInfo("No conversations found")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d conversation(s)", len(conversations))))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tCREATED\tMESSAGES\tMODEL\tFILE")
		for _, conv := range conversations {
			title := conv.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				titleStyle.Render(title),
				dateStyle.Render(internal.FormatCocoa(conv.CreationDate)),
				countStyle.Render(fmt.Sprintf("%d", conv.MessageCount)),
				conv.Model,
				idStyle.Render(conv.File),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		stats := extractor.Stats()
		if stats.FilesFailed > 0 {
			fmt.Println()
			internal.PrintWarning(fmt.Sprintf("%d file(s) could not be parsed", stats.FilesFailed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
