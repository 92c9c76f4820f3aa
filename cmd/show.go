package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/northloop/chatgpt-backup/internal"
	"github.com/northloop/chatgpt-backup/internal/report"
	"github.com/spf13/cobra"
)

var (
	conversationHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	conversationMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userRoleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	assistantRoleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	toolRoleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginBottom(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <file|remote-id>",
	Short: "Show one conversation transcript",
	Long: `Display the reconstructed transcript of a single conversation,
identified by its source file name or remote id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		dir, err := requireSource()
		if err != nil {
			return err
		}

		extractor := internal.NewExtractor(internal.Options{})
		conversations, err := extractor.ExtractAll(dir)
		if err != nil {
			return err
		}

		var conv *internal.Conversation
		for _, c := range conversations {
			if c.File == target || c.RemoteID == target {
				conv = c
				break
			}
		}
		if conv == nil {
			return fmt.Errorf("conversation not found: %s (use 'chatgpt-backup list' to see available conversations)", target)
		}

		fmt.Println(conversationHeaderStyle.Render(conv.Title))
		fmt.Println(conversationMetaStyle.Render(fmt.Sprintf(
			"File: %s | Created: %s | Model: %s | SHA-256: %s",
			conv.File, internal.FormatCocoa(conv.CreationDate), conv.Model, conv.SHA256)))

		for _, msg := range conv.Messages {
			fmt.Printf("%s %s\n",
				roleStyle(msg.Role).Render(strings.ToUpper(msg.Role)),
				timeStyle.Render(internal.FormatCocoa(msg.Timestamp)))
			fmt.Println(contentStyle.Render(report.SubstituteImages(msg)))
		}
		return nil
	},
}

func roleStyle(role string) lipgloss.Style {
	switch role {
	case "user":
		return userRoleStyle
	case "assistant":
		return assistantRoleStyle
	default:
		return toolRoleStyle
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
