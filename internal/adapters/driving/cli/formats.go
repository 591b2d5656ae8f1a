package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and conversions",
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	formatStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func runFormats(cmd *cobra.Command, _ []string) error {
	if codecRegistry == nil {
		return errors.New("codec registry not configured")
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(style lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return style.Render(text)
	}

	formats := codecRegistry.Formats()

	cmd.Println(render(headingStyle, "Supported formats"))
	for _, format := range formats {
		cmd.Printf("  %s\n", render(formatStyle, string(format)))
	}

	cmd.Println()
	cmd.Println(render(headingStyle, "Conversions"))
	for _, from := range formats {
		for _, to := range formats {
			if from == to {
				continue
			}
			cmd.Printf("  %s %s %s\n",
				render(formatStyle, string(from)),
				render(dimStyle, "->"),
				render(formatStyle, string(to)))
		}
	}

	return nil
}
