package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inovacc/azpanel/internal/cli"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse the organization hierarchy",
	Long: `Open the interactive panel. Use arrow keys to navigate, Enter to expand
a project, / to filter, and c/s to copy HTTPS or SSH clone commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, closeStore, err := openPanel()
		if err != nil {
			return err
		}
		defer closeStore()

		if !panel.Connected() {
			return fmt.Errorf("not connected; run 'azpanel connect' first")
		}

		p := tea.NewProgram(cli.NewPanelModel(panel), tea.WithAltScreen())

		_, err = p.Run()

		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
