package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/azpanel/internal/application"
	"github.com/inovacc/azpanel/internal/core"
	"github.com/inovacc/azpanel/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Browse Azure DevOps organizations from the terminal",
	Long: `Azpanel attaches an Azure DevOps organization with a personal access
token, browses its projects and Git repositories, searches across both
levels, and copies ready-to-use git clone commands to the clipboard.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// openPanel opens the credential store and hydrates a panel controller.
// The returned cleanup closes the store.
func openPanel() (*core.Panel, func(), error) {
	st, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	panel := core.NewPanel(st, core.PanelOptions{})

	if err := panel.Hydrate(); err != nil {
		_ = st.Close()

		return nil, nil, err
	}

	return panel, func() { _ = st.Close() }, nil
}
