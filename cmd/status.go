package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/azpanel/internal/giturl"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the connection state",
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, closeStore, err := openPanel()
		if err != nil {
			return err
		}
		defer closeStore()

		if !panel.Connected() {
			fmt.Println("Disconnected. Run 'azpanel connect' to attach an organization.")

			return nil
		}

		creds := panel.Credentials()

		fmt.Println("Connected")
		fmt.Printf("  Organization: %s\n", creds.OrganizationURL)
		fmt.Printf("  Slug:         %s\n", giturl.Slug(creds.OrganizationURL))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
