package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Detach the organization and clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, closeStore, err := openPanel()
		if err != nil {
			return err
		}
		defer closeStore()

		if !panel.Connected() {
			fmt.Println("No organization connected.")

			return nil
		}

		if err := panel.Disconnect(); err != nil {
			return err
		}

		fmt.Println("✓ Disconnected; credentials cleared.")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
