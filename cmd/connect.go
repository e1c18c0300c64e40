package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inovacc/azpanel/internal/giturl"
	"github.com/inovacc/azpanel/internal/model"
)

var (
	connectURL   string
	connectToken string
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Attach an Azure DevOps organization",
	Long: `Store the organization URL and personal access token, then fetch the
project and repository hierarchy. The token is read from a hidden prompt
when --token is not given and is sealed before it is written to disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orgURL := strings.TrimSpace(connectURL)
		if orgURL == "" {
			fmt.Print("Organization URL (e.g. https://dev.azure.com/acme): ")

			reader := bufio.NewReader(os.Stdin)

			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read organization URL: %w", err)
			}

			orgURL = strings.TrimSpace(line)
		}

		token := strings.TrimSpace(connectToken)
		if token == "" {
			fmt.Print("Personal access token: ")

			raw, err := term.ReadPassword(int(os.Stdin.Fd()))

			_, _ = fmt.Fprintln(os.Stderr)

			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}

			token = strings.TrimSpace(string(raw))
		}

		panel, closeStore, err := openPanel()
		if err != nil {
			return err
		}
		defer closeStore()

		creds := &model.Credentials{OrganizationURL: orgURL, AccessToken: token}

		if err := panel.Connect(cmd.Context(), creds); err != nil {
			return err
		}

		h := panel.Hierarchy()

		fmt.Printf("✓ Connected to %s: %d projects, %d repositories\n",
			giturl.Slug(orgURL), len(h.Projects), h.RepositoryCount())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().StringVar(&connectURL, "url", "", "Organization URL")
	connectCmd.Flags().StringVar(&connectToken, "token", "", "Personal access token (prompted when omitted)")
}
