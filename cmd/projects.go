package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/azpanel/internal/giturl"
)

var projectsSearch string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects and repositories non-interactively",
	Long: `Fetch the organization hierarchy and print it as a tree. With --search
the same two-level filter as the interactive panel is applied: a project is
shown when it or any of its repositories matches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, closeStore, err := openPanel()
		if err != nil {
			return err
		}
		defer closeStore()

		if !panel.Connected() {
			return fmt.Errorf("not connected; run 'azpanel connect' first")
		}

		if err := panel.Refresh(cmd.Context()); err != nil {
			return err
		}

		panel.SetQuery(projectsSearch)

		view := panel.View()
		if view.NoResults {
			fmt.Printf("No projects or repositories match %q.\n", projectsSearch)

			return nil
		}

		for _, fp := range view.Projects {
			fmt.Printf("%s\n", fp.Project.Name)

			for _, repo := range fp.Repositories {
				fmt.Printf("  %-30s %s\n", repo.Name,
					giturl.Build(giturl.KindHTTPS, panel.Credentials().OrganizationURL, fp.Project.Name, repo.Name))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.Flags().StringVar(&projectsSearch, "search", "", "Filter projects and repositories")
}
