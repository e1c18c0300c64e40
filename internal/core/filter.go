package core

import (
	"strings"

	"github.com/inovacc/azpanel/internal/model"
)

// FilteredProject is a visible project together with the subset of its
// repositories that match the active query.
type FilteredProject struct {
	Project      model.Project
	Repositories []model.Repository
}

// FilteredView is the hierarchy as narrowed by a search query.
type FilteredView struct {
	Projects []FilteredProject

	// NoResults is true exactly when the query is non-empty and no
	// project is shown.
	NoResults bool
}

// ComputeFilteredView applies the query to the project list and repository
// map. A project is shown when its own name or description matches, or when
// at least one of its repositories matches. The repository sub-list is
// always filtered independently, so a project shown via a description match
// can display zero repositories.
//
// The function is pure: inputs are never mutated.
func ComputeFilteredView(query string, projects []model.Project, repos map[string][]model.Repository) FilteredView {
	q := strings.ToLower(strings.TrimSpace(query))

	view := FilteredView{Projects: make([]FilteredProject, 0, len(projects))}

	for _, p := range projects {
		projectRepos := repos[p.ID]

		if q == "" {
			view.Projects = append(view.Projects, FilteredProject{Project: p, Repositories: projectRepos})
			continue
		}

		matching := matchingRepositories(q, projectRepos)

		if !matchesQuery(q, p.Name, p.Description) && len(matching) == 0 {
			continue
		}

		view.Projects = append(view.Projects, FilteredProject{Project: p, Repositories: matching})
	}

	view.NoResults = q != "" && len(view.Projects) == 0

	return view
}

func matchingRepositories(q string, repos []model.Repository) []model.Repository {
	matching := make([]model.Repository, 0, len(repos))

	for _, r := range repos {
		if matchesQuery(q, r.Name, r.Description) {
			matching = append(matching, r)
		}
	}

	return matching
}

// matchesQuery reports whether the lower-cased query occurs in the name or
// description. The query is assumed to be normalized already.
func matchesQuery(q, name, description string) bool {
	return strings.Contains(strings.ToLower(name), q) ||
		strings.Contains(strings.ToLower(description), q)
}
