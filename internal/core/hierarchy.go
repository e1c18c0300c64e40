package core

import (
	"context"
	"log/slog"

	"github.com/inovacc/azpanel/internal/model"
)

// Lister lists the two levels of the organization hierarchy. It is
// implemented by devops.Client; tests substitute fakes.
type Lister interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListRepositories(ctx context.Context, projectID, projectName string) ([]model.Repository, error)
}

// Hierarchy is the fetched project list plus the per-project repository
// map. A map key exists for every project whose fetch attempt completed,
// success or failure; absence means "not yet attempted."
type Hierarchy struct {
	Projects     []model.Project
	Repositories map[string][]model.Repository
}

// EmptyHierarchy returns a hierarchy with no projects and an initialized map.
func EmptyHierarchy() Hierarchy {
	return Hierarchy{Repositories: map[string][]model.Repository{}}
}

// FetchHierarchy performs the two-level fetch. Projects are processed
// strictly sequentially in API response order; a failed repository listing
// is isolated to its project and recorded as an empty list. A failed
// project listing yields an empty hierarchy.
//
// Sequential orchestration is a deliberate rate-limit-safety tradeoff over
// parallel fan-out. A bounded-concurrency Lister wrapper can be substituted
// as long as isolation and final map order are preserved.
func FetchHierarchy(ctx context.Context, lister Lister, logger *slog.Logger) Hierarchy {
	if logger == nil {
		logger = slog.Default()
	}

	projects, err := lister.ListProjects(ctx)
	if err != nil {
		logger.Warn("project listing failed", slog.Any("error", err))

		return EmptyHierarchy()
	}

	h := Hierarchy{
		Projects:     projects,
		Repositories: make(map[string][]model.Repository, len(projects)),
	}

	for _, p := range projects {
		repos, err := lister.ListRepositories(ctx, p.ID, p.Name)
		if err != nil {
			logger.Warn("repository listing failed",
				slog.String("project", p.Name),
				slog.Any("error", err),
			)

			repos = nil
		}

		if repos == nil {
			repos = []model.Repository{}
		}

		h.Repositories[p.ID] = repos
	}

	return h
}

// RepositoryCount returns the total number of fetched repositories.
func (h Hierarchy) RepositoryCount() int {
	n := 0
	for _, repos := range h.Repositories {
		n += len(repos)
	}

	return n
}
