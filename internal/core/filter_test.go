package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inovacc/azpanel/internal/model"
)

func fixtureProjects() []model.Project {
	return []model.Project{
		{ID: "1", Name: "Alpha"},
		{ID: "2", Name: "Beta", Description: "contains widget"},
	}
}

func fixtureRepos() map[string][]model.Repository {
	return map[string][]model.Repository{
		"2": {{ID: "r1", Name: "gizmo"}},
	}
}

func TestComputeFilteredView_EmptyQueryShowsEverything(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		view := ComputeFilteredView(q, fixtureProjects(), fixtureRepos())

		assert.Len(t, view.Projects, 2)
		assert.False(t, view.NoResults)

		// Full repository lists, unfiltered
		assert.Empty(t, view.Projects[0].Repositories)
		assert.Len(t, view.Projects[1].Repositories, 1)
	}
}

func TestComputeFilteredView_DescriptionMatchShowsProjectWithEmptyRepos(t *testing.T) {
	view := ComputeFilteredView("widget", fixtureProjects(), fixtureRepos())

	assert.Len(t, view.Projects, 1)
	assert.Equal(t, "2", view.Projects[0].Project.ID)

	// Description matched but no repository does, so zero repositories show.
	assert.Empty(t, view.Projects[0].Repositories)
	assert.False(t, view.NoResults)
}

func TestComputeFilteredView_RepositoryMatchShowsOwningProject(t *testing.T) {
	view := ComputeFilteredView("gizmo", fixtureProjects(), fixtureRepos())

	assert.Len(t, view.Projects, 1)
	assert.Equal(t, "2", view.Projects[0].Project.ID)
	assert.Equal(t, []model.Repository{{ID: "r1", Name: "gizmo"}}, view.Projects[0].Repositories)
}

func TestComputeFilteredView_CaseInsensitive(t *testing.T) {
	view := ComputeFilteredView("ALPHA", fixtureProjects(), fixtureRepos())

	assert.Len(t, view.Projects, 1)
	assert.Equal(t, "1", view.Projects[0].Project.ID)
}

func TestComputeFilteredView_NoResults(t *testing.T) {
	view := ComputeFilteredView("nothing-matches-this", fixtureProjects(), fixtureRepos())

	assert.Empty(t, view.Projects)
	assert.True(t, view.NoResults)
}

func TestComputeFilteredView_PrefixMonotonicity(t *testing.T) {
	projects := []model.Project{
		{ID: "1", Name: "payments"},
		{ID: "2", Name: "platform", Description: "shared services"},
		{ID: "3", Name: "ops"},
	}
	repos := map[string][]model.Repository{
		"1": {{ID: "r1", Name: "payment-gateway"}, {ID: "r2", Name: "ledger"}},
		"2": {{ID: "r3", Name: "platform-api"}},
		"3": {{ID: "r4", Name: "payroll"}},
	}

	shown := func(q string) map[string]bool {
		ids := map[string]bool{}
		for _, fp := range ComputeFilteredView(q, projects, repos).Projects {
			ids[fp.Project.ID] = true
		}
		return ids
	}

	// Each longer prefix may only narrow the shown set.
	query := "payment"
	for i := 1; i < len(query); i++ {
		wider := shown(query[:i])

		for id := range shown(query[:i+1]) {
			assert.True(t, wider[id], "project %s shown for %q but not for prefix %q", id, query[:i+1], query[:i])
		}
	}
}

func TestComputeFilteredView_DoesNotMutateInputs(t *testing.T) {
	projects := fixtureProjects()
	repos := fixtureRepos()

	_ = ComputeFilteredView("gizmo", projects, repos)

	assert.Equal(t, fixtureProjects(), projects)
	assert.Equal(t, fixtureRepos(), repos)
}
