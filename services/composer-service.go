package services

import "github.com/ruth8415/TeamTasks/models"

// EnrichProjects attaches the owning team's name to each project. Projects whose
// team is not in teams keep an empty TeamName.
func EnrichProjects(projects []models.Project, teams []models.Team) []models.Project {
	teamNames := make(map[int64]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	enriched := make([]models.Project, len(projects))
	for i, p := range projects {
		p.TeamName = teamNames[p.TeamID]
		enriched[i] = p
	}
	return enriched
}

// EnrichTasks attaches project and team names to each task by walking
// task -> project -> team.
func EnrichTasks(tasks []models.Task, projects []models.Project, teams []models.Team) []models.Task {
	projectsByID := make(map[int64]models.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ID] = p
	}
	teamNames := make(map[int64]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	enriched := make([]models.Task, len(tasks))
	for i, t := range tasks {
		t.ProjectName = ""
		t.TeamName = ""
		if p, ok := projectsByID[t.ProjectID]; ok {
			t.ProjectName = p.Name
			t.TeamName = teamNames[p.TeamID]
		}
		enriched[i] = t
	}
	return enriched
}
