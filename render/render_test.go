package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/views"
)

func TestBoard(t *testing.T) {
	columns := []views.Column{
		{Status: models.StatusTodo, Label: "To Do", Tasks: []models.Task{
			{ID: 1, Title: "Write docs", Priority: models.PriorityHigh, ProjectName: "API", TeamName: "Platform"},
		}},
		{Status: models.StatusInProgress, Label: "In Progress", Tasks: []models.Task{}},
		{Status: models.StatusDone, Label: "Done", Tasks: []models.Task{}},
	}

	out := Board(columns)
	assert.Contains(t, out, "To Do (1)")
	assert.Contains(t, out, "In Progress (0)")
	assert.Contains(t, out, "Done (0)")
	assert.Contains(t, out, "#1 Write docs")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Platform / API")
}

func TestProjects(t *testing.T) {
	created := time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local)
	projects := []models.Project{{ID: 3, Name: "API", TeamName: "Platform", CreatedAt: &created}}

	assert.Contains(t, Projects(projects, true), "[Platform]")
	assert.NotContains(t, Projects(projects, false), "[Platform]")
	assert.Contains(t, Projects(projects, false), "01/02/2024")
	assert.Contains(t, Projects(nil, true), "No projects yet.")
}

func TestTaskAndComments(t *testing.T) {
	out := Task(models.Task{ID: 9, Title: "Fix login", Status: models.StatusInProgress, Priority: models.PriorityLow, Description: "Session expires"})
	assert.Contains(t, out, "#9 Fix login")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "Low")
	assert.Contains(t, out, "Session expires")

	comments := Comments([]models.Comment{{ID: 4, Body: "On it", CreatedAt: time.Now(), Author: &models.User{Name: "Ben"}}})
	assert.Contains(t, comments, "On it")
	assert.Contains(t, comments, "Ben")
	assert.Contains(t, Comments(nil), "No comments yet.")
}

func TestTeamsAndMembers(t *testing.T) {
	out := Teams([]models.Team{{ID: 1, Name: "Platform", Description: "infra", Members: []models.Member{{ID: 2}}}})
	assert.Contains(t, out, "Platform")
	assert.Contains(t, out, "(1 members)")
	assert.Contains(t, out, "infra")

	assert.Contains(t, Members([]models.Member{{ID: 2, Name: "Ben", Email: "ben@example.com"}}), "<ben@example.com>")
	assert.Contains(t, Teams(nil), "No teams yet.")
}
