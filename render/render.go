// Package render draws the view models for a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/utils"
	"github.com/ruth8415/TeamTasks/views"
)

const columnWidth = 34

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BCD4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3A3A3A")).
			Padding(0, 1).
			Width(columnWidth - 2)
	columnStyle = lipgloss.NewStyle().Width(columnWidth).MarginRight(1)

	priorityColors = map[string]lipgloss.Color{
		"accent":  lipgloss.Color("#26C6DA"),
		"primary": lipgloss.Color("#5C6BC0"),
		"warn":    lipgloss.Color("#EF5350"),
	}
)

func priorityBadge(p models.TaskPriority) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(priorityColors[views.PriorityColor(p)]).
		Render(views.PriorityLabel(p))
}

func Teams(teams []models.Team) string {
	if len(teams) == 0 {
		return mutedStyle.Render("No teams yet.")
	}
	var b strings.Builder
	for _, t := range teams {
		fmt.Fprintf(&b, "%s %s", titleStyle.Render(fmt.Sprintf("#%d", t.ID)), t.Name)
		if len(t.Members) > 0 {
			fmt.Fprintf(&b, " %s", mutedStyle.Render(fmt.Sprintf("(%d members)", len(t.Members))))
		}
		b.WriteByte('\n')
		if t.Description != "" {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(t.Description))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func Members(members []models.Member) string {
	if len(members) == 0 {
		return mutedStyle.Render("No members.")
	}
	var b strings.Builder
	for _, m := range members {
		fmt.Fprintf(&b, "%s %s %s\n", titleStyle.Render(fmt.Sprintf("#%d", m.ID)), m.Name, mutedStyle.Render("<"+m.Email+">"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Projects lists projects; the team column is shown when the list is not scoped to one team.
func Projects(projects []models.Project, showTeam bool) string {
	if len(projects) == 0 {
		return mutedStyle.Render("No projects yet.")
	}
	var b strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&b, "%s %s", titleStyle.Render(fmt.Sprintf("#%d", p.ID)), p.Name)
		if showTeam && p.TeamName != "" {
			fmt.Fprintf(&b, " %s", mutedStyle.Render("["+p.TeamName+"]"))
		}
		if d := utils.FormatDate(p.CreatedAt); d != "" {
			fmt.Fprintf(&b, " %s", mutedStyle.Render(d))
		}
		b.WriteByte('\n')
		if p.Description != "" {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(p.Description))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func card(t models.Task) string {
	lines := []string{
		fmt.Sprintf("#%d %s", t.ID, t.Title),
		priorityBadge(t.Priority),
	}
	var where []string
	if t.TeamName != "" {
		where = append(where, t.TeamName)
	}
	if t.ProjectName != "" {
		where = append(where, t.ProjectName)
	}
	if len(where) > 0 {
		lines = append(lines, mutedStyle.Render(strings.Join(where, " / ")))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// Board renders the columns side by side.
func Board(columns []views.Column) string {
	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		parts := []string{headerStyle.Render(fmt.Sprintf("%s (%d)", col.Label, len(col.Tasks)))}
		for _, t := range col.Tasks {
			parts = append(parts, card(t))
		}
		rendered = append(rendered, columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Task renders the details of one task.
func Task(t models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	fmt.Fprintf(&b, "Status:   %s\n", views.StatusLabel(t.Status))
	fmt.Fprintf(&b, "Priority: %s\n", priorityBadge(t.Priority))
	if t.ProjectName != "" {
		fmt.Fprintf(&b, "Project:  %s\n", t.ProjectName)
	}
	if t.TeamName != "" {
		fmt.Fprintf(&b, "Team:     %s\n", t.TeamName)
	}
	if d := utils.FormatDate(t.CreatedAt); d != "" {
		fmt.Fprintf(&b, "Created:  %s\n", d)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func Comments(comments []models.Comment) string {
	if len(comments) == 0 {
		return mutedStyle.Render("No comments yet.")
	}
	var b strings.Builder
	for _, c := range comments {
		meta := utils.FormatDate(&c.CreatedAt)
		if c.Author != nil && c.Author.Name != "" {
			meta = c.Author.Name + " · " + meta
		}
		fmt.Fprintf(&b, "%s %s\n    %s\n", titleStyle.Render(fmt.Sprintf("#%d", c.ID)), mutedStyle.Render(meta), c.Body)
	}
	return strings.TrimRight(b.String(), "\n")
}
