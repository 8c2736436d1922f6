package services

import "github.com/ruth8415/TeamTasks/store"

// CurrentTeam remembers which team the user is browsing.
type CurrentTeam struct {
	*store.Value[int64]
}

func NewCurrentTeam() *CurrentTeam {
	return &CurrentTeam{Value: store.NewValue[int64]()}
}

// ID returns the current team id, 0 when none is selected.
func (c *CurrentTeam) ID() int64 {
	id, _ := c.Get()
	return id
}

// SetCurrentTeam selects teamID; 0 clears the selection.
func (c *CurrentTeam) SetCurrentTeam(teamID int64) {
	if teamID == 0 {
		c.Clear()
		return
	}
	c.Set(teamID)
}
