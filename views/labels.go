package views

import "github.com/ruth8415/TeamTasks/models"

type Option struct {
	Value string
	Label string
}

var StatusOptions = []Option{
	{Value: string(models.StatusTodo), Label: "To Do"},
	{Value: string(models.StatusInProgress), Label: "In Progress"},
	{Value: string(models.StatusDone), Label: "Done"},
}

var PriorityOptions = []Option{
	{Value: string(models.PriorityLow), Label: "Low"},
	{Value: string(models.PriorityNormal), Label: "Normal"},
	{Value: string(models.PriorityHigh), Label: "High"},
}

func labelOf(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// StatusLabel returns the display label, or the raw value if unknown.
func StatusLabel(s models.TaskStatus) string {
	return labelOf(StatusOptions, string(s))
}

func PriorityLabel(p models.TaskPriority) string {
	return labelOf(PriorityOptions, string(p))
}

// PriorityColor maps a priority to a palette role: accent, primary or warn.
func PriorityColor(p models.TaskPriority) string {
	switch p {
	case models.PriorityLow:
		return "accent"
	case models.PriorityHigh:
		return "warn"
	default:
		return "primary"
	}
}
