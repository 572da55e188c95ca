package calendar

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cellStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
	headStyle     = cellStyle.Foreground(lipgloss.Color("245"))
	outsideStyle  = cellStyle.Faint(true)
	todayStyle    = cellStyle.Bold(true).Foreground(lipgloss.Color("#A855F7"))
	selectedStyle = cellStyle.Underline(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Width(35).Align(lipgloss.Center)
	eventStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C084FC"))
)

// Render draws the grid as text. Days with events are marked with an
// asterisk, and the events in the month are listed under the grid.
func Render(w io.Writer, g Grid) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(g.Title()))
	b.WriteString("\n")

	heads := make([]string, len(Weekdays))
	for i, wd := range Weekdays {
		heads[i] = headStyle.Render(wd)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, heads...))
	b.WriteString("\n")

	for _, week := range g.Weeks {
		cells := make([]string, len(week))
		for i, day := range week {
			cells[i] = dayStyle(day).Render(dayLabel(day))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	for _, day := range g.Days() {
		if !day.InMonth {
			continue
		}
		for _, ev := range day.Events {
			line := fmt.Sprintf("%s  %s (%s - %s)", day.Date.Format("Mon Jan 2"), ev.Title, ev.ArtistName, ev.Type)
			b.WriteString("\n")
			b.WriteString(eventStyle.Render(line))
		}
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func dayLabel(day Day) string {
	label := fmt.Sprintf("%d", day.Date.Day())
	if len(day.Events) > 0 {
		label += "*"
	} else {
		label += " "
	}
	return label
}

func dayStyle(day Day) lipgloss.Style {
	switch {
	case day.IsToday:
		return todayStyle
	case day.IsSelected:
		return selectedStyle
	case !day.InMonth:
		return outsideStyle
	default:
		return cellStyle
	}
}
