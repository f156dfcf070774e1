package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/someonegg/stablematch/school"
)

var (
	reportTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	reportSchoolStyle = lipgloss.NewStyle().Bold(true)
	reportDimStyle    = lipgloss.NewStyle().Faint(true)
	reportWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func renderReport(alloc *school.Allocation) string {
	var b strings.Builder

	b.WriteString(reportTitleStyle.Render(fmt.Sprintf(
		"School allocation completed in %d rounds (%s proposing)", alloc.Rounds, alloc.Proposing)))
	b.WriteString("\n\n")

	for _, s := range alloc.Schools {
		b.WriteString(reportSchoolStyle.Render(s.Name))
		b.WriteString(reportDimStyle.Render(fmt.Sprintf(" (%d/%d)", len(s.Students), s.Capacity)))
		if len(s.Students) == 0 {
			b.WriteString(": -\n")
		} else {
			b.WriteString(": " + strings.Join(s.Students, ", ") + "\n")
		}
	}
	b.WriteString("\n")

	if len(alloc.Unmatched) == 0 {
		b.WriteString("All students have been allocated.\n")
	} else {
		b.WriteString(reportWarnStyle.Render("Unmatched students: " + strings.Join(alloc.Unmatched, ", ")))
		b.WriteString("\n")
	}

	summ := alloc.Summary
	b.WriteString(reportDimStyle.Render(fmt.Sprintf("students: %d, schools: %d, seats: %d, filled: %d",
		summ.StudentsCount, summ.SchoolsCount, summ.Seats, summ.SeatsFilled)))
	b.WriteString("\n")
	return b.String()
}
