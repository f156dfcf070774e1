package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/someonegg/stablematch/school"
)

var errNoSide = errors.New("no proposing side selected")

type menuChoice struct {
	side  school.Side
	label string
}

var menuChoices = []menuChoice{
	{school.Students, "Students propose to schools"},
	{school.Schools, "Schools propose to students"},
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true)
	menuCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	menuSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	menuHelpStyle     = lipgloss.NewStyle().Faint(true)
)

// menuModel asks which side proposes.
type menuModel struct {
	cursor int
	chosen school.Side
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuChoices)-1 {
			m.cursor++
		}
	case "1", "2":
		m.cursor = int(key.Runes[0] - '1')
		m.chosen = menuChoices[m.cursor].side
		return m, tea.Quit
	case "enter", " ":
		m.chosen = menuChoices[m.cursor].side
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.chosen != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("Welcome to the School Allocation System"))
	b.WriteString("\n\nPlease select an option from the following:\n")
	for i, choice := range menuChoices {
		line := fmt.Sprintf("%d. %s", i+1, choice.label)
		if i == m.cursor {
			b.WriteString(menuCursorStyle.Render("> ") + menuSelectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + menuHelpStyle.Render("up/down to move, enter to select, q to quit") + "\n")
	return b.String()
}

func selectSide(in io.Reader, out io.Writer) (school.Side, error) {
	p := tea.NewProgram(menuModel{}, tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(menuModel); ok && m.chosen != "" {
		return m.chosen, nil
	}
	return "", errNoSide
}
