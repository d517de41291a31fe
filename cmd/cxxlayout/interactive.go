package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	selectedTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	sections []section
	table    table.Model
	selected int
	width    int
}

func newInteractiveModel(sections []section) *interactiveModel {
	m := &interactiveModel{sections: sections}
	m.table = table.New(table.WithFocused(true), table.WithHeight(10))
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	m.table.SetStyles(styles)
	m.load()
	return m
}

// load shows the selected section in the table.
func (m *interactiveModel) load() {
	s := m.sections[m.selected]
	widths := make([]int, len(s.header))
	for i, h := range s.header {
		widths[i] = len(h)
	}
	rows := make([]table.Row, 0, len(s.rows))
	for _, r := range s.rows {
		for i, cell := range r {
			widths[i] = max(widths[i], len(cell))
		}
		rows = append(rows, table.Row(r))
	}
	cols := make([]table.Column, len(s.header))
	for i, h := range s.header {
		cols[i] = table.Column{Title: h, Width: widths[i] + 2}
	}
	// Rows must be cleared before the column count changes.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(msg.Height-8, 3))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			m.selected = (m.selected + len(m.sections) - 1) % len(m.sections)
			m.load()
			return m, nil
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % len(m.sections)
			m.load()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// tabs renders as many section tabs around the selected one as fit in
// width. Hidden tabs on either side are marked with an arrow.
func (m *interactiveModel) tabs(width int) string {
	rendered := make([]string, len(m.sections))
	for i, s := range m.sections {
		style := tabStyle
		if i == m.selected {
			style = selectedTabStyle
		}
		rendered[i] = style.Render(s.title)
	}
	const marker = 2
	start, end := m.selected, m.selected+1
	used := lipgloss.Width(rendered[m.selected]) + 2*marker
	for grew := true; grew; {
		grew = false
		if end < len(rendered) && used+lipgloss.Width(rendered[end]) <= width {
			used += lipgloss.Width(rendered[end])
			end++
			grew = true
		}
		if start > 0 && used+lipgloss.Width(rendered[start-1]) <= width {
			start--
			used += lipgloss.Width(rendered[start])
			grew = true
		}
	}
	var b strings.Builder
	if start > 0 {
		b.WriteString(helpStyle.Render("‹ "))
	}
	b.WriteString(strings.Join(rendered[start:end], ""))
	if end < len(rendered) {
		b.WriteString(helpStyle.Render(" ›"))
	}
	return b.String()
}

func (m *interactiveModel) View() string {
	width := max(m.width, 80)
	var b strings.Builder
	b.WriteString(m.tabs(width))
	b.WriteString("\n\n")
	s := m.sections[m.selected]
	b.WriteString(summaryStyle.Render(s.summary) + "\n\n")
	b.WriteString(m.table.View() + "\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d  ←/→ section  ↑/↓ field  q quit", m.selected+1, len(m.sections))))
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func runInteractive(sections []section) error {
	p := tea.NewProgram(newInteractiveModel(sections), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
