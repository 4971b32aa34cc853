package review

import (
	"fmt"
	"path/filepath"
	"strings"

	"reportbook/internal/excel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the workbook review TUI
type model struct {
	workbook string
	sheets   []excel.SheetSummary

	cursor int

	// Screen dimensions
	width  int
	height int

	// Styling
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	helpStyle     lipgloss.Style
	detailStyle   lipgloss.Style
	boldStyle     lipgloss.Style
	plainStyle    lipgloss.Style
}

func initialModel(workbook string, sheets []excel.SheetSummary) model {
	return model{
		workbook: workbook,
		sheets:   sheets,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		detailStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		boldStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		plainStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sheets)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if len(m.sheets) > 0 {
				m.cursor = len(m.sheets) - 1
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render(filepath.Base(m.workbook)))
	b.WriteString("\n\n")

	if len(m.sheets) == 0 {
		b.WriteString(m.helpStyle.Render("Workbook has no sheets"))
		b.WriteString("\n")
		return b.String()
	}

	var list strings.Builder
	for i, sheet := range m.sheets {
		line := fmt.Sprintf("%d. %-22s %5d rows", i+1, sheet.Name, sheet.Rows)
		if i == m.cursor {
			list.WriteString(m.selectedStyle.Render(line))
		} else {
			list.WriteString(m.normalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", m.viewDetail()))
	b.WriteString("\n\n")

	help := "↑↓: select sheet | g/G: first/last | q: quit"
	b.WriteString(m.helpStyle.Render(help))

	return b.String()
}

func (m model) viewDetail() string {
	sheet := m.sheets[m.cursor]

	var d strings.Builder
	d.WriteString(m.titleStyle.Render(sheet.Name))
	d.WriteString("\n")
	d.WriteString(fmt.Sprintf("Rows: %d  Columns: %d\n", sheet.Rows, len(sheet.Header)))
	if sheet.HeaderBold {
		d.WriteString(m.boldStyle.Render("Header: bold"))
	} else {
		d.WriteString(m.plainStyle.Render("Header: regular"))
	}
	d.WriteString("\n\n")

	for i, name := range sheet.Header {
		width := 0.0
		if i < len(sheet.Widths) {
			width = sheet.Widths[i]
		}
		d.WriteString(fmt.Sprintf("%-30s width %4.1f\n", truncate(name, 30), width))
	}

	return m.detailStyle.Render(strings.TrimRight(d.String(), "\n"))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// Run opens the saved workbook and starts the interactive review
func Run(workbookPath string) error {
	sheets, err := excel.ScanWorkbook(workbookPath)
	if err != nil {
		return fmt.Errorf("failed to scan workbook: %v", err)
	}

	p := tea.NewProgram(initialModel(workbookPath, sheets), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %v", err)
	}
	return nil
}
