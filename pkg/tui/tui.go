package tui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/unowned-ai/epoch/pkg/history"
	"github.com/unowned-ai/epoch/pkg/timestamps"
)

const (
	focusInput   = 0
	focusHistory = 1
)

type model struct {
	records []history.Record

	input  textinput.Model
	status string // Result of the last save attempt

	focus  int // 0 = epoch input, 1 = history list
	width  int
	height int
	err    error

	db  *sql.DB
	loc *time.Location

	quitting bool

	cursor           int // Index of selected history record
	deleting         bool
	deleteConfirmIdx int // 0 = "Yes" selected, 1 = "No"
}

func initModel(db *sql.DB, loc *time.Location) model {
	in := textinput.New()
	in.Placeholder = "1630779114123"
	in.CharLimit = 24
	in.Focus()

	return model{
		records: []history.Record{},
		input:   in,
		focus:   focusInput,
		db:      db,
		loc:     loc,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(listRecords(m.db), textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case []history.Record:
		m.records = msg
		m.cursor = 0
		return m, nil

	case recordSavedMsg:
		m.records = append([]history.Record{history.Record(msg)}, m.records...)
		m.cursor = 0
		m.status = fmt.Sprintf("Saved %s as %s", msg.Input, msg.Unit)
		m.input.Reset()
		return m, nil

	case recordDeletedMsg:
		for i, r := range m.records {
			if r.ID == uuid.UUID(msg) {
				m.records = append(m.records[:i], m.records[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.records) && m.cursor > 0 {
			m.cursor--
		}
		if len(m.records) == 0 {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case tea.KeyMsg:
		if m.deleting {
			return m.updateDeleting(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "tab":
			if m.focus == focusInput && len(m.records) > 0 {
				m.focus = focusHistory
				m.input.Blur()
			} else {
				m.focus = focusInput
				m.input.Focus()
			}
			return m, nil
		}

		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateHistory(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		value := m.input.Value()
		parsed, ok := timestamps.TryParse(value)
		if !ok {
			m.status = "Failed to parse argument"
			return m, nil
		}
		return m, saveRecord(m.db, value, parsed)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "d":
		if len(m.records) > 0 {
			m.deleteConfirmIdx = 1
			m.deleting = true
		}
	}
	return m, nil
}

func (m model) updateDeleting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.deleteConfirmIdx = 0
	case "down", "j":
		m.deleteConfirmIdx = 1
	case "enter":
		m.deleting = false
		if m.deleteConfirmIdx == 0 {
			return m, deleteRecord(m.db, m.records[m.cursor].ID)
		}
	case "esc":
		m.deleting = false
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	// Exit alt screen before quitting so the goodbye message displays
	return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)
}

// conversionLines renders what input converts to, one line per field.
func conversionLines(input string, loc *time.Location) []string {
	if input == "" {
		return []string{"Type an epoch in seconds, milli-, micro- or nano-seconds."}
	}
	parsed, ok := timestamps.TryParse(input)
	if !ok {
		return []string{errorStyle.Render("Failed to parse argument")}
	}
	utc := parsed.Time()
	return []string{
		labelStyle.Render("Assuming:   ") + unitStyle.Render(parsed.Unit.String()),
		labelStyle.Render("UTC:        ") + valueStyle.Render(timestamps.FormatRFC3339(utc)),
		labelStyle.Render("Local:      ") + valueStyle.Render(timestamps.FormatRFC3339(utc.In(loc))),
		labelStyle.Render("Epoch (s):  ") + valueStyle.Render(fmt.Sprint(utc.Unix())),
		labelStyle.Render("Epoch (ms): ") + valueStyle.Render(fmt.Sprint(utc.UnixMilli())),
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	titleBar := titleStyle.Width(m.width).Render("Epoch - timestamp converter")
	leftWidth, rightWidth := m.columnWidths()
	m.input.Width = leftWidth - bordersAndPaddingWidth - 2

	var leftBuilder strings.Builder
	leftBuilder.WriteString(subtitleStyle.Render("  Convert"))
	leftBuilder.WriteString("\n\n")
	leftBuilder.WriteString(generateLinePointer(m.focus == focusInput, 2) + m.input.View() + "\n\n")
	leftBuilder.WriteString(strings.Join(conversionLines(m.input.Value(), m.loc), "\n"))
	if m.status != "" {
		leftBuilder.WriteString("\n\n" + footerStyle.Render(m.status))
	}

	var rightBuilder strings.Builder
	if m.deleting {
		rightBuilder.WriteString(subtitleStyle.Render("Delete Record"))
		rightBuilder.WriteString("\n\n")
		rightBuilder.WriteString("Input: " + errorStyle.Render(m.records[m.cursor].Input) + "\n\n")
		yesOpt, noOpt := "Yes", "No"
		if m.deleteConfirmIdx == 0 {
			yesOpt = dangerSelectedStyle.Render(" >" + yesOpt)
			noOpt = inactiveStyle.Render("  " + noOpt)
		} else {
			yesOpt = inactiveStyle.Render("  " + yesOpt)
			noOpt = selectedStyle.Render(" >" + noOpt)
		}
		rightBuilder.WriteString(fmt.Sprintf("%s\n%s\n\n", yesOpt, noOpt))
		rightBuilder.WriteString("(enter to confirm, esc to cancel, up/down to switch)")
	} else {
		rightBuilder.WriteString(subtitleStyle.Render("  History"))
		rightBuilder.WriteString("\n\n")
		if len(m.records) == 0 {
			rightBuilder.WriteString("  No conversions saved yet. Press enter to save one.\n")
		}
		availableWidth := rightWidth - bordersAndPaddingWidth - 2
		for i, record := range m.records {
			selected := i == m.cursor && m.focus == focusHistory
			line := truncate(fmt.Sprintf("%-20s %s", record.Input, timestamps.FormatRFC3339(record.Time())), availableWidth)
			itemStyle := inactiveStyle
			if selected {
				itemStyle = selectedStyle
			}
			rightBuilder.WriteString(generateLinePointer(selected, 2) + itemStyle.Render(line) + "\n")
		}
	}

	panelHeight := m.height - 3
	leftPanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(leftWidth).Height(panelHeight).
		Render(leftBuilder.String())
	rightPanel := lipgloss.NewStyle().Padding(0, 2).
		Width(rightWidth).Height(panelHeight).
		Render(rightBuilder.String())

	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	footerText := "\nenter to save • tab to switch panel • ↑/↓ to navigate • d to delete • esc to quit"
	footerBar := footerStyle.Width(m.width).Render(footerText)

	return titleBar + "\n\n" + columns + footerBar
}

// ShowTUI starts the interactive converter on top of the history database.
func ShowTUI(db *sql.DB, loc *time.Location) error {
	p := tea.NewProgram(initModel(db, loc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
