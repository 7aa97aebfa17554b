// Package tui provides the interactive month browser for the timesheet.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timesheet/internal/record"
	"timesheet/internal/stats"
	"timesheet/internal/storage"
	"timesheet/internal/timeutil"
	"timesheet/internal/tui/ui"
)

// browseMode represents the current mode of the month browser
type browseMode int

const (
	modeNormal browseMode = iota
	modeAdd
	modeEdit
	modeDelete
)

// Model is the root TUI model
type Model struct {
	store storage.Store

	// Displayed month
	year  int
	month time.Month

	// UI state
	width    int
	height   int
	cursor   int
	records  []record.Record
	summary  stats.Summary
	loading  bool
	showHelp bool
	err      error

	// Input mode state
	mode         browseMode
	dateInput    textinput.Model
	workInput    textinput.Model
	breakInput   textinput.Model
	commentInput textinput.Model
	focusedInput int
	editIndex    int
	formErr      error

	// Theme, styles and key bindings
	theme  *ui.ThemeProvider
	styles ui.Styles
	keys   ui.KeyMap
}

// New creates a new TUI model showing the given month
func New(store storage.Store, year int, month time.Month, theme string) Model {
	dateInput := textinput.New()
	dateInput.Placeholder = "DD.MM.YYYY"
	dateInput.CharLimit = 10
	dateInput.Width = 14

	workInput := textinput.New()
	workInput.Placeholder = "HH:MM-HH:MM (empty for a day off)"
	workInput.CharLimit = 11
	workInput.Width = 34

	breakInput := textinput.New()
	breakInput.Placeholder = "HH:MM-HH:MM (optional)"
	breakInput.CharLimit = 11
	breakInput.Width = 34

	commentInput := textinput.New()
	commentInput.Placeholder = "Comment (optional)..."
	commentInput.CharLimit = 200
	commentInput.Width = 50

	provider := ui.NewThemeProvider(theme)

	return Model{
		store:        store,
		year:         year,
		month:        month,
		loading:      true,
		dateInput:    dateInput,
		workInput:    workInput,
		breakInput:   breakInput,
		commentInput: commentInput,
		theme:        provider,
		styles:       provider.Styles(),
		keys:         ui.DefaultKeyMap(),
	}
}

// recordsLoadedMsg is sent when the records of a month are loaded
type recordsLoadedMsg struct {
	year    int
	month   time.Month
	records []record.Record
	err     error
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.loadRecords(m.year, m.month)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// ctrl+c quits from any mode, including open forms.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.handleFormMode(msg)
		case modeDelete:
			return m.handleDeleteMode(msg)
		}
		return m.handleNormalMode(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case recordsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.mode = modeNormal
		if msg.err == nil {
			m.year = msg.year
			m.month = msg.month
			m.records = msg.records
			m.summary = stats.Calculate(msg.records)
			if m.cursor >= len(m.records) {
				m.cursor = max(0, len(m.records)-1)
			}
		}
		return m, nil
	}

	return m, nil
}

// handleNormalMode handles key events when browsing the month
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevMonth):
		year, month := timeutil.PrevMonth(m.year, m.month)
		return m, m.loadRecords(year, month)

	case key.Matches(msg, m.keys.NextMonth):
		year, month := timeutil.NextMonth(m.year, m.month)
		return m, m.loadRecords(year, month)

	case key.Matches(msg, m.keys.CurrentMonth):
		now := time.Now()
		return m, m.loadRecords(now.Year(), now.Month())

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadRecords(m.year, m.month)

	case key.Matches(msg, m.keys.Theme):
		m.theme.NextTheme()
		m.styles = m.theme.Styles()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = modeAdd
		m.formErr = nil
		m.dateInput.SetValue("")
		m.workInput.SetValue("")
		m.breakInput.SetValue("")
		m.commentInput.SetValue("")
		m.focusInput(0)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if len(m.records) > 0 && m.cursor < len(m.records) {
			m.mode = modeEdit
			m.formErr = nil
			m.editIndex = m.cursor
			rec := m.records[m.cursor]
			if rec.Special {
				m.workInput.SetValue("")
				m.breakInput.SetValue("")
			} else {
				m.workInput.SetValue(rec.Work.String())
				if rec.Break.IsZero() {
					m.breakInput.SetValue("")
				} else {
					m.breakInput.SetValue(rec.Break.String())
				}
			}
			m.commentInput.SetValue(rec.Comment)
			m.focusInput(0)
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if len(m.records) > 0 && m.cursor < len(m.records) {
			m.mode = modeDelete
		}
		return m, nil
	}

	return m, nil
}

// handleFormMode handles key events when in the add/edit form
func (m Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select): // Enter
		return m.submitForm()

	case key.Matches(msg, m.keys.Back): // Escape
		m.mode = modeNormal
		m.formErr = nil
		m.blurInputs()
		return m, nil

	case msg.String() == "tab":
		m.cycleFocus(1)
		return m, textinput.Blink

	case msg.String() == "shift+tab":
		m.cycleFocus(-1)
		return m, textinput.Blink
	}

	// Pass other keys to the focused input
	inputs := m.formInputs()
	var cmd tea.Cmd
	*inputs[m.focusedInput], cmd = inputs[m.focusedInput].Update(msg)
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m Model) handleDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.cursor < len(m.records) {
			date := m.records[m.cursor].Date
			m.mode = modeNormal
			return m, m.deleteRecord(date)
		}
	case "n", "N", "esc":
		m.mode = modeNormal
	}
	return m, nil
}

// formInputs returns the inputs of the active form. The date is fixed
// when editing, so the edit form has no date field.
func (m *Model) formInputs() []*textinput.Model {
	if m.mode == modeAdd {
		return []*textinput.Model{&m.dateInput, &m.workInput, &m.breakInput, &m.commentInput}
	}
	return []*textinput.Model{&m.workInput, &m.breakInput, &m.commentInput}
}

func (m *Model) focusInput(index int) {
	m.blurInputs()
	inputs := m.formInputs()
	m.focusedInput = index
	inputs[index].Focus()
}

func (m *Model) blurInputs() {
	m.dateInput.Blur()
	m.workInput.Blur()
	m.breakInput.Blur()
	m.commentInput.Blur()
}

func (m *Model) cycleFocus(delta int) {
	inputs := m.formInputs()
	next := (m.focusedInput + delta + len(inputs)) % len(inputs)
	m.focusInput(next)
}

// submitForm validates the form and saves the record
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	rec, err := m.parseForm()
	if err != nil {
		m.formErr = err
		return m, nil
	}
	m.formErr = nil
	m.blurInputs()
	return m, m.saveRecord(rec, m.mode == modeEdit)
}

// parseForm builds a record from the form inputs
func (m Model) parseForm() (record.Record, error) {
	var rec record.Record

	if m.mode == modeEdit {
		rec.Date = m.records[m.editIndex].Date
	} else {
		date, err := record.ParseDate(m.dateInput.Value())
		if err != nil {
			return rec, err
		}
		rec.Date = date
	}

	workValue := strings.TrimSpace(m.workInput.Value())
	breakValue := strings.TrimSpace(m.breakInput.Value())
	rec.Comment = strings.TrimSpace(m.commentInput.Value())

	// No work hours means a day off (vacation, sick leave, holiday).
	if workValue == "" {
		if breakValue != "" {
			return rec, fmt.Errorf("break time without work hours: %w", record.ErrInvalidRecord)
		}
		rec.Special = true
		return rec, rec.Validate()
	}

	work, err := record.ParseInterval(workValue)
	if err != nil {
		return rec, err
	}
	rec.Work = work

	if breakValue != "" {
		brk, err := record.ParseInterval(breakValue)
		if err != nil {
			return rec, err
		}
		rec.Break = brk
	}

	return rec, rec.Validate()
}

// loadRecords creates a command to load the records of a month
func (m Model) loadRecords(year int, month time.Month) tea.Cmd {
	return func() tea.Msg {
		records, err := m.store.Month(year, month)
		if err != nil {
			return recordsLoadedMsg{year: year, month: month, err: err}
		}
		return recordsLoadedMsg{year: year, month: month, records: records}
	}
}

// saveRecord creates a command to add or update a record and reload
// the record's month
func (m Model) saveRecord(rec record.Record, update bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if update {
			err = m.store.Update(rec.Date, rec)
		} else {
			err = m.store.Add(rec)
		}
		if err != nil {
			return recordsLoadedMsg{year: rec.Date.Year(), month: rec.Date.Month(), err: err}
		}
		records, err := m.store.Month(rec.Date.Year(), rec.Date.Month())
		if err != nil {
			return recordsLoadedMsg{year: rec.Date.Year(), month: rec.Date.Month(), err: err}
		}
		return recordsLoadedMsg{year: rec.Date.Year(), month: rec.Date.Month(), records: records}
	}
}

// deleteRecord creates a command to delete a record and reload the
// displayed month
func (m Model) deleteRecord(date record.Date) tea.Cmd {
	year, month := m.year, m.month
	return func() tea.Msg {
		if err := m.store.Delete(date); err != nil {
			return recordsLoadedMsg{year: year, month: month, err: err}
		}
		records, err := m.store.Month(year, month)
		if err != nil {
			return recordsLoadedMsg{year: year, month: month, err: err}
		}
		return recordsLoadedMsg{year: year, month: month, records: records}
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case modeAdd:
		return m.styles.App.Render(m.renderForm("New Record"))
	case modeEdit:
		return m.styles.App.Render(m.renderForm("Edit Record"))
	case modeDelete:
		return m.styles.App.Render(m.renderDeleteConfirm())
	}

	var b strings.Builder

	title := fmt.Sprintf("Records for %s", timeutil.MonthLabel(m.year, m.month))
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	case len(m.records) == 0:
		b.WriteString(m.styles.StatLabel.Render("No records this month"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'n' to add a new record"))
	default:
		b.WriteString(m.renderRecords())
		b.WriteString(strings.Repeat("─", min(50, m.width)))
		b.WriteString("\n")
		b.WriteString(m.renderSummary())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderRecords renders the record rows with aligned columns
func (m Model) renderRecords() string {
	var b strings.Builder

	header := fmt.Sprintf("%-10s  %-11s  %-11s  %7s  %s", "DATE", "WORK", "BREAK", "WORKED", "COMMENT")
	b.WriteString(m.styles.RowHeader.Render(header))
	b.WriteString("\n")

	for i, rec := range m.records {
		work := rec.Work.String()
		brk := rec.Break.String()
		if rec.Special {
			work, brk = "-", "-"
		} else if rec.Break.IsZero() {
			brk = "-"
		}

		line := fmt.Sprintf("%s  %s  %s  %s  %s",
			m.styles.RowDate.Render(fmt.Sprintf("%-10s", rec.Date)),
			m.styles.RowTime.Render(fmt.Sprintf("%-11s", work)),
			m.styles.RowTime.Render(fmt.Sprintf("%-11s", brk)),
			m.styles.RowWorked.Render(fmt.Sprintf("%7s", record.FormatDuration(rec.Worked()))),
			m.styles.RowComment.Render(rec.Comment))

		style := m.styles.RowNormal
		if rec.Special {
			style = m.styles.RowSpecial
		}
		if i == m.cursor {
			style = m.styles.RowSelected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// renderSummary renders the totals line under the record list
func (m Model) renderSummary() string {
	return fmt.Sprintf("Total: %s  %s  %s",
		m.styles.StatValue.Render(record.FormatDuration(m.summary.TotalWorked)),
		m.styles.StatLabel.Render(fmt.Sprintf("%d working days", m.summary.WorkingDays)),
		m.styles.StatLabel.Render(fmt.Sprintf("%d days off", m.summary.SpecialDays)))
}

// renderForm renders the add/edit record form
func (m Model) renderForm(title string) string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	labels := []string{"Work hours:", "Break time:", "Comment:"}
	inputs := []textinput.Model{m.workInput, m.breakInput, m.commentInput}
	if m.mode == modeAdd {
		labels = append([]string{"Date:"}, labels...)
		inputs = append([]textinput.Model{m.dateInput}, inputs...)
	}

	for i, input := range inputs {
		label := labels[i]
		if m.focusedInput == i {
			label = "▸ " + label
		}
		b.WriteString(m.styles.StatLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.formErr != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.formErr)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m Model) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Record"))
	b.WriteString("\n\n")

	if m.cursor < len(m.records) {
		rec := m.records[m.cursor]
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this record?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Date: "))
		b.WriteString(m.styles.StatValue.Render(rec.Date.String()))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Worked: "))
		b.WriteString(m.styles.StatValue.Render(record.FormatDuration(rec.Worked())))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch m.mode {
	case modeAdd, modeEdit:
		parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	case modeDelete:
		parts = append(parts, m.renderKeyHelp("y", "confirm"))
		parts = append(parts, m.renderKeyHelp("n", "cancel"))
	default:
		parts = append(parts, m.renderKeyHelp("n", "new"))
		parts = append(parts, m.renderKeyHelp("e", "edit"))
		parts = append(parts, m.renderKeyHelp("d", "delete"))
		parts = append(parts, m.renderKeyHelp("←/→", "month"))
		parts = append(parts, m.renderKeyHelp("t", "today"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// renderHelpOverlay renders a help overlay on top of the current view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Months:"))
	help.WriteString("\n")
	help.WriteString("  ←/h        Previous month\n")
	help.WriteString("  →/l        Next month\n")
	help.WriteString("  t          Current month\n")
	help.WriteString("\n")

	help.WriteString(m.styles.StatLabel.Render("Records:"))
	help.WriteString("\n")
	help.WriteString("  j/k        Navigate up/down\n")
	help.WriteString("  n          New record\n")
	help.WriteString("  e          Edit record\n")
	help.WriteString("  d          Delete record\n")
	help.WriteString("  r          Refresh\n")
	help.WriteString("\n")

	help.WriteString(m.styles.StatLabel.Render("General:"))
	help.WriteString("\n")
	help.WriteString("  T          Change theme\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	help.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("Theme: %s", m.theme.CurrentDisplayName())))
	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application on the given month
func Run(store storage.Store, year int, month time.Month, theme string) error {
	model := New(store, year, month, theme)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
