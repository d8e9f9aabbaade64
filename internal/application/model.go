// Package application is the terminal browser: a paginated list of the latest
// login per user and machine, a month search box and a date selector that
// drives exports.
package application

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/hwinventory/internal/core"
)

type focus int

const (
	focusTable focus = iota
	focusSearch
	focusDate
)

var columns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Time", Width: 8},
	{Title: "User", Width: 14},
	{Title: "PC", Width: 14},
	{Title: "Brand", Width: 10},
	{Title: "Model", Width: 14},
	{Title: "OS", Width: 14},
}

// Model is the bubbletea model of the browser.
type Model struct {
	service       *core.Service
	exportTimeout time.Duration

	table  table.Model
	search textinput.Model
	date   textinput.Model
	focus  focus

	page    core.BrowsePage
	records []core.Record // rows of the current page, in table order

	status string
	err    error
}

// New builds the browser over a loaded service. initialDate pre-fills the
// date selector; exportTimeout bounds each export started from the browser.
func New(svc *core.Service, initialDate string, exportTimeout time.Duration) *Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "YYYY-MM"
	search.CharLimit = 10
	search.PromptStyle = styles.label
	search.PlaceholderStyle = styles.help

	date := textinput.New()
	date.Prompt = "Export date: "
	date.Placeholder = "all, YYYY-MM or YYYY-MM-DD"
	date.CharLimit = 10
	date.PromptStyle = styles.label
	date.PlaceholderStyle = styles.help
	date.SetValue(initialDate)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.DefaultPageSize/3),
	)
	t.SetStyles(tableStyles())

	m := &Model{
		service:       svc,
		exportTimeout: exportTimeout,
		table:         t,
		search:        search,
		date:          date,
	}
	m.refresh(0)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case ExportedMsg:
		m.err = nil
		m.status = fmt.Sprintf("Exported %d logins to %s", msg.Result.Rows[core.SheetLogin], msg.Result.Path)
		return m, nil
	case ReloadedMsg:
		m.err = nil
		m.status = fmt.Sprintf("Reloaded %d logins (%d malformed lines skipped)", msg.Stats.Parsed, msg.Stats.Malformed)
		m.refresh(0)
		return m, nil
	case ErrMsg:
		m.err = msg.Err
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		return m, m.cycleFocus()
	case tea.KeyCtrlE:
		return m, m.startExport()
	case tea.KeyCtrlR:
		m.status = "Reloading..."
		return m, reloadCmd(m.service)
	case tea.KeyPgDown:
		m.refresh(m.page.Page + 1)
		return m, nil
	case tea.KeyPgUp:
		m.refresh(m.page.Page - 1)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		if msg.Type == tea.KeyEnter {
			m.setFocus(focusTable)
			return m, nil
		}
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.refresh(0)
		}
	case focusDate:
		if msg.Type == tea.KeyEnter {
			return m, m.startExport()
		}
		m.date, cmd = m.date.Update(msg)
	default:
		if msg.Type == tea.KeyEnter {
			m.selectRow()
			return m, nil
		}
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// selectRow fills the date selector with the month of the highlighted row.
func (m *Model) selectRow() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return
	}
	month := core.YearMonth(m.records[i].LoginDate)
	m.date.SetValue(month)
	m.err = nil
	m.status = "Selected " + month + "; ctrl+e exports"
}

// startExport validates the date selector and returns the export command.
func (m *Model) startExport() tea.Cmd {
	value := m.date.Value()
	if value == "all" {
		value = ""
	}
	filter, err := core.ParseStrictFilter(value)
	if err != nil {
		m.err = err
		m.status = ""
		return nil
	}
	m.err = nil
	m.status = "Exporting " + filter.Selector() + "..."
	return exportCmd(m.service, filter, m.exportTimeout)
}

func (m *Model) cycleFocus() tea.Cmd {
	return m.setFocus((m.focus + 1) % 3)
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.table.Blur()
	m.search.Blur()
	m.date.Blur()
	switch f {
	case focusSearch:
		return m.search.Focus()
	case focusDate:
		return m.date.Focus()
	default:
		m.table.Focus()
		return nil
	}
}

// refresh reloads the current page from the service.
func (m *Model) refresh(page int) {
	result, err := m.service.Browse(m.search.Value(), page)
	if err != nil {
		m.err = err
		m.page = core.BrowsePage{}
		m.records = nil
		m.table.SetRows(nil)
		return
	}

	m.page = result
	m.records = result.Rows
	rows := make([]table.Row, len(result.Rows))
	for i, rec := range result.Rows {
		rows[i] = table.Row{
			rec.LoginDate.String(),
			rec.LoginTime.String(),
			rec.User,
			rec.PCName,
			rec.Brand,
			rec.Model,
			rec.OperatingSystem,
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// DateValue returns the current content of the date selector.
func (m *Model) DateValue() string {
	return m.date.Value()
}
