package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabelhq/tabel/internal/cli/formatter"
	"github.com/tabelhq/tabel/internal/dateutil"
	"github.com/tabelhq/tabel/internal/domain"
)

type calendarMode int

const (
	modeLogin calendarMode = iota
	modeGrid
	modeRecordForm
	modeConfirmDelete
)

// ── keys ─────────────────────────────────────────────────────────────────────

type calendarKeyMap struct {
	Move      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Refresh   key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Quit      key.Binding
}

var calKeys = calendarKeyMap{
	Move:      key.NewBinding(key.WithKeys("left", "right", "up", "down", "h", "l", "k", "j"), key.WithHelp("←↓↑→", "move")),
	PrevMonth: key.NewBinding(key.WithKeys("[", "p", "pgup"), key.WithHelp("[", "prev month")),
	NextMonth: key.NewBinding(key.WithKeys("]", "n", "pgdown"), key.WithHelp("]", "next month")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Edit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log/edit")),
	Delete:    key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "delete")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k calendarKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Move, k.PrevMonth, k.NextMonth, k.Edit, k.Delete, k.Today, k.Refresh, k.Quit}
}

// ── messages ─────────────────────────────────────────────────────────────────

type signedInMsg struct{ err error }

type recordsFetchedMsg struct{ err error }

type recordSavedMsg struct{ err error }

type recordDeletedMsg struct{ err error }

// ── model ────────────────────────────────────────────────────────────────────

// calendarModel is the bubbletea model for the month calendar. All
// record state lives in the calendar store; the model only holds the
// cursor, the active mode, and in-flight form inputs.
type calendarModel struct {
	app *App

	mode   calendarMode
	cursor time.Time
	form   *huh.Form

	email    string
	password string

	formHours string
	formDesc  string
	editing   *domain.TimeRecord

	width    int
	quitting bool
}

func newCalendarModel(app *App) *calendarModel {
	now := time.Now()
	m := &calendarModel{
		app:    app,
		cursor: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
	}

	if app.Auth.Snapshot().IsAuthenticated {
		m.mode = modeGrid
	} else {
		m.mode = modeLogin
		m.form = credentialsForm(&m.email, &m.password)
	}
	return m
}

func (m *calendarModel) Init() tea.Cmd {
	if m.mode == modeLogin {
		return m.form.Init()
	}
	return m.fetchMonth()
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m *calendarModel) fetchMonth() tea.Cmd {
	app := m.app
	month := m.cursor
	return func() tea.Msg {
		return recordsFetchedMsg{err: app.Calendar.SetCurrentDate(context.Background(), month)}
	}
}

func (m *calendarModel) signIn() tea.Cmd {
	app := m.app
	creds := domain.Credentials{Email: m.email, Password: m.password}
	return func() tea.Msg {
		return signedInMsg{err: app.Auth.Login(context.Background(), creds)}
	}
}

func (m *calendarModel) saveRecord() tea.Cmd {
	app := m.app
	dateKey := dateutil.FormatKey(m.cursor)
	hours, _ := strconv.ParseFloat(strings.TrimSpace(m.formHours), 64)
	desc := strings.TrimSpace(m.formDesc)
	editing := m.editing

	return func() tea.Msg {
		ctx := context.Background()
		if editing != nil {
			return recordSavedMsg{err: app.Calendar.Update(ctx, editing.ID, dateKey, hours, desc)}
		}
		return recordSavedMsg{err: app.Calendar.Create(ctx, dateKey, hours, desc)}
	}
}

func (m *calendarModel) deleteRecord(id int) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		return recordDeletedMsg{err: app.Calendar.Delete(context.Background(), id)}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (m *calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case signedInMsg:
		if msg.err != nil {
			// Error text comes from the auth store snapshot; restart
			// the form with the email kept and the password cleared.
			m.password = ""
			m.form = credentialsForm(&m.email, &m.password)
			return m, m.form.Init()
		}
		m.mode = modeGrid
		m.form = nil
		return m, m.fetchMonth()

	case recordsFetchedMsg:
		return m, nil

	case recordSavedMsg:
		if msg.err != nil {
			// The selection stays open in the store; reopen the form
			// with the rejected values so they can be corrected.
			m.form = recordForm(dateutil.FormatKey(m.cursor), &m.formHours, &m.formDesc)
			m.mode = modeRecordForm
			return m, m.form.Init()
		}
		m.mode = modeGrid
		m.form = nil
		return m, nil

	case recordDeletedMsg:
		m.mode = modeGrid
		return m, nil
	}

	switch m.mode {
	case modeLogin:
		return m.updateLogin(msg)
	case modeRecordForm:
		return m.updateRecordForm(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateGrid(msg)
	}
}

func (m *calendarModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, tea.Batch(cmd, m.signIn())
	}
	return m, cmd
}

func (m *calendarModel) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, calKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, calKeys.Move):
		switch keyMsg.String() {
		case "left", "h":
			return m.moveCursor(-1)
		case "right", "l":
			return m.moveCursor(1)
		case "up", "k":
			return m.moveCursor(-7)
		default:
			return m.moveCursor(7)
		}

	case key.Matches(keyMsg, calKeys.PrevMonth):
		m.cursor = dateutil.AddMonths(m.cursor, -1)
		return m, m.fetchMonth()

	case key.Matches(keyMsg, calKeys.NextMonth):
		m.cursor = dateutil.AddMonths(m.cursor, 1)
		return m, m.fetchMonth()

	case key.Matches(keyMsg, calKeys.Today):
		now := time.Now()
		sameMonth := now.Year() == m.cursor.Year() && now.Month() == m.cursor.Month()
		m.cursor = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if sameMonth {
			return m, nil
		}
		return m, m.fetchMonth()

	case key.Matches(keyMsg, calKeys.Refresh):
		return m, m.fetchMonth()

	case key.Matches(keyMsg, calKeys.Edit):
		return m.openRecordForm()

	case key.Matches(keyMsg, calKeys.Delete):
		dateKey := dateutil.FormatKey(m.cursor)
		if rec, ok := m.app.Calendar.Snapshot().Records[dateKey]; ok {
			m.editing = &rec
			m.mode = modeConfirmDelete
		}
		return m, nil
	}

	return m, nil
}

// moveCursor shifts the selected day, crossing into the adjacent month
// when the cursor walks off the edge.
func (m *calendarModel) moveCursor(days int) (tea.Model, tea.Cmd) {
	prev := m.cursor
	m.cursor = m.cursor.AddDate(0, 0, days)
	if m.cursor.Month() != prev.Month() {
		return m, m.fetchMonth()
	}
	return m, nil
}

func (m *calendarModel) openRecordForm() (tea.Model, tea.Cmd) {
	key := dateutil.FormatKey(m.cursor)
	snap := m.app.Calendar.Snapshot()

	m.formHours = ""
	m.formDesc = ""
	m.editing = nil
	if rec, ok := snap.Records[key]; ok {
		m.editing = &rec
		m.formHours = strconv.FormatFloat(rec.Hours, 'f', -1, 64)
		m.formDesc = rec.Description
	}
	m.app.Calendar.OpenSelection(key, m.editing)

	m.form = recordForm(key, &m.formHours, &m.formDesc)
	m.mode = modeRecordForm
	return m, m.form.Init()
}

func (m *calendarModel) updateRecordForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.app.Calendar.CloseSelection()
		m.app.Calendar.ClearError()
		m.mode = modeGrid
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, tea.Batch(cmd, m.saveRecord())
	}
	return m, cmd
}

func (m *calendarModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "enter":
		id := m.editing.ID
		m.editing = nil
		return m, m.deleteRecord(id)
	case "n", "esc", "q":
		m.editing = nil
		m.mode = modeGrid
		return m, nil
	}
	return m, nil
}

// ── view ─────────────────────────────────────────────────────────────────────

var calCursorStyle = lipgloss.NewStyle().
	Foreground(formatter.ColorFg).
	Background(formatter.ColorHeader).
	Bold(true)

func (m *calendarModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeLogin:
		return m.viewLogin()
	case modeRecordForm:
		return m.viewRecordForm()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewGrid()
	}
}

func (m *calendarModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Sign in") + "\n\n")
	b.WriteString(m.form.View())
	if errMsg := m.app.Auth.Snapshot().Err; errMsg != "" {
		b.WriteString("\n" + formatter.StyleRed.Render(errMsg) + "\n")
	}
	b.WriteString("\n" + formatter.Dim("esc quit") + "\n")
	return b.String()
}

func (m *calendarModel) viewRecordForm() string {
	title := "Log hours"
	if m.editing != nil {
		title = "Edit record"
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(title) + "  " + formatter.Dim(dateutil.FormatKey(m.cursor)) + "\n\n")
	b.WriteString(m.form.View())
	if errMsg := m.app.Calendar.Snapshot().Err; errMsg != "" {
		b.WriteString("\n" + formatter.StyleRed.Render(errMsg) + "\n")
	}
	b.WriteString("\n" + formatter.Dim("esc cancel") + "\n")
	return b.String()
}

func (m *calendarModel) viewConfirmDelete() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Delete record") + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		dateutil.FormatKey(m.cursor),
		formatter.FormatHours(m.editing.Hours),
		formatter.Truncate(m.editing.Description, 40)))
	b.WriteString("\n" + formatter.Dim("y delete · n cancel") + "\n")
	return b.String()
}

func (m *calendarModel) viewGrid() string {
	snap := m.app.Calendar.Snapshot()

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.cursor.Format("January 2006")))
	if snap.IsLoading {
		b.WriteString("  " + formatter.Dim("loading…"))
	}
	b.WriteString("\n\n")

	b.WriteString(formatter.Dim(" Mo   Tu   We   Th   Fr   Sa   Su") + "\n")

	cursorKey := dateutil.FormatKey(m.cursor)
	for _, week := range monthGrid(m.cursor) {
		for _, day := range week {
			if day.IsZero() {
				b.WriteString("     ")
				continue
			}
			key := dateutil.FormatKey(day)
			_, logged := snap.Records[key]

			cell := fmt.Sprintf(" %2d", day.Day())
			if logged {
				cell += "•"
			} else {
				cell += " "
			}

			switch {
			case key == cursorKey:
				b.WriteString(calCursorStyle.Render(cell))
			case logged:
				b.WriteString(formatter.StyleGreen.Render(cell))
			case mondayIndex(day.Weekday()) >= 5:
				b.WriteString(formatter.Dim(cell))
			default:
				b.WriteString(formatter.StyleFg.Render(cell))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if rec, ok := snap.Records[cursorKey]; ok {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			formatter.Bold(cursorKey),
			formatter.FormatHours(rec.Hours),
			formatter.Truncate(rec.Description, 50)))
	} else {
		b.WriteString(formatter.Bold(cursorKey) + "  " + formatter.Dim("no record") + "\n")
	}

	var total float64
	for _, rec := range snap.Records {
		total += rec.Hours
	}
	b.WriteString(formatter.Dim(fmt.Sprintf("month total %s over %d days", formatter.FormatHours(total), len(snap.Records))) + "\n")

	if snap.Err != "" {
		b.WriteString("\n" + formatter.StyleRed.Render(snap.Err) + "\n")
	}

	b.WriteString("\n" + formatter.Dim(renderShortHelp(calKeys.shortHelp())) + "\n")
	return b.String()
}

func renderShortHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
