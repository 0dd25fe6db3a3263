package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/schedule"
	"github.com/julianstephens/dayplan/internal/state"
	"github.com/julianstephens/dayplan/internal/tui/components/itemlist"
	"github.com/julianstephens/dayplan/internal/tui/components/summary"
	"github.com/julianstephens/dayplan/internal/validation"
)

type EntryFormModel struct {
	Title string
	Start string
	End   string
	Notes string
}

type EventFormModel struct {
	Text string
}

type AnchorFormModel struct {
	WakeSet   bool
	WakeTime  string
	SleepSet  bool
	SleepTime string
	SleepEnd  string
}

type Model struct {
	store         *state.Store
	date          string
	day           models.Day
	summary       schedule.Summary
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	items         itemlist.Model
	header        summary.Model
	form          *huh.Form
	entryForm     *EntryFormModel
	eventForm     *EventFormModel
	anchorForm    *AnchorFormModel
	editingID     string
	deleteID      string
	deleteTitle   string
	status        string
	conflictCount int
	quitting      bool
	width         int
	height        int
}

// NewModel opens the TUI on date, or on today when date is empty.
func NewModel(store *state.Store, date string) Model {
	if date == "" {
		date = store.Today()
	}
	m := Model{
		store:  store,
		date:   date,
		state:  constants.StateDay,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		items:  itemlist.New(80, 20),
		header: summary.New(),
	}
	m.reload()
	return m
}

// TickMsg drives the periodic now/next refresh.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Date is the day currently shown.
func (m Model) Date() string {
	return m.date
}

func (m Model) State() constants.SessionState {
	return m.state
}

func (m Model) isToday() bool {
	return m.date == m.store.Today()
}

// reload fetches the selected day and recomputes its summary.
func (m *Model) reload() {
	day, err := m.store.GetDay(m.date)
	if err != nil {
		logger.Error("failed to load day", "date", m.date, "error", err)
		m.status = fmt.Sprintf("Error: %v", err)
		day = models.NewDay(m.date, m.store.Defaults())
	}
	m.day = day
	m.refresh()
	m.conflictCount = len(validation.New().ValidateDay(day).Conflicts)
}

// refresh recomputes now/next without touching storage.
func (m *Model) refresh() {
	m.summary = schedule.Summarize(m.day, m.store.Clock())
	m.items.SetSummary(m.summary)
	m.header.SetDay(m.day, m.summary)
}

// report turns a mutation result into the status line.
func (m *Model) report(applied bool, err error, done, reason string) {
	switch {
	case err != nil:
		logger.Error("mutation failed", "date", m.date, "error", err)
		m.status = fmt.Sprintf("Error: %v", err)
	case !applied:
		m.status = "Not applied: " + reason
	default:
		m.status = done
	}
	m.reload()
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateDay:
		return []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Quit, m.keys.Help}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.PrevDay, m.keys.NextDay, m.keys.Today},
		{m.keys.Add, m.keys.Edit, m.keys.Delete},
		{m.keys.Anchors, m.keys.Event, m.keys.NightOwl},
		{m.keys.Help, m.keys.Quit},
	}
}
