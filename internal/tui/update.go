package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/schedule"
	"github.com/julianstephens/dayplan/internal/state"
	"github.com/julianstephens/dayplan/internal/tui/components/itemlist"
	"github.com/julianstephens/dayplan/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.header.SetWidth(msg.Width - 4)
		m.items.SetSize(msg.Width-4, max(msg.Height-14, 4))
		if m.form != nil {
			form, cmd := m.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.form = f
			}
			return m, cmd
		}
		return m, nil

	case TickMsg:
		// Only today has a now/next to move.
		if m.isToday() {
			m.refresh()
		}
		return m, tick()
	}

	switch m.state {
	case constants.StateEditEntry:
		return m.updateFormState(msg, (*Model).applyEntryForm)
	case constants.StateAddEvent:
		return m.updateFormState(msg, (*Model).applyEventForm)
	case constants.StateEditAnchors:
		return m.updateFormState(msg, (*Model).applyAnchorForm)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateDay(msg)
}

func (m Model) updateDay(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemlist.AddEntryMsg:
		return m.openEntryForm(nil)

	case itemlist.EditEntryMsg:
		return m.openEntryForm(&msg.Item)

	case itemlist.DeleteEntryMsg:
		m.deleteID = msg.ID
		m.deleteTitle = msg.Title
		m.state = constants.StateConfirmDelete
		return m, nil

	case itemlist.EditAnchorMsg:
		if msg.Clear {
			applied, err := m.store.ClearAnchor(m.date, models.AnchorKind(msg.Kind))
			m.report(applied, err, fmt.Sprintf("Cleared %s", msg.Kind), "already cleared")
			return m, nil
		}
		return m.openAnchorForm()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			m.shiftDay(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.shiftDay(1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.goTo(m.store.Today())
			return m, nil
		case key.Matches(msg, m.keys.Anchors):
			return m.openAnchorForm()
		case key.Matches(msg, m.keys.Event):
			return m.openEventForm()
		case key.Matches(msg, m.keys.NightOwl):
			on := !m.day.NightOwl
			applied, err := m.store.SetNightOwl(m.date, on)
			label := "off"
			if on {
				label = "on"
			}
			m.report(applied, err, "Night owl "+label, "unchanged")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)
	return m, cmd
}

func (m *Model) shiftDay(days int) {
	date, err := utils.ShiftDate(m.date, days)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	m.goTo(date)
}

func (m *Model) goTo(date string) {
	m.date = date
	m.status = ""
	m.reload()
	m.items.Select(0)
}

// updateFormState feeds msg to the open form and runs apply once it is submitted.
func (m Model) updateFormState(msg tea.Msg, apply func(*Model)) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		apply(&m)
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.entryForm = nil
	m.eventForm = nil
	m.anchorForm = nil
	m.editingID = ""
	m.state = constants.StateDay
}

func (m Model) openEntryForm(item *schedule.Item) (tea.Model, tea.Cmd) {
	fm := &EntryFormModel{}
	m.editingID = ""
	if item != nil {
		fm = &EntryFormModel{Title: item.Title, Start: item.Start, End: item.End, Notes: item.Notes}
		m.editingID = item.ID
	}
	m.entryForm = fm
	m.form = NewEntryForm(fm)
	m.state = constants.StateEditEntry
	return m, m.form.Init()
}

func (m Model) openEventForm() (tea.Model, tea.Cmd) {
	m.eventForm = &EventFormModel{}
	m.form = NewEventForm(m.eventForm)
	m.state = constants.StateAddEvent
	return m, m.form.Init()
}

func (m Model) openAnchorForm() (tea.Model, tea.Cmd) {
	m.anchorForm = &AnchorFormModel{
		WakeSet:   m.day.Wake.Set,
		WakeTime:  m.day.Wake.Time,
		SleepSet:  m.day.Sleep.Set,
		SleepTime: m.day.Sleep.Time,
		SleepEnd:  m.day.Sleep.End,
	}
	m.form = NewAnchorForm(m.anchorForm)
	m.state = constants.StateEditAnchors
	return m, m.form.Init()
}

func (m *Model) applyEntryForm() {
	fm := m.entryForm
	_, applied, err := m.store.SaveEntry(m.date, state.EntryInput{
		ID:    m.editingID,
		Start: fm.Start,
		End:   fm.End,
		Title: fm.Title,
		Notes: fm.Notes,
	})
	done := "Entry added"
	if m.editingID != "" {
		done = "Entry updated"
	}
	m.report(applied, err, done, "title, start and end are required")
}

func (m *Model) applyEventForm() {
	applied, err := m.store.AddMajorEvent(m.date, m.eventForm.Text)
	m.report(applied, err, "Major event added", "event text is empty")
}

func (m *Model) applyAnchorForm() {
	fm := m.anchorForm
	var applied bool
	var firstErr error
	apply := func(ok bool, err error) {
		applied = applied || ok
		if firstErr == nil {
			firstErr = err
		}
	}

	if fm.WakeSet {
		apply(m.store.SetAnchor(m.date, models.AnchorWake, state.AnchorInput{Time: fm.WakeTime, Notes: m.day.Wake.Notes}))
	} else {
		apply(m.store.ClearAnchor(m.date, models.AnchorWake))
	}
	if fm.SleepSet {
		apply(m.store.SetAnchor(m.date, models.AnchorSleep, state.AnchorInput{Time: fm.SleepTime, Notes: m.day.Sleep.Notes, End: fm.SleepEnd}))
	} else {
		apply(m.store.ClearAnchor(m.date, models.AnchorSleep))
	}
	m.report(applied, firstErr, "Wake and sleep updated", "nothing changed")
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y":
		applied, err := m.store.DeleteEntry(m.date, m.deleteID)
		m.report(applied, err, fmt.Sprintf("Deleted %q", m.deleteTitle), "entry no longer exists")
		m.deleteID, m.deleteTitle = "", ""
		m.state = constants.StateDay
	case "n", "N", "esc":
		m.deleteID, m.deleteTitle = "", ""
		m.state = constants.StateDay
	}
	return m, nil
}
