package itemlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayplan/internal/schedule"
)

type AddEntryMsg struct{}

type EditEntryMsg struct {
	Item schedule.Item
}

type DeleteEntryMsg struct {
	ID    string
	Title string
}

// EditAnchorMsg is sent when edit or delete is pressed on a wake or sleep row.
type EditAnchorMsg struct {
	Kind  schedule.Kind
	Clear bool
}

type Item struct {
	Item   schedule.Item
	Active bool
	Next   bool
}

func (i Item) Title() string {
	prefix := "  "
	switch {
	case i.Active:
		prefix = "▶ "
	case i.Next:
		prefix = "› "
	}
	return prefix + schedule.Label(i.Item)
}

func (i Item) Description() string {
	if i.Item.Notes != "" {
		return "  " + i.Item.Notes
	}
	switch i.Item.Kind {
	case schedule.KindWake, schedule.KindSleep:
		return "  anchor"
	}
	return "  "
}

func (i Item) FilterValue() string { return i.Item.Title }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add entry"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

// SetSummary replaces the rows, marking the active and next items.
func (m *Model) SetSummary(sum schedule.Summary) {
	items := make([]list.Item, len(sum.Items))
	for i, it := range sum.Items {
		items[i] = Item{
			Item:   it,
			Active: sum.Now != nil && *sum.Now == it,
			Next:   sum.Next != nil && *sum.Next == it,
		}
	}
	m.list.SetItems(items)
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

func (m Model) Selected() (schedule.Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return schedule.Item{}, false
	}
	return i.Item, true
}

func (m *Model) Select(index int) {
	m.list.Select(index)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if it, ok := m.Selected(); ok {
				if it.Kind == schedule.KindEntry {
					return m, func() tea.Msg { return EditEntryMsg{Item: it} }
				}
				return m, func() tea.Msg { return EditAnchorMsg{Kind: it.Kind} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if it, ok := m.Selected(); ok {
				if it.Kind == schedule.KindEntry {
					return m, func() tea.Msg { return DeleteEntryMsg{ID: it.ID, Title: it.Title} }
				}
				return m, func() tea.Msg { return EditAnchorMsg{Kind: it.Kind, Clear: true} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing planned yet.\n  Press 'a' to add an entry or 'w' to set wake and sleep."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
