package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/schedule"
	"github.com/julianstephens/dayplan/internal/utils"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	nowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// Model renders the header above the item list: date, major events, the
// now/next strip and the sleep window hint.
type Model struct {
	Day     models.Day
	Summary schedule.Summary
	width   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetDay(day models.Day, sum schedule.Summary) {
	m.Day = day
	m.Summary = sum
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) View() string {
	var b strings.Builder

	title := utils.FormatLongDate(m.Day.Date)
	if m.Summary.IsToday {
		title += " (today)"
	}
	b.WriteString(dateStyle.Render(title))
	if m.Day.NightOwl {
		b.WriteString(hintStyle.Render("  night owl"))
	}
	b.WriteString("\n")

	if len(m.Day.MajorEvents) > 0 {
		b.WriteString(eventStyle.Render("★ " + strings.Join(m.Day.MajorEvents, " · ")))
		b.WriteString("\n")
	}

	if m.Summary.IsToday {
		now := "nothing scheduled"
		if m.Summary.Now != nil {
			now = schedule.Label(*m.Summary.Now)
		}
		next := "nothing later today"
		if m.Summary.Next != nil {
			next = schedule.Label(*m.Summary.Next)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("Now:"), nowStyle.Render(now)))
		b.WriteString(fmt.Sprintf("%s%s\n", labelStyle.Render("Next:"), next))
	}

	if schedule.SleepWarning(m.Day) {
		b.WriteString(warnStyle.Render(fmt.Sprintf("⚠ Sleep at %s is outside %s-%s, press n for night owl",
			m.Day.Sleep.Time, constants.SleepWindowStart, constants.SleepWindowEnd)))
		b.WriteString("\n")
	} else if !m.Day.Sleep.Set {
		b.WriteString(hintStyle.Render(fmt.Sprintf("Aim to sleep between %s and %s.", constants.SleepWindowStart, constants.SleepWindowEnd)))
		b.WriteString("\n")
	}

	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(strings.TrimRight(b.String(), "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}
