package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayplan/internal/utils"
)

func validClock(s string) error {
	if !utils.IsValidTime(strings.TrimSpace(s)) {
		return errors.New("use HH:MM, e.g. 09:30")
	}
	return nil
}

func optionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validClock(s)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}
		return nil
	}
}

// NewEntryForm creates the add/edit entry form.
func NewEntryForm(fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start).
				Validate(validClock),
			huh.NewInput().
				Title("End (HH:MM)").
				Description("An end before the start runs past midnight").
				Value(&fm.End).
				Validate(validClock),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewEventForm creates the form for adding a major event.
func NewEventForm(fm *EventFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Major event").
				Value(&fm.Text).
				Validate(required("event")),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewAnchorForm creates the wake/sleep form.
func NewAnchorForm(fm *AnchorFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show wake time").
				Value(&fm.WakeSet),
			huh.NewInput().
				Title("Wake (HH:MM)").
				Value(&fm.WakeTime).
				Validate(validClock),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show sleep time").
				Value(&fm.SleepSet),
			huh.NewInput().
				Title("Sleep (HH:MM)").
				Value(&fm.SleepTime).
				Validate(validClock),
			huh.NewInput().
				Title("Sleep until (HH:MM)").
				Description("Optional; leave empty for a point in time").
				Value(&fm.SleepEnd).
				Validate(optionalClock),
		),
	).WithTheme(huh.ThemeDracula())
}
