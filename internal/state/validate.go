package state

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/dayplan/internal/utils"
)

// EntryInput is a user-supplied entry. An empty ID creates a new entry.
type EntryInput struct {
	ID    string
	Start string `validate:"required,clock"`
	End   string `validate:"required,clock"`
	Title string `validate:"required"`
	Notes string
}

// AnchorInput sets an anchor. An empty Time keeps the anchor's current time.
// End is only meaningful for sleep; an empty End clears it.
type AnchorInput struct {
	Time  string `validate:"omitempty,clock"`
	Notes string
	End   string `validate:"omitempty,clock"`
}

type defaultsInput struct {
	WakeTime  string `validate:"required,clock"`
	SleepTime string `validate:"required,clock"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return utils.IsValidTime(fl.Field().String())
	})
	return v
}

func (in EntryInput) trimmed() EntryInput {
	in.ID = strings.TrimSpace(in.ID)
	in.Start = strings.TrimSpace(in.Start)
	in.End = strings.TrimSpace(in.End)
	in.Title = strings.TrimSpace(in.Title)
	return in
}

func (in AnchorInput) trimmed() AnchorInput {
	in.Time = strings.TrimSpace(in.Time)
	in.Notes = strings.TrimSpace(in.Notes)
	in.End = strings.TrimSpace(in.End)
	return in
}
