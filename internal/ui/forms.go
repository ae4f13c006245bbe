package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ErrUserAborted is returned when the user leaves a form with esc or ctrl+c.
var ErrUserAborted = errors.New("aborted by user")

// interceptedKey tracks the last key that triggered an abort (esc vs ctrl+c).
var interceptedKey string

// Theme returns the huh theme used by every form.
func Theme() *huh.Theme {
	return huh.ThemeCatppuccin()
}

// KeyMap maps esc and ctrl+c to quit and documents them in the help line.
func KeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()

	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")

	km.Confirm.Submit.SetHelp("enter", "confirm • esc/ctrl+c: cancel")
	km.Input.Submit.SetHelp("enter", "submit • esc/ctrl+c: cancel")
	km.Note.Submit.SetHelp("enter", "continue • esc/ctrl+c: cancel")

	return km
}

// formFilter is a Bubble Tea filter that records which key aborted a form.
func formFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			interceptedKey = "esc"
		case tea.KeyCtrlC:
			interceptedKey = "ctrl+c"
		}
	}
	return msg
}

// RunForm runs a huh form with the shared theme, key map and abort handling.
func RunForm(f *huh.Form) error {
	interceptedKey = ""
	err := f.WithTheme(Theme()).
		WithKeyMap(KeyMap()).
		WithProgramOptions(tea.WithFilter(formFilter)).
		Run()
	return HandleAbort(err)
}

// HandleAbort maps huh.ErrUserAborted to ErrUserAborted.
func HandleAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		if logger != nil {
			logger.Debug("form aborted", "key", interceptedKey)
		}
		return ErrUserAborted
	}
	return err
}

// Confirm asks a yes/no question with a note describing what will happen.
func Confirm(title, description string) (bool, error) {
	confirmed := false
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description(description),
			huh.NewConfirm().
				Title("Proceed?").
				Affirmative("Rename").
				Negative("Cancel").
				Value(&confirmed),
		),
	))
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
