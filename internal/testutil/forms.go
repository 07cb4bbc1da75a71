package testutil

import "errors"

// ErrFormAborted is returned by FakeForms when no answer was scripted.
var ErrFormAborted = errors.New("form aborted")

// FakeForms is a scripted setup.FormRunner for tests.
type FakeForms struct {
	// Selected is returned by RunProfileSelect. Empty means the user aborted.
	Selected string
	// Confirm is returned by RunConfirm.
	Confirm bool

	// Offered records the selectors passed to the last RunProfileSelect call.
	Offered []string
	// Prompts records every RunConfirm message.
	Prompts []string
}

// NewFakeForms creates a FakeForms that picks selected.
func NewFakeForms(selected string) *FakeForms {
	return &FakeForms{Selected: selected}
}

// RunProfileSelect records the offered selectors and returns Selected.
func (f *FakeForms) RunProfileSelect(selectors []string) (string, error) {
	f.Offered = append([]string(nil), selectors...)
	if f.Selected == "" {
		return "", ErrFormAborted
	}
	return f.Selected, nil
}

// RunConfirm records the prompt and returns Confirm.
func (f *FakeForms) RunConfirm(message string) (bool, error) {
	f.Prompts = append(f.Prompts, message)
	return f.Confirm, nil
}
