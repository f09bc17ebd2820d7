package entities

import "fmt"

// WizardStep is the persisted cursor for the configuration wizard. It replaces
// inferring progress from channel history, which left duplicate step messages
// behind when two interactions raced each other.
type WizardStep int

const (
	// StepWelcome is the welcome message with the start button.
	StepWelcome WizardStep = iota

	// StepMode is the configuration mode selection.
	StepMode

	// StepRole is the ticket manager role selection.
	StepRole

	// StepChannel is the ticket channel setup.
	StepChannel

	// StepPanel is the ticket panel setup and editing.
	StepPanel

	// StepDone means the wizard has completed and the panel is live.
	StepDone
)

// Next returns the step that follows s. StepDone has no successor.
func (s WizardStep) Next() WizardStep {
	if s >= StepDone {
		return StepDone
	}
	return s + 1
}

// Valid reports whether s is a known step value.
func (s WizardStep) Valid() bool {
	return s >= StepWelcome && s <= StepDone
}

// String implements the fmt.Stringer interface.
func (s WizardStep) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepMode:
		return "mode_select"
	case StepRole:
		return "role_select"
	case StepChannel:
		return "channel_setup"
	case StepPanel:
		return "panel_setup"
	case StepDone:
		return "done"
	}
	return fmt.Sprintf("unknown_step_(%d)", int(s))
}
