package rdashcli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WizardModel is the Bubble Tea sub-model for the 7-step add-program
// wizard. Validation and draft state live in WizardForm; this model only
// handles key routing and rendering.
type WizardModel struct {
	form      *WizardForm
	input     textinput.Model
	cursor    int // yes/no steps: 0 = No, 1 = Yes
	errMsg    string
	done      bool
	cancelled bool
	entry     ProgramEntry
}

// NewWizardModel creates a wizard with a fresh draft. nameTaken is
// consulted on the name and review steps.
func NewWizardModel(nameTaken func(string) bool) WizardModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = 48
	ti.Focus()
	return WizardModel{form: NewWizardForm(nameTaken), input: ti}
}

// Done returns true when the wizard has produced a completed entry.
func (w WizardModel) Done() bool { return w.done }

// Cancelled returns true when the user abandoned the wizard.
func (w WizardModel) Cancelled() bool { return w.cancelled }

// Entry returns the completed program entry. Valid only when Done.
func (w WizardModel) Entry() ProgramEntry { return w.entry }

// SetError surfaces an inline error without advancing, e.g. when the
// controller's insert fails after completion.
func (w *WizardModel) SetError(msg string) {
	w.done = false
	w.errMsg = msg
}

// Init starts the text input cursor blink.
func (w WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (w WizardModel) isTextStep() bool {
	return w.form.Step() <= StepDescription
}

func (w WizardModel) isToggleStep() bool {
	s := w.form.Step()
	return s == StepSudo || s == StepCapture
}

// Update handles input for the wizard.
func (w WizardModel) Update(msg tea.Msg) (WizardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if w.isTextStep() {
			var cmd tea.Cmd
			w.input, cmd = w.input.Update(msg)
			return w, cmd
		}
		return w, nil
	}

	switch keyMsg.String() {
	case "esc":
		w.cancelled = true
		return w, nil

	case "enter":
		return w.submit(), nil
	}

	if w.isToggleStep() {
		switch keyMsg.String() {
		case "y", "Y":
			w.cursor = 1
		case "n", "N":
			w.cursor = 0
		case "up", "k", "down", "j", "left", "right", "tab":
			w.cursor = 1 - w.cursor
		}
		return w, nil
	}

	if w.isTextStep() {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	return w, nil
}

// submit feeds the current step's value to the form and prepares the next
// step on advance. Rejections keep the step and show the reason inline.
func (w WizardModel) submit() WizardModel {
	var value string
	switch {
	case w.isTextStep():
		value = w.input.Value()
	case w.isToggleStep():
		if w.cursor == 1 {
			value = "y"
		} else {
			value = "n"
		}
	}

	res := w.form.Submit(value)
	switch res.Outcome {
	case OutcomeReject:
		w.errMsg = res.Reason
	case OutcomeAdvance:
		w.errMsg = ""
		w.cursor = 0
		w.input.SetValue("")
		if w.isTextStep() {
			w.input.Focus()
		} else {
			w.input.Blur()
		}
	case OutcomeComplete:
		w.errMsg = ""
		w.entry = res.Entry
		w.done = true
	}
	return w
}

// View renders the current wizard step.
func (w WizardModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	b.WriteString(title.Render("Add Program"))
	b.WriteString("\n\n")

	// Step indicator.
	steps := []string{"Name", "Display", "Command", "Args", "Description", "Sudo", "Output", "Confirm"}
	var stepLine strings.Builder
	for i, s := range steps {
		if WizardStep(i) == w.form.Step() {
			stepLine.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render(fmt.Sprintf("[%s]", s)))
		} else {
			stepLine.WriteString(lipgloss.NewStyle().Foreground(dimColor).Render(fmt.Sprintf(" %s ", s)))
		}
		if i < len(steps)-1 {
			stepLine.WriteString(lipgloss.NewStyle().Foreground(dimColor).Render(" > "))
		}
	}
	b.WriteString(stepLine.String())
	b.WriteString("\n\n")

	step := w.form.Step()
	switch {
	case w.isTextStep():
		b.WriteString(fmt.Sprintf("Step %d of %d: %s\n\n", int(step)+1, NumInputSteps, step.Prompt()))
		b.WriteString("  " + w.input.View())
		w.writeError(&b)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: next  esc: cancel"))

	case w.isToggleStep():
		b.WriteString(fmt.Sprintf("Step %d of %d: %s\n\n", int(step)+1, NumInputSteps, step.Prompt()))
		for i, opt := range []string{"No", "Yes"} {
			cursor := "  "
			if i == w.cursor {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("  %s%s\n", cursor, opt))
		}
		w.writeError(&b)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("y/n: choose  enter: next  esc: cancel"))

	default: // StepConfirm
		b.WriteString("Review:\n\n")
		row := func(label, value string) {
			b.WriteString(fmt.Sprintf("  %-14s%s\n", label, value))
		}
		row("Name:", w.form.Name)
		row("Display:", w.form.DisplayName)
		row("Command:", w.form.Command)
		if w.form.ArgsRaw != "" {
			row("Args:", w.form.ArgsRaw)
		}
		if w.form.Description != "" {
			row("Description:", w.form.Description)
		}
		row("Sudo:", yesNo(w.form.UseSudo))
		row("Capture:", yesNo(w.form.CaptureOutput))
		w.writeError(&b)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: save  esc: cancel"))
	}

	return b.String()
}

func (w WizardModel) writeError(b *strings.Builder) {
	if w.errMsg == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render("  " + w.errMsg))
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
