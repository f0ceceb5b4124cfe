package rdashcli

import "strings"

// WizardStep identifies one step of the add-program wizard. The seven input
// steps are followed by a review step that performs the final confirmation.
type WizardStep int

const (
	StepName WizardStep = iota
	StepDisplayName
	StepCommand
	StepArgs
	StepDescription
	StepSudo
	StepCapture
	StepConfirm
)

// NumInputSteps is the number of data-entry steps before the review step.
const NumInputSteps = 7

// Prompt returns the field label shown for the step.
func (s WizardStep) Prompt() string {
	switch s {
	case StepName:
		return "Program name (identifier)"
	case StepDisplayName:
		return "Display name (what appears on the dashboard)"
	case StepCommand:
		return "Command (executable path or name)"
	case StepArgs:
		return "Arguments (optional, space-separated)"
	case StepDescription:
		return "Description (optional)"
	case StepSudo:
		return "Run with sudo?"
	case StepCapture:
		return "Capture output?"
	default:
		return "Review"
	}
}

// StepOutcome classifies the result of submitting a wizard step.
type StepOutcome int

const (
	OutcomeAdvance StepOutcome = iota
	OutcomeReject
	OutcomeComplete
)

// SubmitResult is the outcome of WizardForm.Submit. Reason is set on
// OutcomeReject; Entry is set on OutcomeComplete.
type SubmitResult struct {
	Outcome StepOutcome
	Reason  string
	Entry   ProgramEntry
}

// WizardForm is the add-program wizard's draft state: the partially filled
// fields plus the current step index. It holds no UI state and performs no
// store mutation itself — the session controller inserts and persists the
// entry when Submit reports OutcomeComplete.
type WizardForm struct {
	step      WizardStep
	nameTaken func(string) bool

	Name          string
	DisplayName   string
	Command       string
	ArgsRaw       string
	Description   string
	UseSudo       bool
	CaptureOutput bool
}

// NewWizardForm creates a fresh draft. nameTaken reports whether a program
// name already exists in the catalogue; it is consulted on the name step
// and again on the review step.
func NewWizardForm(nameTaken func(string) bool) *WizardForm {
	if nameTaken == nil {
		nameTaken = func(string) bool { return false }
	}
	return &WizardForm{nameTaken: nameTaken}
}

// Step returns the current step index.
func (f *WizardForm) Step() WizardStep { return f.step }

// Entry builds the ProgramEntry from the draft fields. Arguments are split
// on whitespace; there is no quoting mechanism, so an argument cannot
// contain a space. An empty args string yields an empty argument list.
func (f *WizardForm) Entry() ProgramEntry {
	return ProgramEntry{
		Name:          f.Name,
		DisplayName:   f.DisplayName,
		Command:       f.Command,
		Args:          strings.Fields(f.ArgsRaw),
		Description:   f.Description,
		UseSudo:       f.UseSudo,
		CaptureOutput: f.CaptureOutput,
	}
}

// Submit validates input for the current step. On success the field is
// stored and the step index advances; on rejection both the draft and the
// step index are left untouched. Submitting the review step yields the
// completed entry (or a rejection if the name was taken in the meantime).
func (f *WizardForm) Submit(input string) SubmitResult {
	switch f.step {
	case StepName:
		name := strings.TrimSpace(input)
		if name == "" {
			return reject("name cannot be empty")
		}
		if f.nameTaken(name) {
			return reject("a program with this name already exists")
		}
		f.Name = name

	case StepDisplayName:
		if strings.TrimSpace(input) == "" {
			return reject("display name cannot be empty")
		}
		f.DisplayName = input

	case StepCommand:
		if strings.TrimSpace(input) == "" {
			return reject("command cannot be empty")
		}
		f.Command = input

	case StepArgs:
		f.ArgsRaw = input

	case StepDescription:
		f.Description = input

	case StepSudo:
		v, ok := parseYesNo(input)
		if !ok {
			return reject("answer y or n")
		}
		f.UseSudo = v

	case StepCapture:
		v, ok := parseYesNo(input)
		if !ok {
			return reject("answer y or n")
		}
		f.CaptureOutput = v

	case StepConfirm:
		if f.nameTaken(f.Name) {
			return reject("a program with this name already exists")
		}
		return SubmitResult{Outcome: OutcomeComplete, Entry: f.Entry()}
	}

	f.step++
	return SubmitResult{Outcome: OutcomeAdvance}
}

func reject(reason string) SubmitResult {
	return SubmitResult{Outcome: OutcomeReject, Reason: reason}
}

// parseYesNo maps a yes/no answer to a bool. The empty string is the
// default "no".
func parseYesNo(input string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, true
	case "", "n", "no":
		return false, true
	default:
		return false, false
	}
}
