package rdashcli

import (
	"bytes"
	"errors"
	"os/exec"
)

// LaunchResult is the outcome of one program launch. Stdout/Stderr are only
// populated in capture mode. It lives just long enough to render the output
// popup or the status line.
type LaunchResult struct {
	Name     string // display name of the launched program
	Started  bool   // false when the process could not be spawned at all
	Success  bool
	ExitCode int
	Err      error
	Stdout   string
	Stderr   string
}

// Combined merges the captured streams for display. When both are non-empty
// they are separated by labelled sections, matching the historic popup
// format.
func (r LaunchResult) Combined() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return "STDOUT:\n" + r.Stdout + "\n\nSTDERR:\n" + r.Stderr
	}
}

// Launcher builds and runs external program invocations. Elevated entries
// are prefixed with the configured elevation command (sudo by default).
type Launcher struct {
	sudoCommand string
	logger      *Logger
}

// NewLauncher creates a Launcher. logger may be nil-safe no-op Logger.
func NewLauncher(sudoCommand string, logger *Logger) *Launcher {
	if sudoCommand == "" {
		sudoCommand = "sudo"
	}
	if logger == nil {
		logger = &Logger{}
	}
	return &Launcher{sudoCommand: sudoCommand, logger: logger}
}

// Argv returns the full argument vector for an entry, including the
// elevation prefix when UseSudo is set.
func (l *Launcher) Argv(e ProgramEntry) []string {
	argv := make([]string, 0, len(e.Args)+2)
	if e.UseSudo {
		argv = append(argv, l.sudoCommand)
	}
	argv = append(argv, e.Command)
	argv = append(argv, e.Args...)
	return argv
}

// Command builds the exec.Cmd for an entry. The caller decides how to wire
// its stdio: the TUI hands non-capturing commands to tea.ExecProcess so the
// external program owns the terminal for its lifetime.
func (l *Launcher) Command(e ProgramEntry) *exec.Cmd {
	argv := l.Argv(e)
	return exec.Command(argv[0], argv[1:]...)
}

// RunCaptured runs the entry to completion, collecting stdout and stderr
// separately. It blocks until the process exits; there is deliberately no
// timeout, so a hung program holds the dashboard until it finishes.
func (l *Launcher) RunCaptured(e ProgramEntry) LaunchResult {
	res := LaunchResult{Name: e.DisplayName}

	cmd := l.Command(e)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.Started = true
		res.Success = true
	case errors.As(err, &exitErr):
		// Process ran but exited non-zero (or died to a signal, ExitCode -1).
		res.Started = true
		res.ExitCode = exitErr.ExitCode()
		res.Err = err
	default:
		// Could not spawn at all, e.g. command not found.
		res.Err = err
	}

	if res.Success {
		l.logger.Info("launch %q: ok", e.Name)
	} else {
		l.logger.Warn("launch %q: %v", e.Name, err)
	}
	return res
}
