package rdashcli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OutputModel is the popup shown after a captured launch: the program's
// collected stdout/stderr in a scrollable viewport plus an exit summary.
type OutputModel struct {
	result LaunchResult
	vp     viewport.Model
	closed bool
}

// NewOutputModel sizes the popup for the given terminal dimensions.
func NewOutputModel(res LaunchResult, width, height int) OutputModel {
	vpWidth, vpHeight := outputViewportSize(width, height)
	vp := viewport.New(vpWidth, vpHeight)

	content := res.Combined()
	if strings.TrimSpace(content) == "" {
		content = "(no output)"
	}
	vp.SetContent(content)

	return OutputModel{result: res, vp: vp}
}

// Closed reports whether the user dismissed the popup.
func (o OutputModel) Closed() bool { return o.closed }

// Result returns the launch result being displayed.
func (o OutputModel) Result() LaunchResult { return o.result }

// Resize adjusts the viewport to new terminal dimensions.
func (o *OutputModel) Resize(width, height int) {
	o.vp.Width, o.vp.Height = outputViewportSize(width, height)
}

// Update handles keys: space or esc closes, everything else scrolls.
func (o OutputModel) Update(msg tea.Msg) (OutputModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case " ", "esc":
			o.closed = true
			return o, nil
		}
	}
	var cmd tea.Cmd
	o.vp, cmd = o.vp.Update(msg)
	return o, cmd
}

// View renders the popup content: header, scrollable output, footer.
func (o OutputModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Output: %s", o.result.Name)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("  ")
	b.WriteString(renderExitSummary(o.result))
	b.WriteString("\n\n")

	b.WriteString(o.vp.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("j/k: scroll  space/esc: close"))
	return b.String()
}

func renderExitSummary(res LaunchResult) string {
	switch {
	case res.Success:
		return lipgloss.NewStyle().Foreground(okColor).Render("exit 0")
	case !res.Started:
		return lipgloss.NewStyle().Foreground(errorColor).Render("failed to start")
	default:
		return lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("exit %d", res.ExitCode))
	}
}

// outputViewportSize leaves room for the popup border, header and footer.
func outputViewportSize(width, height int) (int, int) {
	w := width - 12
	if w < 20 {
		w = 20
	}
	h := height - 10
	if h < 4 {
		h = 4
	}
	return w, h
}
