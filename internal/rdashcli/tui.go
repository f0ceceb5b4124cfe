package rdashcli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Colors for the rdash theme.
var (
	accentColor = lipgloss.Color("#00d4aa")
	dimColor    = lipgloss.Color("#555555")
	errorColor  = lipgloss.Color("#ff5555")
	okColor     = lipgloss.Color("#00ff00")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#333333"))

	helpStyle = lipgloss.NewStyle().Foreground(dimColor)

	quoteText = `"L'homme est condamné à être libre." — Sartre`
)

// sessionMode is the dashboard's top-level UI state. At most one transient
// payload (wizard draft, delete target, launch result) is live at a time,
// selected by the mode.
type sessionMode int

const (
	modeList sessionMode = iota
	modeAdding
	modeDeleteConfirm
	modeOutput
	modeHelp
)

// Model is the Bubble Tea model for the rdash session: it owns the current
// UI mode, routes key events to the active mode's handler, and mutates the
// program store.
type Model struct {
	store    *Store
	launcher *Launcher
	config   *Config
	logger   *Logger

	mode   sessionMode
	cursor int
	width  int
	height int

	wizard       WizardModel
	output       OutputModel
	deleteTarget string // program name pending delete confirmation

	statusMsg string
	statusErr bool
	quitting  bool
}

// NewModel creates the session model. loadWarning, when non-empty, is shown
// on the status line at startup (e.g. a corrupt store file that was
// degraded to an empty catalogue).
func NewModel(cfg *Config, store *Store, launcher *Launcher, logger *Logger, loadWarning string) Model {
	return Model{
		store:     store,
		launcher:  launcher,
		config:    cfg,
		logger:    logger,
		statusMsg: loadWarning,
		statusErr: loadWarning != "",
	}
}

// launchExitMsg is sent when a non-capturing launch finishes and the
// dashboard screen has been restored.
type launchExitMsg struct {
	name string
	err  error
}

// Init implements tea.Model. No ticks: the loop blocks on the next key.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.mode == modeOutput {
			m.output.Resize(m.width, m.height)
		}
		return m, nil

	case launchExitMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Failed to execute %s: %v", msg.name, msg.err), true)
			m.logger.Warn("launch %q: %v", msg.name, msg.err)
		} else {
			m.setStatus("Executed: "+msg.name, false)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok && keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeAdding:
		return m.updateWizard(msg)
	case modeDeleteConfirm:
		if ok {
			return m.updateDeleteConfirm(keyMsg), nil
		}
	case modeOutput:
		return m.updateOutput(msg)
	case modeHelp:
		if ok {
			return m.updateHelp(keyMsg)
		}
	case modeList:
		if ok {
			return m.updateList(keyMsg)
		}
	}

	return m, nil
}

// updateList handles keys in the list view. Keys with no meaning here are
// ignored.
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.config.Keys
	switch s := msg.String(); {
	case s == keys.Quit:
		m.quitting = true
		return m, tea.Quit

	case s == "up" || s == keys.Up:
		if m.cursor > 0 {
			m.cursor--
		}

	case s == "down" || s == keys.Down:
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}

	case s == "enter":
		entry, ok := m.store.At(m.cursor)
		if !ok {
			return m, nil
		}
		return m.launch(entry)

	case s == keys.Add:
		m.wizard = NewWizardModel(m.store.Has)
		m.mode = modeAdding
		return m, m.wizard.Init()

	case s == keys.Delete:
		if entry, ok := m.store.At(m.cursor); ok {
			m.deleteTarget = entry.Name
			m.mode = modeDeleteConfirm
		}

	case s == keys.Reload:
		if err := m.store.Load(); err != nil {
			m.store.Clear()
			m.setStatus(fmt.Sprintf("Warning: could not load programs: %v", err), true)
			m.logger.Error("reload store: %v", err)
		} else {
			m.setStatus("Configuration reloaded", false)
		}
		m.cursor = 0

	case s == keys.Help:
		m.mode = modeHelp
	}

	return m, nil
}

// launch runs the selected entry. Capture mode blocks the whole session
// until the process exits, then opens the output popup. Non-capture mode
// hands the terminal to the external process and restores it afterwards.
func (m Model) launch(entry ProgramEntry) (tea.Model, tea.Cmd) {
	if entry.CaptureOutput {
		res := m.launcher.RunCaptured(entry)
		m.output = NewOutputModel(res, m.width, m.height)
		m.mode = modeOutput
		if res.Success {
			m.setStatus("Executed: "+entry.DisplayName, false)
		} else {
			m.setStatus("Executed with errors: "+entry.DisplayName, true)
		}
		return m, nil
	}

	name := entry.DisplayName
	cmd := m.launcher.Command(entry)
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return launchExitMsg{name: name, err: err}
	})
}

// updateWizard delegates to the wizard sub-model and performs the store
// insertion and persistence on completion.
func (m Model) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	w, cmd := m.wizard.Update(msg)
	m.wizard = w

	if m.wizard.Cancelled() {
		m.mode = modeList
		return m, nil
	}

	if m.wizard.Done() {
		entry := m.wizard.Entry()
		if err := m.store.Add(entry); err != nil {
			// Duplicate name at the review step — stay in the wizard.
			m.wizard.SetError("a program with this name already exists")
			return m, nil
		}
		m.mode = modeList
		m.cursor = m.store.Len() - 1
		if err := m.store.Save(); err != nil {
			// Keep the in-memory entry; losing user input silently is worse.
			m.setStatus(fmt.Sprintf("Added %s, but saving failed: %v", entry.DisplayName, err), true)
			m.logger.Error("save store: %v", err)
		} else {
			m.setStatus("Added: "+entry.DisplayName, false)
			m.logger.Info("program added: %s", entry.Name)
		}
		return m, nil
	}

	return m, cmd
}

// updateDeleteConfirm handles the yes/no delete prompt. Any key other than
// yes cancels.
func (m Model) updateDeleteConfirm(msg tea.KeyMsg) tea.Model {
	target := m.deleteTarget
	m.deleteTarget = ""
	m.mode = modeList

	if msg.String() != "y" {
		return m
	}

	entry, _ := m.store.Get(target)
	if !m.store.Remove(target) {
		return m
	}
	if m.cursor >= m.store.Len() && m.cursor > 0 {
		m.cursor = m.store.Len() - 1
	}
	if err := m.store.Save(); err != nil {
		m.setStatus(fmt.Sprintf("Deleted %s, but saving failed: %v", entry.DisplayName, err), true)
		m.logger.Error("save store: %v", err)
	} else {
		m.setStatus("Deleted: "+entry.DisplayName, false)
		m.logger.Info("program deleted: %s", target)
	}
	return m
}

// updateOutput delegates to the output popup.
func (m Model) updateOutput(msg tea.Msg) (tea.Model, tea.Cmd) {
	o, cmd := m.output.Update(msg)
	m.output = o
	if m.output.Closed() {
		m.output = OutputModel{}
		m.mode = modeList
	}
	return m, cmd
}

// updateHelp handles keys on the help overlay: quit terminates, cancel
// returns to the list.
func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.config.Keys.Quit:
		m.quitting = true
		return m, tea.Quit
	case "esc", m.config.Keys.Help:
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// View renders the dashboard. Overlay modes show a centered popup box.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width < 40 {
		width = 80
	}
	height := m.height
	if height < 10 {
		height = 24
	}

	switch m.mode {
	case modeAdding:
		return m.renderPopup(width, height, m.wizard.View())
	case modeDeleteConfirm:
		return m.renderPopup(width, height, m.renderDeleteConfirm())
	case modeOutput:
		return m.renderPopup(width, height, m.output.View())
	case modeHelp:
		return m.renderPopup(width, height, m.renderHelp())
	}

	return m.renderList(width, height)
}

// renderList renders the main screen: title, quote, bordered program list,
// status line and help bar.
func (m Model) renderList(width, height int) string {
	title := titleStyle.Render("RDash — Program Dashboard")
	quote := helpStyle.Render(quoteText)

	// Box content area: total minus border(2) and padding(2).
	boxWidth := width - 2
	if boxWidth < 24 {
		boxWidth = 24
	}
	contentWidth := boxWidth - 4
	// Lines above/below the box: title, quote, gap, status, help.
	boxHeight := height - 6
	if boxHeight < 5 {
		boxHeight = 5
	}
	contentHeight := boxHeight - 2

	listContent := m.renderEntries(contentWidth, contentHeight)

	box := lipgloss.NewStyle().
		Width(boxWidth).
		Height(boxHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(0, 1).
		Render(listContent)

	status := " "
	if m.statusMsg != "" {
		color := okColor
		if m.statusErr {
			color = errorColor
		}
		status = lipgloss.NewStyle().Foreground(color).Render(truncate(m.statusMsg, width))
	}

	keys := m.config.Keys
	helpBar := helpStyle.Render(fmt.Sprintf(
		"%s:quit  %s/%s:move  enter:launch  %s:add  %s:delete  %s:reload  %s:help",
		keys.Quit, keys.Down, keys.Up, keys.Add, keys.Delete, keys.Reload, keys.Help,
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, quote, box, status, helpBar)
}

// renderEntries renders the program rows, windowed so the selection stays
// visible on small terminals.
func (m Model) renderEntries(width, height int) string {
	entries := m.store.Entries()
	if len(entries) == 0 {
		return helpStyle.Render("No programs configured. Press '" + m.config.Keys.Add + "' to add a program.")
	}

	// Window the list around the cursor.
	start := 0
	if len(entries) > height {
		start = m.cursor - height + 1
		if start < 0 {
			start = 0
		}
	}
	end := start + height
	if end > len(entries) {
		end = len(entries)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		e := entries[i]
		label := e.DisplayName + e.Tags()
		if e.Description != "" {
			label += helpStyle.Render(" — " + e.Description)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(truncate("> "+e.DisplayName+e.Tags(), width)))
			if e.Description != "" {
				b.WriteString(helpStyle.Render(truncate(" — "+e.Description, width-len("> "+e.DisplayName+e.Tags()))))
			}
		} else {
			b.WriteString("  " + truncate(label, width))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderDeleteConfirm renders the yes/no confirmation box content.
func (m Model) renderDeleteConfirm() string {
	display := m.deleteTarget
	if e, ok := m.store.Get(m.deleteTarget); ok {
		display = e.DisplayName
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete Program"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete %q?\n\n", display))
	b.WriteString(helpStyle.Render("y: delete  any other key: cancel"))
	return b.String()
}

// renderHelp renders the help overlay content with categorised bindings.
func (m Model) renderHelp() string {
	keys := m.config.Keys
	catStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa"))
	dimStyle := lipgloss.NewStyle().Foreground(dimColor)

	var b strings.Builder
	b.WriteString(catStyle.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render(fmt.Sprintf("  %s / %s", keys.Down, keys.Up)) + descStyle.Render("Move down / up") + "\n")
	b.WriteString(keyStyle.Render("  enter") + descStyle.Render("Launch selected program") + "\n")
	b.WriteString("\n")

	b.WriteString(catStyle.Render("Program Management"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("  "+keys.Add) + descStyle.Render("Add new program") + "\n")
	b.WriteString(keyStyle.Render("  "+keys.Delete) + descStyle.Render("Delete selected program") + "\n")
	b.WriteString(keyStyle.Render("  "+keys.Reload) + descStyle.Render("Reload catalogue from disk") + "\n")
	b.WriteString("\n")

	b.WriteString(catStyle.Render("Application"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("  "+keys.Help) + descStyle.Render("Show this help") + "\n")
	b.WriteString(keyStyle.Render("  "+keys.Quit) + descStyle.Render("Quit rdash") + "\n")
	b.WriteString(keyStyle.Render("  ctrl+c") + descStyle.Render("Force quit") + "\n")
	b.WriteString("\n")

	b.WriteString(catStyle.Render("Info"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  config:    %s", ConfigPath())) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  programs:  %s", m.store.Path())) + "\n")
	b.WriteString(dimStyle.Render("  log:       ~/.rdash/rdash.log") + "\n")
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press esc to return"))

	return b.String()
}

// renderPopup wraps content in a bordered box centered on screen.
func (m Model) renderPopup(width, height int, content string) string {
	popupWidth := lipgloss.Width(content) + 6
	if popupWidth < 40 {
		popupWidth = 40
	}
	if popupWidth > width-2 {
		popupWidth = width - 2
	}

	popupStyle := lipgloss.NewStyle().
		Width(popupWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popupStyle.Render(content))
}

func truncate(s string, max int) string {
	if max <= 1 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
