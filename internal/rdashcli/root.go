package rdashcli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagStorePath  string

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets build metadata from ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

var rootCmd = &cobra.Command{
	Use:   "rdash",
	Short: "Terminal dashboard for launching catalogued programs",
	Long: `rdash is a full-screen terminal dashboard that catalogues external
programs and launches them with a keystroke. Programs can run with sudo
and optionally have their output captured into a scrollable popup.`,
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rdash %s\n  commit: %s\n  built:  %s\n", buildVersion, buildCommit, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config file (default: ~/.rdash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store", "", "Path to program store (default: ~/.rdash/programs.json)")

	rootCmd.AddCommand(versionCmd)

	// Register headless subcommands.
	initSubcommands(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadStore loads config and the program store for a command invocation. A
// corrupt store file is returned as a warning string, not an error: the
// dashboard starts with an empty catalogue rather than refusing to run.
func loadStore() (*Config, *Store, string, error) {
	cfgPath := flagConfigPath
	if cfgPath == "" {
		cfgPath = ConfigPath()
	}
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("load config: %w", err)
	}

	store := NewStore(cfg.ResolveStorePath(flagStorePath))
	var warning string
	if err := store.Load(); err != nil {
		store.Clear()
		warning = fmt.Sprintf("Warning: could not load programs: %v", err)
	}
	return cfg, store, warning, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Enforce singleton — only one dashboard instance at a time.
	if err := AcquirePIDLock(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return nil // Exit gracefully, not an error.
	}
	defer ReleasePIDLock()

	// The full-screen UI needs a real terminal.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("rdash requires an interactive terminal (try `rdash list`)")
	}

	cfg, store, warning, err := loadStore()
	if err != nil {
		return err
	}

	logger := NewLogger()
	defer logger.Close()
	if warning != "" {
		logger.Error("load store: %s", warning)
	}

	launcher := NewLauncher(cfg.SudoCommand, logger)
	model := NewModel(cfg, store, launcher, logger, warning)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI fatal: %v", err)
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return err
	}
	return nil
}
