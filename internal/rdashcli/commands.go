/*
 * Copyright (c) 2026. AXIOM STUDIO AI Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rdashcli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// initSubcommands registers all headless CLI subcommands on the root
// command. These operate on the same store file as the TUI, so a script can
// seed a catalogue that the dashboard then shows.
func initSubcommands(root *cobra.Command) {
	root.AddCommand(listProgramsCmd())
	root.AddCommand(addProgramCmd())
	root.AddCommand(removeProgramCmd())
	root.AddCommand(runProgramCmd())
}

// --- list ---

func listProgramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List catalogued programs",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, warning, err := loadStore()
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}

			entries := store.Entries()
			if len(entries) == 0 {
				fmt.Println("No programs configured.")
				return nil
			}

			fmt.Printf("%-16s %-24s %-32s %-6s %-8s\n", "NAME", "DISPLAY", "COMMAND", "SUDO", "CAPTURE")
			fmt.Println(strings.Repeat("-", 90))
			for _, e := range entries {
				command := e.Command
				if len(e.Args) > 0 {
					command += " " + strings.Join(e.Args, " ")
				}
				fmt.Printf("%-16s %-24s %-32s %-6s %-8s\n",
					e.Name, e.DisplayName, command, yesNo(e.UseSudo), yesNo(e.CaptureOutput))
			}
			return nil
		},
	}
}

// --- add ---

func addProgramCmd() *cobra.Command {
	var display, command, argsRaw, description string
	var useSudo, capture bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a program to the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, warning, err := loadStore()
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}

			name := args[0]
			if display == "" {
				display = name
			}
			if command == "" {
				return fmt.Errorf("--command is required")
			}

			entry := ProgramEntry{
				Name:          name,
				DisplayName:   display,
				Command:       command,
				Args:          strings.Fields(argsRaw),
				Description:   description,
				UseSudo:       useSudo,
				CaptureOutput: capture,
			}
			if err := store.Add(entry); err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return fmt.Errorf("save store: %w", err)
			}

			fmt.Printf("Program %q added.\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&display, "display", "", "Display name shown on the dashboard (default: name)")
	cmd.Flags().StringVar(&command, "command", "", "Executable path or name")
	cmd.Flags().StringVar(&argsRaw, "args", "", "Space-separated arguments")
	cmd.Flags().StringVar(&description, "description", "", "One-line description")
	cmd.Flags().BoolVar(&useSudo, "sudo", false, "Run with elevated privileges")
	cmd.Flags().BoolVar(&capture, "capture", false, "Capture output instead of attaching to the terminal")
	return cmd
}

// --- remove ---

func removeProgramCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Remove a program from the catalogue",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, warning, err := loadStore()
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}

			name := args[0]
			if !store.Remove(name) {
				return fmt.Errorf("program %q not found", name)
			}
			if err := store.Save(); err != nil {
				return fmt.Errorf("save store: %w", err)
			}

			fmt.Printf("Program %q removed.\n", name)
			return nil
		},
	}
}

// --- run ---

func runProgramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>",
		Short: "Launch a catalogued program without the dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, warning, err := loadStore()
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}

			entry, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("program %q not found", args[0])
			}

			launcher := NewLauncher(cfg.SudoCommand, nil)
			// Headless runs always attach to the terminal; the capture
			// popup only makes sense inside the TUI.
			c := launcher.Command(entry)
			c.Stdin = os.Stdin
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			return c.Run()
		},
	}
}
