package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/output"
	"github.com/marcus/devsetup/internal/tui/configurator"
	"github.com/marcus/devsetup/internal/tui/keymap"
)

var configureCmd = &cobra.Command{
	Use:     "configure [framework] [feature...]",
	Aliases: []string{"ui", "tui"},
	Short:   "Interactive picker for framework, features and package manager",
	Long: `Launch the interactive configurator.

Key bindings:
  Tab/Shift+Tab  Switch between frameworks and features
  j/k, ↑/↓       Move
  h/l, ←/→       Previous / next feature category
  Enter          Select framework
  Space          Toggle feature
  p              Cycle package manager
  n              Edit project name
  c / y          Copy command (records history)
  s              Save as favorite (requires sign-in)
  v              Toggle project preview
  x              Clear selected features
  ?              Toggle help
  q              Quit

Bindings can be overridden in keymap.json in the data dir.`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		sel, err := resolveSelection(cmd, a, args)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		km := keymap.NewRegistry()
		keymap.RegisterDefaults(km)
		kcfg, err := keymap.LoadConfig(keymap.ConfigPath(a.dir))
		if err != nil {
			output.Warning("ignoring keymap.json: %v", err)
		} else if err := keymap.ApplyConfig(km, kcfg); err != nil {
			output.Warning("keymap.json: %v", err)
		}

		model := configurator.NewModel(configurator.Options{
			Generator:      a.gen,
			Favorites:      a.favorites,
			History:        a.history,
			Session:        a.session,
			Stars:          a.starsClient(),
			Keymap:         km,
			Framework:      sel.Framework,
			Features:       sel.Features,
			ProjectName:    sel.ProjectName,
			PackageManager: sel.PackageManager,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("error running configurator: %w", err)
		}
		if m, ok := final.(configurator.Model); ok {
			slog.Debug("configurator closed", "command", m.EffectiveCommand(), "edited", m.Edited())
			fmt.Println(m.EffectiveCommand())
		}
		return nil
	},
}

func init() {
	addSelectionFlags(configureCmd)
	rootCmd.AddCommand(configureCmd)
}
