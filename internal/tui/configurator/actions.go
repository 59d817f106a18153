package configurator

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/clip"
)

// category returns the category tab currently shown
func (m Model) category() catalog.Category {
	return catalog.Categories[m.CategoryIndex]
}

// visibleFeatures lists the current category's features for the framework
func (m Model) visibleFeatures() []catalog.Feature {
	return m.Gen.Catalog().FeaturesFor(m.Framework, m.category())
}

func (m Model) listLen() int {
	if m.ActivePane == PaneFrameworks {
		return len(m.Gen.Catalog().Frameworks)
	}
	return len(m.visibleFeatures())
}

func (m *Model) setCursor(i int) {
	n := m.listLen()
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	if m.ActivePane == PaneFrameworks {
		m.FrameworkCursor = i
	} else {
		m.FeatureCursor = i
	}
}

func (m *Model) moveCursor(delta int) {
	if m.ActivePane == PaneFrameworks {
		m.setCursor(m.FrameworkCursor + delta)
	} else {
		m.setCursor(m.FeatureCursor + delta)
	}
}

func (m *Model) shiftCategory(delta int) {
	n := len(catalog.Categories)
	m.CategoryIndex = (m.CategoryIndex + delta + n) % n
	m.FeatureCursor = 0
}

// selectFramework switches to the framework under the cursor. The feature
// selection is kept; features the new framework lacks contribute whatever
// fragment the catalog defines for it.
func (m Model) selectFramework() (tea.Model, tea.Cmd) {
	fw := m.Gen.Catalog().Frameworks[m.FrameworkCursor]
	m.Framework = fw.ID
	m.FeatureCursor = 0
	m.ActivePane = PaneFeatures
	return m, nil
}

// toggleFeature flips the feature under the cursor
func (m Model) toggleFeature() (tea.Model, tea.Cmd) {
	features := m.visibleFeatures()
	if len(features) == 0 {
		return m, nil
	}
	m.Selection.Toggle(features[m.FeatureCursor].ID)
	return m, nil
}

// copyCommand copies the generated command and records it in history
func (m Model) copyCommand() (tea.Model, tea.Cmd) {
	command := m.EffectiveCommand()
	if err := clip.Copy(m.ClipboardFn, command); err != nil {
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	if m.History != nil {
		if _, err := m.History.Add(command, m.ProjectName, m.Framework, m.Selection.IDs()); err != nil {
			slog.Warn("record history", "err", err)
			return m.setStatus("Copied, but history was not saved", true)
		}
	}
	return m.setStatus("Copied to clipboard", false)
}

const nameLimit = 64

// openInput focuses the input
func (m Model) openInput(mode InputMode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.InputMode = mode
	m.Input.Placeholder = placeholder
	m.Input.CharLimit = nameLimit
	m.Input.Width = 40
	if mode == InputCommand {
		m.Input.CharLimit = 0
		m.Input.Width = max(40, m.Width-12)
	}
	m.Input.SetValue(value)
	m.Input.CursorEnd()
	blink := m.Input.Focus()
	return m, blink
}

func (m *Model) closeInput() {
	m.InputMode = InputNone
	m.Input.Blur()
	m.Input.SetValue("")
}

// confirmInput applies the input value for the current mode
func (m Model) confirmInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.Input.Value())
	mode := m.InputMode
	m.closeInput()

	switch mode {
	case InputProjectName:
		if value == "" {
			return m.setStatus("Project name cannot be empty", true)
		}
		m.ProjectName = value
		return m, nil

	case InputFavoriteName:
		if value == "" {
			return m.setStatus("Favorite name cannot be empty", true)
		}
		if !m.signedIn() {
			return m.setStatus("Sign in to save favorites (devsetup login)", true)
		}
		if m.Favorites.HasName(value) {
			return m.setStatus(fmt.Sprintf("A favorite named %q already exists", value), true)
		}
		if _, err := m.Favorites.Add(value, m.Framework, m.Selection.IDs()); err != nil {
			slog.Warn("save favorite", "err", err)
			return m.setStatus("Save failed: "+err.Error(), true)
		}
		return m.setStatus("Saved favorite "+value, false)

	case InputCommand:
		generated := m.Command()
		if value == "" || value == generated {
			m.editedCommand, m.editedFrom = "", ""
			return m.setStatus("Using generated command", false)
		}
		m.editedCommand, m.editedFrom = value, generated
		return m.setStatus("Command edited; changing the selection discards the edit", false)
	}
	return m, nil
}
