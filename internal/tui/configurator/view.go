package configurator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/preview"
	"github.com/marcus/devsetup/internal/tui/keymap"
)

const frameworkPaneWidth = 30

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	name := m.renderProjectName()
	command := m.renderCommand()
	footer := m.renderFooter()

	panelHeight := m.Height - lipgloss.Height(header) - lipgloss.Height(name) - lipgloss.Height(command) - lipgloss.Height(footer) - 2
	if panelHeight < 3 {
		panelHeight = 3
	}

	left := m.wrapPanel("FRAMEWORKS", m.renderFrameworks(panelHeight), frameworkPaneWidth, panelHeight, m.ActivePane == PaneFrameworks)
	rightWidth := m.Width - frameworkPaneWidth - 4
	var right string
	if m.ShowPreview {
		right = m.wrapPanel("PREVIEW", m.renderPreview(rightWidth-4, panelHeight), rightWidth, panelHeight, false)
	} else {
		right = m.wrapPanel("FEATURES", m.renderFeatures(rightWidth-4, panelHeight), rightWidth, panelHeight, m.ActivePane == PaneFeatures)
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, panels, name, command, footer)
}

// renderCompact renders a minimal view for small terminals
func (m Model) renderCompact() string {
	var s strings.Builder
	s.WriteString("devsetup configure (resize for full view)\n\n")
	s.WriteString(fmt.Sprintf("Framework: %s | Features: %d | %s\n\n", m.Framework, m.Selection.Len(), m.PackageManager))
	s.WriteString(m.EffectiveCommand())
	s.WriteString("\n\n")
	if m.StatusMessage != "" {
		s.WriteString(m.renderStatus())
	} else {
		s.WriteString("q:quit c:copy ?:help")
	}
	return s.String()
}

func (m Model) renderHeader() string {
	user := subtleStyle.Render("anonymous")
	if m.Session != nil {
		if u, ok := m.Session.User(); ok {
			user = u.Name
		}
	}
	name := string(m.Framework)
	if fw, ok := m.Gen.Catalog().Framework(m.Framework); ok {
		name = fw.Name
	}
	return fmt.Sprintf("%s  %s · %s · %s",
		titleStyle.Render("devsetup"), name, string(m.PackageManager), user)
}

// wrapPanel wraps content in a bordered panel with a title
func (m Model) wrapPanel(title, content string, width, height int, active bool) string {
	style := panelStyle
	if active {
		style = activePanelStyle
	}
	body := panelTitleStyle.Render(title) + "\n" + content
	return style.Width(width).Height(height).Render(body)
}

func (m Model) renderFrameworks(height int) string {
	var b strings.Builder
	for i, fw := range m.Gen.Catalog().Frameworks {
		if i >= height-1 {
			break
		}
		marker := "  "
		if fw.ID == m.Framework {
			marker = checkedStyle.Render("● ")
		}
		line := marker + fw.Name
		if s, ok := m.StarCounts[fw.Repo]; ok {
			line += " " + starStyle.Render("★ "+s)
		}
		line = ansi.Truncate(line, frameworkPaneWidth-4, "…")
		if m.ActivePane == PaneFrameworks && i == m.FrameworkCursor {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(catalog.Categories))
	for i, c := range catalog.Categories {
		if i == m.CategoryIndex {
			tabs = append(tabs, activeTabStyle.Render(c.Title()))
		} else {
			tabs = append(tabs, tabStyle.Render(c.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFeatures(width, height int) string {
	var b strings.Builder
	b.WriteString(ansi.Truncate(m.renderTabs(), width, "…"))
	b.WriteString("\n\n")

	features := m.visibleFeatures()
	if len(features) == 0 {
		b.WriteString(subtleStyle.Render("Nothing in this category for " + string(m.Framework)))
		return b.String()
	}

	rows := height - 3
	if rows < 1 {
		rows = 1
	}
	offset := 0
	if m.FeatureCursor >= rows {
		offset = m.FeatureCursor - rows + 1
	}
	for i := offset; i < len(features) && i < offset+rows; i++ {
		f := features[i]
		box := "[ ]"
		if m.Selection.Has(f.ID) {
			box = checkedStyle.Render("[x]")
		}
		line := box + " " + f.Name
		if f.Description != "" {
			line += subtleStyle.Render(" - " + f.Description)
		}
		line = ansi.Truncate(line, width, "…")
		if m.ActivePane == PaneFeatures && i == m.FeatureCursor {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPreview(width, height int) string {
	tree := preview.Render(preview.Build(m.Framework, m.Selection.IDs(), m.ProjectName), nil)
	lines := strings.Split(strings.TrimRight(tree, "\n"), "\n")
	if len(lines) > height-1 {
		lines = append(lines[:height-2], subtleStyle.Render("…"))
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProjectName() string {
	if m.InputMode != InputNone {
		label := "Project name: "
		switch m.InputMode {
		case InputFavoriteName:
			label = "Save favorite as: "
		case InputCommand:
			label = "Command: "
		}
		return label + m.Input.View()
	}
	return subtleStyle.Render("Project: ") + m.ProjectName
}

func (m Model) renderCommand() string {
	command := m.EffectiveCommand()
	if m.Edited() {
		command += subtleStyle.Render("  (edited)")
	}
	return commandStyle.Width(m.Width - 2).Render(command)
}

func (m Model) renderStatus() string {
	if m.StatusIsError {
		return statusErrStyle.Render(m.StatusMessage)
	}
	return statusOKStyle.Render(m.StatusMessage)
}

// renderFooter shows the status message, or short help for the active context
func (m Model) renderFooter() string {
	if m.StatusMessage != "" {
		return " " + m.renderStatus()
	}
	if p := m.Keymap.PendingKey(); p != "" {
		return helpStyle.Render(" " + p + " …")
	}
	hm := keymap.HelpMap{Registry: m.Keymap, Context: m.activeContext()}
	return " " + m.help.ShortHelpView(hm.ShortHelp())
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	hm := keymap.HelpMap{Registry: m.Keymap, Context: keymap.ContextFeatures}
	body := titleStyle.Render("devsetup configure - key bindings") + "\n\n" +
		m.help.FullHelpView(hm.FullHelp()) + "\n\n" +
		helpStyle.Render("esc / ? to close")
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, body)
}
