// Package configurator is the interactive `devsetup configure` TUI: pick a
// framework, toggle features by category and copy the generated command.
package configurator

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/devsetup/internal/auth"
	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/clip"
	"github.com/marcus/devsetup/internal/generator"
	"github.com/marcus/devsetup/internal/prefs"
	"github.com/marcus/devsetup/internal/stars"
	"github.com/marcus/devsetup/internal/tui/keymap"
)

// Pane represents which list has focus
type Pane int

const (
	PaneFrameworks Pane = iota
	PaneFeatures
)

// InputMode says what the name input is editing.
type InputMode int

const (
	InputNone InputMode = iota
	InputProjectName
	InputFavoriteName
	InputCommand
)

// MinWidth is the minimum terminal width for the two-pane layout
const MinWidth = 60

// MinHeight is the minimum terminal height for the two-pane layout
const MinHeight = 16

// statusTTL is how long a status message stays in the footer.
const statusTTL = 2 * time.Second

// ClearStatusMsg clears the footer status message
type ClearStatusMsg struct{}

// Options wires the model to its collaborators. Only Generator is required.
type Options struct {
	Generator      *generator.Generator
	Favorites      *prefs.Favorites
	History        *prefs.History
	Session        *auth.Session
	Stars          *stars.Client
	Keymap         *keymap.Registry
	Clipboard      clip.Writer // nil = system clipboard
	Framework      catalog.FrameworkID
	Features       []catalog.FeatureID
	ProjectName    string
	PackageManager generator.PackageManager
}

// Model is the Bubble Tea model for the configurator
type Model struct {
	Gen       *generator.Generator
	Favorites *prefs.Favorites
	History   *prefs.History
	Session   *auth.Session
	Stars     *stars.Client
	Keymap    *keymap.Registry

	// Window dimensions
	Width  int
	Height int

	// Selection
	Framework      catalog.FrameworkID
	Selection      *generator.Selection
	ProjectName    string
	PackageManager generator.PackageManager

	// UI state
	ActivePane      Pane
	FrameworkCursor int
	CategoryIndex   int
	FeatureCursor   int
	ShowHelp        bool
	ShowPreview     bool
	Input           textinput.Model
	InputMode       InputMode
	StarCounts      map[string]string // repo -> display

	// Hand-edited command. It applies only while the generated command
	// still equals editedFrom.
	editedCommand string
	editedFrom    string
	help            help.Model

	// Status message (temporary feedback, e.g., "Copied to clipboard")
	StatusMessage string
	StatusIsError bool

	// Clipboard function (nil = real system clipboard)
	ClipboardFn clip.Writer
}

// NewModel creates a configurator model
func NewModel(o Options) Model {
	gen := o.Generator
	if gen == nil {
		gen = generator.New(nil)
	}
	km := o.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}
	pm := o.PackageManager
	if pm == "" {
		pm = generator.NPM
	}
	name := o.ProjectName
	if name == "" {
		name = "my-app"
	}

	ti := textinput.New()
	ti.CharLimit = nameLimit
	ti.Width = 40

	m := Model{
		Gen:            gen,
		Favorites:      o.Favorites,
		History:        o.History,
		Session:        o.Session,
		Stars:          o.Stars,
		Keymap:         km,
		Selection:      generator.NewSelection(o.Features...),
		ProjectName:    name,
		PackageManager: pm,
		Input:          ti,
		StarCounts:     map[string]string{},
		help:           help.New(),
		ClipboardFn:    o.Clipboard,
	}

	frameworks := gen.Catalog().Frameworks
	m.Framework = frameworks[0].ID
	for i, fw := range frameworks {
		if fw.ID == o.Framework {
			m.Framework = fw.ID
			m.FrameworkCursor = i
		}
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.Stars == nil {
		return nil
	}
	var repos []string
	for _, fw := range m.Gen.Catalog().Frameworks {
		if fw.Repo != "" {
			repos = append(repos, fw.Repo)
		}
	}
	return stars.FetchAsync(m.Stars, repos)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stars.FetchedMsg:
		for _, r := range msg.Results {
			m.StarCounts[r.Repo] = r.Display()
		}
		return m, nil

	case ClearStatusMsg:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil
	}

	if m.InputMode != InputNone {
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Command is the generated command for the current selection, rewritten for
// the chosen package manager.
func (m Model) Command() string {
	return generator.ForPackageManager(m.Gen.Command(m.ProjectName, m.Framework, m.Selection.IDs()), m.PackageManager)
}

// EffectiveCommand is the hand-edited command when one applies to the
// current selection, else Command.
func (m Model) EffectiveCommand() string {
	generated := m.Command()
	if m.editedCommand != "" && m.editedFrom == generated {
		return m.editedCommand
	}
	return generated
}

// Edited reports whether a hand-edited command is in effect.
func (m Model) Edited() bool {
	return m.editedCommand != "" && m.editedFrom == m.Command()
}

// activeContext maps UI state to a keymap context
func (m Model) activeContext() keymap.Context {
	switch {
	case m.InputMode != InputNone:
		return keymap.ContextInput
	case m.ShowHelp:
		return keymap.ContextHelp
	case m.ActivePane == PaneFeatures:
		return keymap.ContextFeatures
	default:
		return keymap.ContextFrameworks
	}
}

// handleKey processes key input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.activeContext()
	cmd, ok := m.Keymap.Lookup(msg, ctx)
	if !ok {
		if ctx == keymap.ContextInput {
			var c tea.Cmd
			m.Input, c = m.Input.Update(msg)
			return m, c
		}
		return m, nil
	}
	return m.executeCommand(cmd)
}

// executeCommand runs a keymap command
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.ShowHelp = !m.ShowHelp
		return m, nil

	case keymap.CmdClose:
		m.ShowHelp = false
		return m, nil

	case keymap.CmdNextPane, keymap.CmdPrevPane:
		if m.ActivePane == PaneFrameworks {
			m.ActivePane = PaneFeatures
		} else {
			m.ActivePane = PaneFrameworks
		}
		return m, nil

	case keymap.CmdCursorDown:
		m.moveCursor(1)
		return m, nil

	case keymap.CmdCursorUp:
		m.moveCursor(-1)
		return m, nil

	case keymap.CmdCursorTop:
		m.setCursor(0)
		return m, nil

	case keymap.CmdCursorBottom:
		m.setCursor(m.listLen() - 1)
		return m, nil

	case keymap.CmdNextCategory:
		m.shiftCategory(1)
		return m, nil

	case keymap.CmdPrevCategory:
		m.shiftCategory(-1)
		return m, nil

	case keymap.CmdSelect:
		return m.selectFramework()

	case keymap.CmdToggleFeature:
		return m.toggleFeature()

	case keymap.CmdClearSelection:
		m.Selection.Clear()
		return m.setStatus("Cleared features", false)

	case keymap.CmdCyclePM:
		m.PackageManager = nextPackageManager(m.PackageManager)
		return m, nil

	case keymap.CmdTogglePreview:
		m.ShowPreview = !m.ShowPreview
		return m, nil

	case keymap.CmdCopyCommand:
		return m.copyCommand()

	case keymap.CmdEditName:
		return m.openInput(InputProjectName, m.ProjectName, "project name")

	case keymap.CmdEditCommand:
		return m.openInput(InputCommand, m.EffectiveCommand(), "command")

	case keymap.CmdSaveFavorite:
		if !m.signedIn() {
			return m.setStatus("Sign in to save favorites (devsetup login)", true)
		}
		return m.openInput(InputFavoriteName, "", "favorite name")

	case keymap.CmdInputConfirm:
		return m.confirmInput()

	case keymap.CmdInputCancel:
		m.closeInput()
		return m, nil
	}
	return m, nil
}

// setStatus shows a message and schedules its removal
func (m Model) setStatus(msg string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMessage = msg
	m.StatusIsError = isErr
	return m, tea.Tick(statusTTL, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func (m Model) signedIn() bool {
	return m.Session != nil && m.Session.SignedIn() && m.Favorites != nil
}

func nextPackageManager(pm generator.PackageManager) generator.PackageManager {
	all := generator.PackageManagers
	for i, p := range all {
		if p == pm {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}
