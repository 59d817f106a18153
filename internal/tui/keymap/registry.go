// Package keymap maps keys to configurator commands per UI context, with
// optional user overrides loaded from keymap.json in the data directory.
package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal     Context = "global"
	ContextFrameworks Context = "frameworks" // framework list focused
	ContextFeatures   Context = "features"   // feature list focused
	ContextInput      Context = "input"      // project or favorite name input open
	ContextHelp       Context = "help"       // help overlay open
)

// Command represents a named command that can be triggered by key bindings
type Command string

const (
	// Global commands
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	// Navigation
	CmdNextPane     Command = "next-pane"
	CmdPrevPane     Command = "prev-pane"
	CmdCursorDown   Command = "cursor-down"
	CmdCursorUp     Command = "cursor-up"
	CmdCursorTop    Command = "cursor-top"
	CmdCursorBottom Command = "cursor-bottom"
	CmdNextCategory Command = "next-category"
	CmdPrevCategory Command = "prev-category"

	// Selection
	CmdSelect         Command = "select"
	CmdToggleFeature  Command = "toggle-feature"
	CmdClearSelection Command = "clear-selection"
	CmdCyclePM        Command = "cycle-package-manager"

	// Actions
	CmdCopyCommand   Command = "copy-command"
	CmdEditName      Command = "edit-name"
	CmdEditCommand   Command = "edit-command"
	CmdSaveFavorite  Command = "save-favorite"
	CmdTogglePreview Command = "toggle-preview"

	// Input
	CmdInputConfirm Command = "input-confirm"
	CmdInputCancel  Command = "input-cancel"

	CmdClose Command = "close"
)

// Binding maps a key or key sequence to a command in a specific context
type Binding struct {
	Key         string  // e.g., "tab", "ctrl+d", "g g"
	Command     Command // Command ID
	Context     Context // "global", "features", etc.
	Description string  // Human-readable description for help text
}

// Registry manages key bindings and command dispatch
type Registry struct {
	bindings      map[Context][]Binding // context -> bindings
	userOverrides map[string]Command    // "context:key" -> command
	pendingKey    string
	pendingTime   time.Time
	mu            sync.RWMutex
}

// NewRegistry creates a new keymap registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context][]Binding),
		userOverrides: make(map[string]Command),
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds multiple key bindings
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetUserOverride sets a user-configured key override for a specific context
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[string(context)+":"+key] = cmd
}

// Lookup finds the command for a given key in the specified context.
// Checks: user overrides -> context bindings -> global bindings
func (r *Registry) Lookup(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyStr := KeyToString(key)

	// Check for pending key sequence
	if r.pendingKey != "" {
		if time.Since(r.pendingTime) < sequenceTimeout {
			seq := r.pendingKey + " " + keyStr
			r.pendingKey = ""
			if cmd, found := r.findCommand(seq, activeContext); found {
				return cmd, true
			}
			// Sequence didn't match, try just the new key
		} else {
			r.pendingKey = ""
		}
	}

	if r.isSequenceStart(keyStr, activeContext) {
		r.pendingKey = keyStr
		r.pendingTime = time.Now()
		return "", false
	}

	return r.findCommand(keyStr, activeContext)
}

// isolated contexts do not fall back to global bindings.
func isolated(ctx Context) bool {
	return ctx == ContextInput || ctx == ContextHelp
}

// findCommand looks up a command for the given key in order of precedence
func (r *Registry) findCommand(key string, activeContext Context) (Command, bool) {
	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, ok := r.userOverrides[string(activeContext)+":"+key]; ok {
			return cmd, true
		}
	}
	if !isolated(activeContext) {
		if cmd, ok := r.userOverrides[string(ContextGlobal)+":"+key]; ok {
			return cmd, true
		}
	}

	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, found := r.findInContext(key, activeContext); found {
			return cmd, true
		}
	}
	if isolated(activeContext) {
		return "", false
	}

	return r.findInContext(key, ContextGlobal)
}

// findInContext finds a command for a key in a specific context
func (r *Registry) findInContext(key string, context Context) (Command, bool) {
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command, true
		}
	}
	return "", false
}

// isSequenceStart checks if this key could start a multi-key sequence
func (r *Registry) isSequenceStart(key string, activeContext Context) bool {
	prefix := key + " "

	contexts := []Context{activeContext}
	if !isolated(activeContext) {
		contexts = append(contexts, ContextGlobal)
	}

	for _, ctx := range contexts {
		for _, b := range r.bindings[ctx] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
		for k := range r.userOverrides {
			if strings.HasPrefix(k, string(ctx)+":"+prefix) {
				return true
			}
		}
	}

	return false
}

// ResetPending clears any pending key sequence
func (r *Registry) ResetPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingKey = ""
}

// PendingKey returns the current pending key (for UI display)
func (r *Registry) PendingKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pendingKey != "" && time.Since(r.pendingTime) < sequenceTimeout {
		return r.pendingKey
	}
	return ""
}

// BindingsForContext returns all bindings for a given context (including global)
func (r *Registry) BindingsForContext(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Binding
	result = append(result, r.bindings[context]...)
	if context != ContextGlobal && !isolated(context) {
		result = append(result, r.bindings[ContextGlobal]...)
	}
	return result
}

// KeyToString converts a tea.KeyMsg to a string representation
func KeyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyCtrlC:
		return "ctrl+c"
	case tea.KeyTab:
		return "tab"
	case tea.KeyShiftTab:
		return "shift+tab"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeySpace:
		return "space"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyHome:
		return "home"
	case tea.KeyEnd:
		return "end"
	case tea.KeyRunes:
		if len(key.Runes) == 1 && key.Runes[0] == ' ' {
			return "space"
		}
		return string(key.Runes)
	default:
		return key.String()
	}
}
