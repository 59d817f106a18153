package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// HelpMap adapts the registry to bubbles/help for one context. Bindings that
// share a command are merged into a single entry.
type HelpMap struct {
	Registry *Registry
	Context  Context
}

// ShortHelp implements help.KeyMap.
func (h HelpMap) ShortHelp() []key.Binding {
	return h.keyBindings(h.Registry.BindingsForContext(h.Context), 6)
}

// FullHelp implements help.KeyMap, one column per context.
func (h HelpMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, ctx := range []Context{h.Context, ContextGlobal} {
		h.Registry.mu.RLock()
		bs := append([]Binding(nil), h.Registry.bindings[ctx]...)
		h.Registry.mu.RUnlock()
		if len(bs) > 0 {
			cols = append(cols, h.keyBindings(bs, 0))
		}
		if ctx == ContextGlobal {
			break
		}
	}
	return cols
}

func (h HelpMap) keyBindings(bs []Binding, max int) []key.Binding {
	var order []Command
	keys := map[Command][]string{}
	desc := map[Command]string{}
	for _, b := range bs {
		if _, seen := keys[b.Command]; !seen {
			order = append(order, b.Command)
			desc[b.Command] = b.Description
		}
		keys[b.Command] = append(keys[b.Command], b.Key)
	}
	if max > 0 && len(order) > max {
		order = order[:max]
	}
	out := make([]key.Binding, 0, len(order))
	for _, cmd := range order {
		out = append(out, key.NewBinding(
			key.WithKeys(keys[cmd]...),
			key.WithHelp(displayKeys(keys[cmd]), desc[cmd]),
		))
	}
	return out
}

// displayKeys renders "j/down" as "j/↓".
func displayKeys(ks []string) string {
	r := strings.NewReplacer("down", "↓", "up", "↑", "left", "←", "right", "→", "enter", "⏎", "space", "␣")
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = r.Replace(k)
	}
	return strings.Join(parts, "/")
}
