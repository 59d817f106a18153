package keymap

// DefaultBindings returns the default configurator key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "q", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},
		{Key: "tab", Command: CmdNextPane, Context: ContextGlobal, Description: "Next pane"},
		{Key: "shift+tab", Command: CmdPrevPane, Context: ContextGlobal, Description: "Previous pane"},
		{Key: "c", Command: CmdCopyCommand, Context: ContextGlobal, Description: "Copy command"},
		{Key: "y", Command: CmdCopyCommand, Context: ContextGlobal, Description: "Copy command"},
		{Key: "p", Command: CmdCyclePM, Context: ContextGlobal, Description: "Cycle npm/yarn/pnpm"},
		{Key: "n", Command: CmdEditName, Context: ContextGlobal, Description: "Edit project name"},
		{Key: "e", Command: CmdEditCommand, Context: ContextGlobal, Description: "Edit command"},
		{Key: "s", Command: CmdSaveFavorite, Context: ContextGlobal, Description: "Save as favorite"},
		{Key: "v", Command: CmdTogglePreview, Context: ContextGlobal, Description: "Toggle file preview"},
		{Key: "x", Command: CmdClearSelection, Context: ContextGlobal, Description: "Clear features"},

		// Framework list
		{Key: "j", Command: CmdCursorDown, Context: ContextFrameworks, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextFrameworks, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextFrameworks, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextFrameworks, Description: "Move up"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextFrameworks, Description: "Go to top"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextFrameworks, Description: "Go to bottom"},
		{Key: "enter", Command: CmdSelect, Context: ContextFrameworks, Description: "Choose framework"},
		{Key: "space", Command: CmdSelect, Context: ContextFrameworks, Description: "Choose framework"},

		// Feature list
		{Key: "j", Command: CmdCursorDown, Context: ContextFeatures, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextFeatures, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextFeatures, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextFeatures, Description: "Move up"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextFeatures, Description: "Go to top"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextFeatures, Description: "Go to bottom"},
		{Key: "l", Command: CmdNextCategory, Context: ContextFeatures, Description: "Next category"},
		{Key: "right", Command: CmdNextCategory, Context: ContextFeatures, Description: "Next category"},
		{Key: "h", Command: CmdPrevCategory, Context: ContextFeatures, Description: "Previous category"},
		{Key: "left", Command: CmdPrevCategory, Context: ContextFeatures, Description: "Previous category"},
		{Key: "space", Command: CmdToggleFeature, Context: ContextFeatures, Description: "Toggle feature"},
		{Key: "enter", Command: CmdToggleFeature, Context: ContextFeatures, Description: "Toggle feature"},

		// Name input
		{Key: "enter", Command: CmdInputConfirm, Context: ContextInput, Description: "Confirm"},
		{Key: "esc", Command: CmdInputCancel, Context: ContextInput, Description: "Cancel"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextInput, Description: "Quit"},

		// Help overlay
		{Key: "esc", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "?", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "q", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextHelp, Description: "Quit"},
	}
}

// RegisterDefaults registers all default key bindings
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
