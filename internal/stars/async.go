package stars

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// FetchedMsg carries star counts back to a Bubble Tea program.
type FetchedMsg struct {
	Results []Result
}

// FetchAsync returns a Bubble Tea command that fetches repos in the background.
func FetchAsync(c *Client, repos []string) tea.Cmd {
	return func() tea.Msg {
		return FetchedMsg{Results: c.FetchAll(context.Background(), repos)}
	}
}
