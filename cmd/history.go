package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/clip"
	"github.com/marcus/devsetup/internal/dateparse"
	"github.com/marcus/devsetup/internal/output"
	"github.com/marcus/devsetup/internal/prefs"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist"},
	Short:   "Recently generated commands",
	GroupID: "prefs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyListCmd.RunE(cmd, args)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")
		sinceStr, _ := cmd.Flags().GetString("since")

		var since time.Time
		if sinceStr != "" {
			t, err := dateparse.ParseSince(sinceStr)
			if err != nil {
				return fail(jsonOut, output.ErrCodeInvalidInput, err)
			}
			since = t
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		entries := newestFirst(a.history.List())
		if !since.IsZero() {
			kept := entries[:0]
			for _, e := range entries {
				if !e.Time().Before(since) {
					kept = append(kept, e)
				}
			}
			entries = kept
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		if jsonOut {
			if entries == nil {
				entries = []prefs.HistoryEntry{}
			}
			return output.JSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("No history yet. Run devsetup generate to create some.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  %s\n", output.Subtle(e.ID), e.ProjectName, output.Subtle(output.FormatTimeAgo(e.Time())))
			fmt.Printf("  %s\n", e.Command)
		}
		return nil
	},
}

// newestFirst returns entries in reverse storage order.
func newestFirst[T any](in []T) []T {
	out := make([]T, len(in))
	for i, e := range in {
		out[len(in)-1-i] = e
	}
	return out
}

var historyRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a history entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		removed, err := a.history.Remove(args[0])
		if err != nil {
			output.Error("remove history entry: %v", err)
			return err
		}
		if !removed {
			err := fmt.Errorf("history entry not found: %s", args[0])
			output.Error("%v", err)
			return err
		}
		output.Success("Removed %s", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			if !output.IsTerminal() {
				err := fmt.Errorf("refusing to clear history without --yes")
				output.Error("%v", err)
				return err
			}
			if err := huh.NewConfirm().
				Title("Clear all command history?").
				Value(&yes).
				Run(); err != nil {
				return err
			}
			if !yes {
				return nil
			}
		}

		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		if err := a.history.Clear(); err != nil {
			output.Error("clear history: %v", err)
			return err
		}
		output.Success("History cleared")
		return nil
	},
}

var historyCopyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a history entry's command to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		e, ok := a.history.Get(args[0])
		if !ok {
			err := fmt.Errorf("history entry not found: %s", args[0])
			output.Error("%v", err)
			return err
		}
		fmt.Println(output.CommandBlock(e.Command))
		if err := clip.Copy(nil, e.Command); err != nil {
			output.Warning("%v", err)
			return nil
		}
		output.Success("Copied to clipboard")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{historyCmd, historyListCmd} {
		c.Flags().Bool("json", false, "Output as JSON")
		c.Flags().IntP("limit", "l", 0, "Show at most this many entries")
		c.Flags().String("since", "", "Only entries since a date or offset (7d, 2w, yesterday, 2026-03-01)")
	}
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	historyCmd.AddCommand(historyListCmd, historyRmCmd, historyClearCmd, historyCopyCmd)
	rootCmd.AddCommand(historyCmd)
}
