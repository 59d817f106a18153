package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/clip"
	"github.com/marcus/devsetup/internal/output"
)

// GenerateResult is the --json shape of generate.
type GenerateResult struct {
	Command        string              `json:"command"`
	Framework      catalog.FrameworkID `json:"framework"`
	Features       []catalog.FeatureID `json:"features"`
	ProjectName    string              `json:"project_name"`
	PackageManager string              `json:"package_manager"`
	Unavailable    []catalog.FeatureID `json:"unavailable,omitempty"`
	PostInstall    []string            `json:"post_install"`
	Docs           []catalog.DocLink   `json:"docs"`
	HistoryID      string              `json:"history_id,omitempty"`
	Copied         bool                `json:"copied"`
}

var generateCmd = &cobra.Command{
	Use:     "generate [framework] [feature...]",
	Aliases: []string{"gen", "g"},
	Short:   "Print the scaffolding command for a framework and features",
	Long: `Builds "<base command> <project name>" followed by each selected feature's
fragment, in the order given. The command is recorded in history unless
--no-history is set.`,
	Example: `  devsetup generate react tailwind typescript
  devsetup generate -f svelte -F typescript,eslint --name blog --pm pnpm
  devsetup generate next --copy`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		sel, err := resolveSelection(cmd, a, args)
		if err != nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, err)
		}

		return emitCommand(cmd, a, sel, jsonOut)
	},
}

// emitCommand records, optionally copies, and prints the command for a
// resolved selection. generate, presets use and favorites use share it.
func emitCommand(cmd *cobra.Command, a *app, sel selection, jsonOut bool) error {
	features := sel.Features
	if features == nil {
		features = []catalog.FeatureID{}
	}
	res := GenerateResult{
		Command:        sel.Command(a.gen),
		Framework:      sel.Framework,
		Features:       features,
		ProjectName:    sel.ProjectName,
		PackageManager: string(sel.PackageManager),
		Unavailable:    sel.Unavailable,
		PostInstall:    a.gen.PostInstallSteps(sel.Framework, sel.Features),
		Docs:           a.gen.DocumentationLinks(sel.Framework, sel.Features),
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		entry, err := a.history.Add(res.Command, sel.ProjectName, sel.Framework, sel.Features)
		if err != nil {
			slog.Warn("record history", "err", err)
		} else {
			res.HistoryID = entry.ID
		}
	}

	var copyErr error
	if doCopy, _ := cmd.Flags().GetBool("copy"); doCopy {
		copyErr = clip.Copy(nil, res.Command)
		res.Copied = copyErr == nil
	}

	if jsonOut {
		return output.JSON(res)
	}

	sel.warnUnavailable()
	fmt.Println(output.CommandBlock(res.Command))
	if len(res.PostInstall) > 0 {
		fmt.Print(output.SectionHeader("post-install steps"))
		for _, line := range res.PostInstall {
			fmt.Println("  " + line)
		}
	}
	switch {
	case copyErr != nil:
		output.Warning("%v", copyErr)
	case res.Copied:
		output.Success("Copied to clipboard")
	}
	return nil
}

func init() {
	addSelectionFlags(generateCmd)
	generateCmd.Flags().BoolP("copy", "c", false, "Copy the command to the clipboard")
	generateCmd.Flags().Bool("no-history", false, "Do not record the command in history")
	generateCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(generateCmd)
}
