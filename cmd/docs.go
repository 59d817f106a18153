package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/guide"
	"github.com/marcus/devsetup/internal/output"
	"github.com/marcus/devsetup/internal/preview"
)

// withSelection opens the app, resolves the selection and runs fn.
func withSelection(cmd *cobra.Command, args []string, fn func(a *app, sel selection, jsonOut bool) error) error {
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
	if !jsonOut {
		sel.warnUnavailable()
	}
	return fn(a, sel, jsonOut)
}

var docsCmd = &cobra.Command{
	Use:     "docs [framework] [feature...]",
	Short:   "Documentation links for a framework and features",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSelection(cmd, args, func(a *app, sel selection, jsonOut bool) error {
			links := a.gen.DocumentationLinks(sel.Framework, sel.Features)
			if jsonOut {
				return output.JSON(links)
			}
			var b strings.Builder
			b.WriteString("# Documentation\n\n")
			for _, l := range links {
				fmt.Fprintf(&b, "- [%s](%s)\n", l.Name, l.URL)
			}
			return output.PrintMarkdown(b.String())
		})
	},
}

var stepsCmd = &cobra.Command{
	Use:     "steps [framework] [feature...]",
	Short:   "Post-install steps for the selected features",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSelection(cmd, args, func(a *app, sel selection, jsonOut bool) error {
			steps := a.gen.PostInstallSteps(sel.Framework, sel.Features)
			if jsonOut {
				if steps == nil {
					steps = []string{}
				}
				return output.JSON(steps)
			}
			if len(steps) == 0 {
				fmt.Println("No post-install steps for this selection")
				return nil
			}
			for _, line := range steps {
				if strings.HasPrefix(line, "# ") {
					fmt.Println(output.Title(line))
					continue
				}
				fmt.Println("  " + line)
			}
			return nil
		})
	},
}

var guideCmd = &cobra.Command{
	Use:     "guide [framework] [feature...]",
	Short:   "Step-by-step installation guide",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSelection(cmd, args, func(a *app, sel selection, jsonOut bool) error {
			steps := guide.Steps(a.gen, sel.Framework, sel.Features, sel.ProjectName, sel.PackageManager)
			if jsonOut {
				return output.JSON(steps)
			}
			return output.PrintMarkdown(guide.Markdown(steps))
		})
	},
}

var previewCmd = &cobra.Command{
	Use:     "preview [framework] [feature...]",
	Aliases: []string{"tree"},
	Short:   "Show the project layout the command would create",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSelection(cmd, args, func(a *app, sel selection, jsonOut bool) error {
			root := preview.Build(sel.Framework, sel.Features, sel.ProjectName)
			if jsonOut {
				return output.JSON(root)
			}
			fmt.Print(preview.Render(root, func(n *preview.Node, name string) string {
				if n.Dir {
					return output.Title(name)
				}
				return name
			}))
			files, dirs := preview.Count(root)
			fmt.Println(output.Subtle(fmt.Sprintf("%d directories, %d files", dirs, files)))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{docsCmd, stepsCmd, guideCmd, previewCmd} {
		addSelectionFlags(c)
		c.Flags().Bool("json", false, "Output as JSON")
		rootCmd.AddCommand(c)
	}
}
