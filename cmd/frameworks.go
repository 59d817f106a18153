package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/output"
	"github.com/marcus/devsetup/internal/stars"
)

var frameworksCmd = &cobra.Command{
	Use:     "frameworks",
	Aliases: []string{"fw"},
	Short:   "List supported frameworks",
	GroupID: "catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		withStars, _ := cmd.Flags().GetBool("stars")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		frameworks := a.catalog().Frameworks
		counts := map[string]string{}
		if withStars {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			for _, r := range a.starsClient().FetchAll(ctx, frameworkRepos(frameworks)) {
				counts[r.Repo] = r.Display()
			}
		}

		if jsonOut {
			return output.JSON(frameworks)
		}

		for _, fw := range frameworks {
			line := fmt.Sprintf("%-8s %-12s %s", fw.ID, fw.Name, output.Subtle(fw.Command))
			if s, ok := counts[fw.Repo]; ok {
				line += "  ★ " + s
			}
			fmt.Println(line)
		}
		return nil
	},
}

func frameworkRepos(frameworks []catalog.Framework) []string {
	var repos []string
	for _, fw := range frameworks {
		if fw.Repo != "" {
			repos = append(repos, fw.Repo)
		}
	}
	return repos
}

var featuresCmd = &cobra.Command{
	Use:   "features [framework]",
	Short: "List features, grouped by category",
	Long: `Lists every feature. With a framework, features it does not support are
hidden unless --all is set, in which case they are marked.`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: "catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		showAll, _ := cmd.Flags().GetBool("all")
		catFlag, _ := cmd.Flags().GetString("category")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()
		cat := a.catalog()

		var fw catalog.FrameworkID
		if len(args) == 1 {
			if fw, err = cat.ParseFramework(args[0]); err != nil {
				return fail(jsonOut, output.ErrCodeInvalidInput, err)
			}
		}

		categories := catalog.Categories
		if catFlag != "" {
			c, err := parseCategory(catFlag)
			if err != nil {
				return fail(jsonOut, output.ErrCodeInvalidInput, err)
			}
			categories = []catalog.Category{c}
		}

		var list []catalog.Feature
		for _, c := range categories {
			for _, f := range cat.Features {
				if f.Category != c {
					continue
				}
				if fw != "" && !showAll && !cat.Available(fw, f.ID) {
					continue
				}
				list = append(list, f)
			}
		}

		if jsonOut {
			if list == nil {
				list = []catalog.Feature{}
			}
			return output.JSON(list)
		}

		var current catalog.Category
		for _, f := range list {
			if f.Category != current {
				current = f.Category
				fmt.Print(output.SectionHeader(current.Title()))
			}
			line := fmt.Sprintf("  %-14s %s", f.ID, f.Name)
			if fw != "" && !cat.Available(fw, f.ID) {
				line += output.Subtle(fmt.Sprintf(" (not for %s)", fw))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func parseCategory(s string) (catalog.Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range catalog.Categories {
		if string(c) == s {
			return c, nil
		}
	}
	names := make([]string, len(catalog.Categories))
	for i, c := range catalog.Categories {
		names[i] = string(c)
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", s, strings.Join(names, ", "))
}

var compareCmd = &cobra.Command{
	Use:   "compare <framework>...",
	Short: "Compare up to three frameworks by score",
	Example: `  devsetup compare react vue svelte
  devsetup compare next nuxt --by learning`,
	Args:    cobra.RangeArgs(1, 3),
	GroupID: "catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		by, _ := cmd.Flags().GetString("by")

		cat := catalog.Default()
		ids := make([]catalog.FrameworkID, 0, len(args))
		for _, arg := range args {
			id, err := cat.ParseFramework(arg)
			if err != nil {
				return fail(jsonOut, output.ErrCodeInvalidInput, err)
			}
			ids = append(ids, id)
		}

		ranked, err := cat.Compare(ids, catalog.ScoreCategory(strings.ToLower(by)))
		if err != nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, err)
		}
		if jsonOut {
			return output.JSON(ranked)
		}

		for i, fw := range ranked {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s %s\n", output.Title(fw.Name), output.Subtle(fmt.Sprintf("(%d)", fw.ReleaseYear)))
			for _, c := range catalog.ScoreCategories {
				fmt.Printf("  %-12s %s\n", c, output.ScoreBar(fw.Scores.Score(c)))
			}
			printList("Pros", fw.Pros)
			printList("Cons", fw.Cons)
			printList("Ideal for", fw.IdealFor)
			fmt.Println("  Docs: " + fw.DocsURL)
		}
		return nil
	},
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("  %s:\n", title)
	for _, line := range output.BulletList(items, 4) {
		fmt.Println(line)
	}
}

var starsCmd = &cobra.Command{
	Use:   "stars [owner/repo...]",
	Short: "Show GitHub star counts for framework repositories",
	Long: `Fetches stargazer counts from the GitHub API, caching successful results
in the data dir. Without arguments every framework repository is shown.
Failed lookups show a placeholder.`,
	GroupID: "catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		repos := args
		if len(repos) == 0 {
			repos = frameworkRepos(a.catalog().Frameworks)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		results := a.starsClient().FetchAll(ctx, repos)

		if jsonOut {
			type row struct {
				Repo    string `json:"repo"`
				Stars   *int   `json:"stars"`
				Display string `json:"display"`
			}
			rows := make([]row, len(results))
			for i, r := range results {
				rows[i] = row{Repo: r.Repo, Display: r.Display()}
				if r.Err == nil {
					n := r.Stars
					rows[i].Stars = &n
				}
			}
			return output.JSON(rows)
		}

		for _, r := range results {
			fmt.Printf("%-28s ★ %s\n", r.Repo, r.Display())
		}
		if failed := countFailed(results); failed > 0 {
			output.Warning("%d of %d lookups failed (shown as %s)", failed, len(results), stars.Placeholder)
		}
		return nil
	},
}

func countFailed(results []stars.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func init() {
	frameworksCmd.Flags().Bool("json", false, "Output as JSON")
	frameworksCmd.Flags().Bool("stars", false, "Fetch GitHub star counts")
	featuresCmd.Flags().Bool("json", false, "Output as JSON")
	featuresCmd.Flags().Bool("all", false, "Include features the framework does not support")
	featuresCmd.Flags().StringP("category", "c", "", "Only show one category")
	compareCmd.Flags().Bool("json", false, "Output as JSON")
	compareCmd.Flags().String("by", string(catalog.ScorePerformance), "Sort by: performance, features, ecosystem, learning")
	starsCmd.Flags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(frameworksCmd, featuresCmd, compareCmd, starsCmd)
}
