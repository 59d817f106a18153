package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/auth"
	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/generator"
	"github.com/marcus/devsetup/internal/output"
)

var presetsCmd = &cobra.Command{
	Use:     "presets",
	Aliases: []string{"templates"},
	Short:   "Browse ready-made framework and feature combinations",
	GroupID: "catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return presetsListCmd.RunE(cmd, args)
	},
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		return printPresets(catalog.Default().Presets, jsonOut)
	},
}

var presetsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search presets by name, description, framework, feature or category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		found := catalog.Default().SearchPresets(args[0])
		if len(found) == 0 && !jsonOut {
			fmt.Printf("No presets match %q\n", args[0])
			return nil
		}
		return printPresets(found, jsonOut)
	},
}

func printPresets(presets []catalog.Preset, jsonOut bool) error {
	if jsonOut {
		if presets == nil {
			presets = []catalog.Preset{}
		}
		return output.JSON(presets)
	}
	for _, p := range presets {
		fmt.Printf("%s %s\n", output.Title(p.Name), output.Subtle("("+p.ID+", "+string(p.Framework)+")"))
		if p.Description != "" {
			fmt.Println("  " + p.Description)
		}
		fmt.Println("  " + output.FeatureBadges(p.Features, 6))
	}
	return nil
}

var presetsUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Generate the command for a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		p, err := a.catalog().Preset(args[0])
		if err != nil {
			return fail(jsonOut, output.ErrCodeNotFound, err)
		}
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name, _ = a.cfg.Get("project_name")
		}
		pmName, _ := cmd.Flags().GetString("pm")
		if pmName == "" {
			pmName, _ = a.cfg.Get("package_manager")
		}
		pm, err := generator.ParsePackageManager(pmName)
		if err != nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, err)
		}

		sel := selection{Framework: p.Framework, ProjectName: name, PackageManager: pm}
		sel.setFeatures(a.catalog(), p.Features)
		return emitCommand(cmd, a, sel, jsonOut)
	},
}


var presetsSaveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Save a preset to your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		p, err := a.catalog().Preset(args[0])
		if err != nil {
			return fail(jsonOut, output.ErrCodeNotFound, err)
		}
		if !a.session.SignedIn() {
			return fail(jsonOut, output.ErrCodeSignupRequired, errSignInForFavorites)
		}
		if a.favorites.HasName(p.Name) {
			if jsonOut {
				return output.JSON(map[string]any{"saved": false, "reason": "already saved"})
			}
			output.Info("%s is already in your favorites", p.Name)
			return nil
		}
		fav, err := a.favorites.Add(p.Name, p.Framework, p.Features)
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		if jsonOut {
			return output.JSON(map[string]any{"saved": true, "favorite": fav})
		}
		output.Success("Saved %s to favorites (%s)", p.Name, fav.ID)
		return nil
	},
}

var errSignInForFavorites = fmt.Errorf("sign in to save and view favorites (devsetup login): %w", auth.ErrNotSignedIn)

func init() {
	for _, c := range []*cobra.Command{presetsCmd, presetsListCmd, presetsSearchCmd, presetsUseCmd, presetsSaveCmd} {
		c.Flags().Bool("json", false, "Output as JSON")
	}
	presetsUseCmd.Flags().StringP("name", "n", "", "Project name (default from config)")
	presetsUseCmd.Flags().String("pm", "", "Package manager: npm, yarn or pnpm")
	presetsUseCmd.Flags().BoolP("copy", "c", false, "Copy the command to the clipboard")
	presetsUseCmd.Flags().Bool("no-history", false, "Do not record the command in history")

	presetsCmd.AddCommand(presetsListCmd, presetsSearchCmd, presetsUseCmd, presetsSaveCmd)
	rootCmd.AddCommand(presetsCmd)
}
