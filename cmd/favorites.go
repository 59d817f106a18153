package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/output"
	"github.com/marcus/devsetup/internal/prefs"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav", "favs"},
	Short:   "Saved framework and feature selections (requires sign-in)",
	GroupID: "prefs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return favoritesListCmd.RunE(cmd, args)
	},
}

// signedInApp opens the app and fails with signup_required when nobody is
// signed in.
func signedInApp(jsonOut bool) (*app, error) {
	a, err := openApp()
	if err != nil {
		return nil, fail(jsonOut, output.ErrCodeStorageError, err)
	}
	if !a.session.SignedIn() {
		a.Close()
		return nil, fail(jsonOut, output.ErrCodeSignupRequired, errSignInForFavorites)
	}
	return a, nil
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		a, err := signedInApp(jsonOut)
		if err != nil {
			return err
		}
		defer a.Close()

		favs := a.favorites.List()
		if jsonOut {
			if favs == nil {
				favs = []prefs.Favorite{}
			}
			return output.JSON(favs)
		}
		if len(favs) == 0 {
			fmt.Println("No favorites yet. Save one with devsetup favorites save <name>.")
			return nil
		}
		for _, f := range favs {
			fmt.Printf("%s  %s %s\n", output.Subtle(f.ID), output.Title(f.Name), output.Subtle("("+string(f.Framework)+")"))
			fmt.Printf("  %s\n", output.FeatureBadges(f.Features, 5))
		}
		return nil
	},
}

var favoritesSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the selection as a favorite",
	Example: `  devsetup favorites save "my stack" -f next -F typescript,tailwind,stripe
  devsetup favorites save -f vue -F pinia`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		a, err := signedInApp(jsonOut)
		if err != nil {
			return err
		}
		defer a.Close()

		sel, err := resolveSelection(cmd, a, nil)
		if err != nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, err)
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else if output.IsTerminal() && !jsonOut {
			if err := huh.NewInput().
				Title("Favorite name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}).
				Run(); err != nil {
				return err
			}
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return fail(jsonOut, output.ErrCodeInvalidInput, errors.New("favorite name is required"))
		}
		if a.favorites.HasName(name) {
			return fail(jsonOut, output.ErrCodeInvalidInput, fmt.Errorf("a favorite named %q already exists", name))
		}

		fav, err := a.favorites.Add(name, sel.Framework, sel.Features)
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		if jsonOut {
			return output.JSON(fav)
		}
		sel.warnUnavailable()
		output.Success("Saved favorite %s (%s)", fav.Name, fav.ID)
		return nil
	},
}

var favoritesRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a favorite",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := signedInApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.favorites.Remove(args[0])
		if err != nil {
			output.Error("remove favorite: %v", err)
			return err
		}
		if !removed {
			err := fmt.Errorf("favorite not found: %s", args[0])
			output.Error("%v", err)
			return err
		}
		output.Success("Removed %s", args[0])
		return nil
	},
}

var favoritesUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Generate the command for a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		a, err := signedInApp(jsonOut)
		if err != nil {
			return err
		}
		defer a.Close()

		fav, ok := a.favorites.Get(args[0])
		if !ok {
			return fail(jsonOut, output.ErrCodeNotFound, fmt.Errorf("favorite not found: %s", args[0]))
		}
		// framework and features come from the favorite, name and pm from flags
		sel, err := resolveSelection(cmd, a, []string{string(fav.Framework)})
		if err != nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, err)
		}
		sel.setFeatures(a.catalog(), fav.Features)
		return emitCommand(cmd, a, sel, jsonOut)
	},
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export favorites and history as JSON",
	Long:  `Writes {"favorites": [...], "history": [...]} to file, or to stdout when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := signedInApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		bundle := prefs.Export(a.favorites, a.history)
		if len(args) == 0 {
			return output.JSON(bundle)
		}
		if err := writeBundle(args[0], bundle); err != nil {
			output.Error("export: %v", err)
			return err
		}
		output.Success("Exported %d favorites and %d history entries to %s", len(bundle.Favorites), len(bundle.History), args[0])
		return nil
	},
}

var favoritesImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import favorites and history from an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		a, err := signedInApp(jsonOut)
		if err != nil {
			return err
		}
		defer a.Close()

		var data []byte
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fail(jsonOut, output.ErrCodeInvalidInput, fmt.Errorf("read import: %w", err))
		}

		res, err := prefs.Import(a.favorites, a.history, data)
		if err != nil {
			var verr *prefs.ValidationError
			if errors.As(err, &verr) {
				return fail(jsonOut, output.ErrCodeInvalidInput, err)
			}
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		if jsonOut {
			return output.JSON(res)
		}
		output.Success("Imported %d favorites and %d history entries", res.Favorites, res.History)
		return nil
	},
}

func writeBundle(path string, b prefs.Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func init() {
	favoritesCmd.Flags().Bool("json", false, "Output as JSON")
	for _, c := range []*cobra.Command{favoritesListCmd, favoritesSaveCmd, favoritesUseCmd, favoritesImportCmd} {
		c.Flags().Bool("json", false, "Output as JSON")
	}
	addSelectionFlags(favoritesSaveCmd)

	favoritesUseCmd.Flags().StringP("name", "n", "", "Project name (default from config)")
	favoritesUseCmd.Flags().String("pm", "", "Package manager: npm, yarn or pnpm")
	favoritesUseCmd.Flags().BoolP("copy", "c", false, "Copy the command to the clipboard")
	favoritesUseCmd.Flags().Bool("no-history", false, "Do not record the command in history")

	favoritesCmd.AddCommand(favoritesListCmd, favoritesSaveCmd, favoritesRmCmd, favoritesUseCmd, favoritesExportCmd, favoritesImportCmd)
	rootCmd.AddCommand(favoritesCmd)
}
