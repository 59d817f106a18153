package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/output"
	"github.com/marcus/devsetup/internal/store"
	"github.com/marcus/devsetup/internal/tui/keymap"
)

// InfoResult is the --json shape of info.
type InfoResult struct {
	Version       string `json:"version"`
	DataDir       string `json:"data_dir"`
	Database      string `json:"database"`
	SchemaVersion int    `json:"schema_version"`
	Keymap        string `json:"keymap"`
	SignedIn      bool   `json:"signed_in"`
	User          string `json:"user,omitempty"`
	History       int    `json:"history"`
	Favorites     int    `json:"favorites"`
	Frameworks    int    `json:"frameworks"`
	Features      int    `json:"features"`
	Presets       int    `json:"presets"`
}

var infoCmd = &cobra.Command{
	Use:     "info",
	Short:   "Show data dir, store and catalog overview",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		defer a.Close()

		schema, err := a.db.SchemaVersion()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}
		cat := a.catalog()
		res := InfoResult{
			Version:       version,
			DataDir:       a.dir,
			Database:      store.Path(a.dir),
			SchemaVersion: schema,
			Keymap:        keymap.ConfigPath(a.dir),
			History:       len(a.history.List()),
			Frameworks:    len(cat.Frameworks),
			Features:      len(cat.Features),
			Presets:       len(cat.Presets),
		}
		if u, ok := a.session.User(); ok {
			res.SignedIn = true
			res.User = u.Name + " <" + u.Email + ">"
			res.Favorites = len(a.favorites.List())
		}

		if jsonOut {
			return output.JSON(res)
		}

		fmt.Printf("devsetup %s\n", res.Version)
		fmt.Printf("Data dir: %s\n", res.DataDir)
		fmt.Printf("Database: %s (schema v%d)\n", res.Database, res.SchemaVersion)
		fmt.Printf("Keymap:   %s\n", res.Keymap)
		fmt.Println()
		if res.SignedIn {
			fmt.Printf("Signed in as %s\n", res.User)
		} else {
			fmt.Println("Not signed in")
		}
		fmt.Printf("  History:   %d\n", res.History)
		fmt.Printf("  Favorites: %d\n", res.Favorites)
		fmt.Println()
		fmt.Printf("Catalog: %d frameworks, %d features, %d presets\n", res.Frameworks, res.Features, res.Presets)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Print(version)
			return
		}
		fmt.Printf("devsetup version %s\n", version)
	},
}

func init() {
	infoCmd.Flags().Bool("json", false, "Output as JSON")
	versionCmd.Flags().Bool("short", false, "Print only the version")
	rootCmd.AddCommand(infoCmd, versionCmd)
}
