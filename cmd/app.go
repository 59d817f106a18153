package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/auth"
	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/config"
	"github.com/marcus/devsetup/internal/generator"
	"github.com/marcus/devsetup/internal/output"
	"github.com/marcus/devsetup/internal/prefs"
	"github.com/marcus/devsetup/internal/stars"
	"github.com/marcus/devsetup/internal/store"
)

// app bundles the data dir, user config, store and the services built on it.
type app struct {
	dir       string
	cfg       *config.Config
	db        *store.SQLite
	gen       *generator.Generator
	favorites *prefs.Favorites
	history   *prefs.History
	session   *auth.Session
}

// openApp opens the store in the data dir. Callers must Close it.
func openApp() (*app, error) {
	dir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := store.Open(dir)
	if err != nil {
		return nil, err
	}
	return &app{
		dir:       dir,
		cfg:       cfg,
		db:        db,
		gen:       generator.New(nil),
		favorites: prefs.NewFavorites(db),
		history:   prefs.NewHistory(db),
		session:   auth.NewSession(db, auth.WithDelay(cfg.LoginDelayDuration())),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) catalog() *catalog.Catalog {
	return a.gen.Catalog()
}

// starsClient returns a GitHub client caching in the data dir.
func (a *app) starsClient() *stars.Client {
	opts := []stars.Option{
		stars.WithCacheDir(a.dir),
		stars.WithTTL(a.cfg.StarsTTLDuration()),
	}
	if u := config.GitHubAPI(); u != "" {
		opts = append(opts, stars.WithBaseURL(u))
	}
	return stars.NewClient(opts...)
}

// selection is a framework and ordered feature list plus the project name and
// package manager, resolved from args and flags over config defaults.
type selection struct {
	Framework      catalog.FrameworkID
	Features       []catalog.FeatureID
	ProjectName    string
	PackageManager generator.PackageManager
	Unavailable    []catalog.FeatureID
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("framework", "f", "", "Framework id (default from config)")
	cmd.Flags().StringSliceP("features", "F", nil, "Feature ids in the order they are appended")
	cmd.Flags().StringP("name", "n", "", "Project name (default from config)")
	cmd.Flags().String("pm", "", "Package manager: npm, yarn or pnpm (default from config)")
	cmd.Flags().Bool("strict", false, "Fail if a feature is not available for the framework")
}

// resolveSelection reads "[framework] [feature...]" args and the selection
// flags. Positional features come before --features.
func resolveSelection(cmd *cobra.Command, a *app, args []string) (selection, error) {
	var sel selection
	cat := a.catalog()

	fwName, _ := cmd.Flags().GetString("framework")
	if len(args) > 0 {
		if fwName != "" {
			return sel, fmt.Errorf("framework given twice (%q and --framework %q)", args[0], fwName)
		}
		fwName, args = args[0], args[1:]
	}
	if fwName == "" {
		fwName, _ = a.cfg.Get("framework")
	}
	fw, err := cat.ParseFramework(fwName)
	if err != nil {
		return sel, err
	}
	sel.Framework = fw

	raw := append([]string{}, args...)
	flagFeatures, _ := cmd.Flags().GetStringSlice("features")
	raw = append(raw, flagFeatures...)
	if sel.Features, err = cat.ParseFeatures(raw); err != nil {
		return sel, err
	}
	sel.Unavailable = cat.Unavailable(fw, sel.Features)
	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(sel.Unavailable) > 0 {
		return sel, fmt.Errorf("not available for %s: %s", fw, joinIDs(sel.Unavailable))
	}

	if sel.ProjectName, _ = cmd.Flags().GetString("name"); sel.ProjectName == "" {
		sel.ProjectName, _ = a.cfg.Get("project_name")
	}

	pmName, _ := cmd.Flags().GetString("pm")
	if pmName == "" {
		pmName, _ = a.cfg.Get("package_manager")
	}
	if sel.PackageManager, err = generator.ParsePackageManager(pmName); err != nil {
		return sel, err
	}
	return sel, nil
}

// setFeatures replaces the features of a selection resolved elsewhere and
// recomputes which of them the framework lacks.
func (s *selection) setFeatures(cat *catalog.Catalog, ids []catalog.FeatureID) {
	s.Features = ids
	s.Unavailable = cat.Unavailable(s.Framework, ids)
}

// Command builds the rewritten scaffolding command for the selection.
func (s selection) Command(g *generator.Generator) string {
	return generator.ForPackageManager(g.Command(s.ProjectName, s.Framework, s.Features), s.PackageManager)
}

// warnUnavailable prints one warning per feature the framework lacks.
func (s selection) warnUnavailable() {
	for _, id := range s.Unavailable {
		output.Warning("%s is not available for %s; its fragment is used as-is", id, s.Framework)
	}
}

func joinIDs[T ~string](ids []T) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

// fail reports err in the output mode the command is in and returns it.
func fail(jsonOut bool, code string, err error) error {
	if jsonOut {
		output.JSONError(code, err.Error())
	} else {
		output.Error("%v", err)
	}
	return err
}
