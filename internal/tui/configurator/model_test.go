package configurator

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/devsetup/internal/auth"
	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/generator"
	"github.com/marcus/devsetup/internal/prefs"
	"github.com/marcus/devsetup/internal/stars"
	"github.com/marcus/devsetup/internal/store"
)

type fixture struct {
	model     Model
	history   *prefs.History
	favorites *prefs.Favorites
	session   *auth.Session
	copied    []string
}

func newFixture(t *testing.T, o Options) *fixture {
	t.Helper()
	kv := store.NewMemory()
	f := &fixture{
		history:   prefs.NewHistory(kv),
		favorites: prefs.NewFavorites(kv),
		session:   auth.NewSession(kv, auth.WithDelay(0)),
	}
	o.History = f.history
	o.Favorites = f.favorites
	o.Session = f.session
	if o.Clipboard == nil {
		o.Clipboard = func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		}
	}
	f.model = NewModel(o)
	return f
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (f *fixture) press(keys ...string) {
	for _, k := range keys {
		next, _ := f.model.Update(keyMsg(k))
		f.model = next.(Model)
	}
}

func (f *fixture) send(msg tea.Msg) {
	next, _ := f.model.Update(msg)
	f.model = next.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Options{})
	if m.Framework != catalog.React {
		t.Errorf("Framework = %s, want react", m.Framework)
	}
	if m.ProjectName != "my-app" || m.PackageManager != generator.NPM {
		t.Errorf("defaults = %q, %q", m.ProjectName, m.PackageManager)
	}
	if got := m.Command(); got != "npx create-react-app my-app" {
		t.Errorf("Command = %q", got)
	}
	if m.Init() != nil {
		t.Error("Init without a stars client should not fetch")
	}
}

func TestNewModelFromOptions(t *testing.T) {
	m := NewModel(Options{
		Framework:   catalog.Next,
		Features:    []catalog.FeatureID{"typescript", "tailwind"},
		ProjectName: "shop",
	})
	if m.FrameworkCursor != 1 {
		t.Errorf("FrameworkCursor = %d, want 1", m.FrameworkCursor)
	}
	if got := m.Command(); got != "npx create-next-app shop --typescript --tailwind" {
		t.Errorf("Command = %q", got)
	}
}

func TestToggleFeature(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("tab", "space")
	if got := f.model.Command(); got != "npx create-react-app my-app --template typescript" {
		t.Errorf("after toggle Command = %q", got)
	}
	f.press("space")
	if f.model.Selection.Len() != 0 {
		t.Errorf("second toggle should deselect, have %v", f.model.Selection.IDs())
	}
}

func TestNavigation(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("G")
	last := len(f.model.Gen.Catalog().Frameworks) - 1
	if f.model.FrameworkCursor != last {
		t.Errorf("G: cursor = %d, want %d", f.model.FrameworkCursor, last)
	}
	f.press("j")
	if f.model.FrameworkCursor != last {
		t.Error("cursor moved past the end")
	}
	f.press("g", "g")
	if f.model.FrameworkCursor != 0 {
		t.Errorf("g g: cursor = %d, want 0", f.model.FrameworkCursor)
	}

	f.press("tab", "l")
	if f.model.category() != catalog.CategoryUI {
		t.Errorf("category = %s, want ui", f.model.category())
	}
	f.press("h", "h")
	if f.model.category() != catalog.CategoryMisc {
		t.Errorf("category wraps to %s, want misc", f.model.category())
	}
}

func TestSelectFrameworkKeepsFeatures(t *testing.T) {
	f := newFixture(t, Options{Features: []catalog.FeatureID{"typescript"}})
	f.press("j", "enter")
	if f.model.Framework != catalog.Next {
		t.Fatalf("Framework = %s, want next", f.model.Framework)
	}
	if f.model.ActivePane != PaneFeatures {
		t.Error("selecting a framework should focus the features pane")
	}
	if got := f.model.Command(); got != "npx create-next-app my-app --typescript" {
		t.Errorf("Command = %q", got)
	}
}

func TestClearSelection(t *testing.T) {
	f := newFixture(t, Options{Features: []catalog.FeatureID{"typescript", "eslint"}})
	f.press("x")
	if f.model.Selection.Len() != 0 {
		t.Errorf("selection = %v", f.model.Selection.IDs())
	}
	if f.model.StatusMessage == "" {
		t.Error("expected a status message")
	}
}

func TestCyclePackageManager(t *testing.T) {
	f := newFixture(t, Options{Framework: catalog.Svelte})
	f.press("p")
	if f.model.PackageManager != generator.Yarn {
		t.Fatalf("PackageManager = %s, want yarn", f.model.PackageManager)
	}
	if got := f.model.Command(); got != "yarn create svelte@latest my-app" {
		t.Errorf("Command = %q", got)
	}
	f.press("p", "p")
	if f.model.PackageManager != generator.NPM {
		t.Errorf("cycle should wrap to npm, got %s", f.model.PackageManager)
	}
}

func TestCopyRecordsHistory(t *testing.T) {
	f := newFixture(t, Options{Features: []catalog.FeatureID{"tailwind"}})
	f.press("c")

	want := "npx create-react-app my-app && npm install -D tailwindcss postcss autoprefixer && npx tailwindcss init -p"
	if len(f.copied) != 1 {
		t.Fatalf("copied %d times, want 1", len(f.copied))
	}
	if f.copied[0] != want {
		t.Errorf("copied %q, want %q", f.copied[0], want)
	}
	if f.model.StatusMessage != "Copied to clipboard" || f.model.StatusIsError {
		t.Errorf("status = %q (err=%v)", f.model.StatusMessage, f.model.StatusIsError)
	}

	entries := f.history.List()
	if len(entries) != 1 {
		t.Fatalf("history = %d entries, want 1", len(entries))
	}
	if entries[0].Command != f.copied[0] || entries[0].ProjectName != "my-app" {
		t.Errorf("history entry = %+v", entries[0])
	}
}

func TestCopyFailureSkipsHistory(t *testing.T) {
	f := newFixture(t, Options{Clipboard: func(string) error { return errors.New("no display") }})
	f.press("c")
	if !f.model.StatusIsError || !strings.Contains(f.model.StatusMessage, "no display") {
		t.Errorf("status = %q (err=%v)", f.model.StatusMessage, f.model.StatusIsError)
	}
	if n := len(f.history.List()); n != 0 {
		t.Errorf("history = %d entries, want 0", n)
	}
}

func TestEditProjectName(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("n")
	if f.model.InputMode != InputProjectName {
		t.Fatalf("InputMode = %v", f.model.InputMode)
	}
	if f.model.Input.Value() != "my-app" {
		t.Errorf("input prefilled with %q", f.model.Input.Value())
	}

	// keys bound globally are typed into the input
	f.model.Input.SetValue("")
	f.press("q", "c")
	if f.model.Input.Value() != "qc" {
		t.Errorf("input = %q, want qc", f.model.Input.Value())
	}

	f.model.Input.SetValue("shop")
	f.press("enter")
	if f.model.InputMode != InputNone || f.model.ProjectName != "shop" {
		t.Errorf("after confirm: mode=%v name=%q", f.model.InputMode, f.model.ProjectName)
	}
	if got := f.model.Command(); got != "npx create-react-app shop" {
		t.Errorf("Command = %q", got)
	}
}

func TestEditProjectNameRejectsEmpty(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("n")
	f.model.Input.SetValue("   ")
	f.press("enter")
	if f.model.ProjectName != "my-app" || !f.model.StatusIsError {
		t.Errorf("name=%q status=%q", f.model.ProjectName, f.model.StatusMessage)
	}

	f.press("n", "esc")
	if f.model.InputMode != InputNone {
		t.Error("esc should close the input")
	}
}

func TestEditCommandIsCopied(t *testing.T) {
	f := newFixture(t, Options{Framework: catalog.Svelte})
	f.press("p", "e")
	if f.model.InputMode != InputCommand {
		t.Fatalf("InputMode = %v", f.model.InputMode)
	}
	if got := f.model.Input.Value(); got != "yarn create svelte@latest my-app" {
		t.Errorf("input prefilled with %q", got)
	}

	edited := "yarn create svelte@latest my-app --template skeleton"
	f.model.Input.SetValue(edited)
	f.press("enter")
	if !f.model.Edited() || f.model.EffectiveCommand() != edited {
		t.Fatalf("EffectiveCommand = %q (edited=%v)", f.model.EffectiveCommand(), f.model.Edited())
	}

	f.press("c")
	if len(f.copied) != 1 || f.copied[0] != edited {
		t.Fatalf("copied %q, want %q", f.copied, edited)
	}
	entries := f.history.List()
	if len(entries) != 1 || entries[0].Command != edited || entries[0].Framework != catalog.Svelte {
		t.Errorf("history = %+v", entries)
	}
	// changing the selection drops the edit
	f.press("p")
	if f.model.Edited() {
		t.Error("edit survived a package manager change")
	}
	f.press("c")
	if got := f.copied[len(f.copied)-1]; got != "pnpm create svelte@latest my-app" {
		t.Errorf("copied %q after selection change", got)
	}
}

func TestEditCommandEmptyRestoresGenerated(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("e")
	f.model.Input.SetValue("npx create-react-app my-app --use-npm")
	f.press("enter")
	if !f.model.Edited() {
		t.Fatal("edit not applied")
	}

	f.press("e")
	f.model.Input.SetValue("  ")
	f.press("enter")
	if f.model.Edited() || f.model.EffectiveCommand() != "npx create-react-app my-app" {
		t.Errorf("EffectiveCommand = %q (edited=%v)", f.model.EffectiveCommand(), f.model.Edited())
	}
}

func TestSaveFavoriteRequiresSignIn(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("s")
	if f.model.InputMode != InputNone {
		t.Error("input opened while signed out")
	}
	if !f.model.StatusIsError || !strings.Contains(f.model.StatusMessage, "Sign in") {
		t.Errorf("status = %q", f.model.StatusMessage)
	}
}

func TestSaveFavorite(t *testing.T) {
	f := newFixture(t, Options{Features: []catalog.FeatureID{"typescript"}})
	if _, err := f.session.Login(context.Background(), auth.GitHub); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	f.press("s")
	if f.model.InputMode != InputFavoriteName {
		t.Fatalf("InputMode = %v", f.model.InputMode)
	}
	f.model.Input.SetValue("typed react")
	f.press("enter")

	favs := f.favorites.List()
	if len(favs) != 1 {
		t.Fatalf("favorites = %d, want 1", len(favs))
	}
	if favs[0].Name != "typed react" || favs[0].Framework != catalog.React {
		t.Errorf("favorite = %+v", favs[0])
	}

	// duplicate names are rejected
	f.press("s")
	f.model.Input.SetValue("typed react")
	f.press("enter")
	if len(f.favorites.List()) != 1 || !f.model.StatusIsError {
		t.Errorf("duplicate saved: %d favorites, status %q", len(f.favorites.List()), f.model.StatusMessage)
	}
}

func TestStarsAndStatusMessages(t *testing.T) {
	f := newFixture(t, Options{})
	f.send(stars.FetchedMsg{Results: []stars.Result{
		{Repo: "facebook/react", Stars: 231000},
		{Repo: "vuejs/core", Err: errors.New("rate limited")},
	}})
	if got := f.model.StarCounts["facebook/react"]; got == "" || got == stars.Placeholder {
		t.Errorf("react stars = %q", got)
	}
	if got := f.model.StarCounts["vuejs/core"]; got != stars.Placeholder {
		t.Errorf("failed fetch shows %q, want placeholder", got)
	}

	f.press("x")
	f.send(ClearStatusMsg{})
	if f.model.StatusMessage != "" || f.model.StatusIsError {
		t.Errorf("status not cleared: %q", f.model.StatusMessage)
	}
}

func TestView(t *testing.T) {
	f := newFixture(t, Options{})
	if got := f.model.View(); got != "Loading..." {
		t.Errorf("View before size = %q", got)
	}

	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := f.model.View()
	for _, want := range []string{"FRAMEWORKS", "FEATURES", "npx create-react-app my-app", "TypeScript"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	f.press("v")
	if view := f.model.View(); !strings.Contains(view, "PREVIEW") || !strings.Contains(view, "package.json") {
		t.Error("preview pane not rendered")
	}

	f.press("?")
	if view := f.model.View(); !strings.Contains(view, "key bindings") {
		t.Error("help overlay not rendered")
	}
	f.press("esc")
	if f.model.ShowHelp {
		t.Error("esc should close help")
	}

	f.send(tea.WindowSizeMsg{Width: 40, Height: 10})
	if view := f.model.View(); !strings.Contains(view, "resize") || !strings.Contains(view, "npx create-react-app my-app") {
		t.Errorf("compact view = %q", view)
	}
}

func TestQuit(t *testing.T) {
	f := newFixture(t, Options{})
	_, cmd := f.model.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
