package generator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marcus/devsetup/internal/catalog"
)

func TestCommand(t *testing.T) {
	g := New(nil)
	tests := []struct {
		name     string
		project  string
		fw       catalog.FrameworkID
		features []catalog.FeatureID
		want     string
	}{
		{
			name:    "no features",
			project: "my-app",
			fw:      catalog.Vue,
			want:    "npm init vue@latest my-app",
		},
		{
			name:     "empty fragment is skipped",
			project:  "app",
			fw:       catalog.React,
			features: []catalog.FeatureID{"eslint"},
			want:     "npx create-react-app app",
		},
		{
			name:     "fragments follow toggle order",
			project:  "app",
			fw:       catalog.React,
			features: []catalog.FeatureID{"tailwind", "typescript"},
			want:     "npx create-react-app app && npm install -D tailwindcss postcss autoprefixer && npx tailwindcss init -p --template typescript",
		},
		{
			name:     "next flags",
			project:  "site",
			fw:       catalog.Next,
			features: []catalog.FeatureID{"typescript", "tailwind", "eslint"},
			want:     "npx create-next-app site --typescript --tailwind --eslint",
		},
		{
			name:     "unavailable feature still appends its no-op",
			project:  "x",
			fw:       catalog.Vue,
			features: []catalog.FeatureID{"redux"},
			want:     `npm init vue@latest x && echo "Redux is not commonly used with Vue"`,
		},
		{
			name:     "unknown framework falls back",
			project:  "x",
			fw:       "angular",
			features: []catalog.FeatureID{"typescript"},
			want:     "npx create-angular-app x",
		},
		{
			name:     "project name is not escaped",
			project:  "a b;c",
			fw:       catalog.Svelte,
			want:     "npm create svelte@latest a b;c",
		},
		{
			name:     "duplicates are not removed",
			project:  "app",
			fw:       catalog.Next,
			features: []catalog.FeatureID{"typescript", "typescript"},
			want:     "npx create-next-app app --typescript --typescript",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Command(tt.project, tt.fw, tt.features); got != tt.want {
				t.Errorf("Command() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandWithoutFeaturesIsBaseAndName(t *testing.T) {
	g := New(nil)
	cat := g.Catalog()
	for _, fw := range cat.Frameworks {
		for _, name := range []string{"my-app", "x", "shop-2"} {
			want := cat.BaseCommand(fw.ID) + " " + name
			if got := g.Command(name, fw.ID, nil); got != want {
				t.Errorf("Command(%s, %s, nil) = %q, want %q", name, fw.ID, got, want)
			}
			if got := g.Command(name, fw.ID, []catalog.FeatureID{}); got != want {
				t.Errorf("Command(%s, %s, []) = %q, want %q", name, fw.ID, got, want)
			}
		}
	}
}

func TestEmptyFragmentsLeaveCommandUnchanged(t *testing.T) {
	g := New(nil)
	cat := g.Catalog()
	empty := 0
	for _, fw := range cat.Frameworks {
		for _, ft := range cat.Features {
			if cat.Fragment(fw.ID, ft.ID) != "" {
				continue
			}
			empty++
			if got, want := g.Command("app", fw.ID, []catalog.FeatureID{ft.ID}), g.Command("app", fw.ID, nil); got != want {
				t.Errorf("%s/%s alone: %q, want %q", fw.ID, ft.ID, got, want)
			}
			with := g.Command("app", fw.ID, []catalog.FeatureID{"typescript", ft.ID, "tailwind"})
			without := g.Command("app", fw.ID, []catalog.FeatureID{"typescript", "tailwind"})
			if ft.ID == "typescript" || ft.ID == "tailwind" {
				continue
			}
			if with != without {
				t.Errorf("%s/%s in a selection: %q, want %q", fw.ID, ft.ID, with, without)
			}
		}
	}
	if empty == 0 {
		t.Fatal("catalog has no empty fragments to check")
	}
}

func TestPostInstallSteps(t *testing.T) {
	g := New(nil)

	if got := g.PostInstallSteps(catalog.React, nil); len(got) != 0 {
		t.Errorf("expected no steps, got %v", got)
	}
	// aws has steps, azure has none
	got := g.PostInstallSteps(catalog.React, []catalog.FeatureID{"azure", "aws"})
	want := []string{
		"# aws setup:",
		"Configure credentials through environment variables or a Cognito identity pool",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PostInstallSteps mismatch (-want +got):\n%s", diff)
	}

	got = g.PostInstallSteps(catalog.Nuxt, []catalog.FeatureID{"tailwind"})
	if len(got) != 2 || got[0] != "# tailwind setup:" || !strings.Contains(got[1], "nuxt.config.ts") {
		t.Errorf("nuxt tailwind steps = %v", got)
	}
}

func TestDocumentationLinks(t *testing.T) {
	g := New(nil)

	got := g.DocumentationLinks(catalog.Vue, []catalog.FeatureID{"router", "azure"})
	want := []catalog.DocLink{
		{Name: "Vue Documentation", URL: "https://vuejs.org/guide/introduction.html"},
		{Name: "Vue Router", URL: "https://router.vuejs.org/"},
		{Name: "Azure SDK Documentation", URL: "https://learn.microsoft.com/en-us/azure/developer/javascript/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DocumentationLinks mismatch (-want +got):\n%s", diff)
	}

	got = g.DocumentationLinks("angular", nil)
	want = []catalog.DocLink{{Name: "Angular Documentation", URL: ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unknown framework links mismatch (-want +got):\n%s", diff)
	}
}

func TestForPackageManager(t *testing.T) {
	tests := []struct {
		cmd  string
		pm   PackageManager
		want string
	}{
		{"npx create-next-app app --typescript", PNPM, "pnpm create-next-app app --typescript"},
		{"npm create svelte@latest app", Yarn, "yarn create svelte@latest app"},
		{"npx create-react-app app && npm install sass", PNPM, "pnpm create-react-app app && npm install sass"},
		{"npm init vue@latest app", PNPM, "npm init vue@latest app"},
		{"npx nuxi init app", Yarn, "npx nuxi init app"},
		{"npx create-react-app app", NPM, "npx create-react-app app"},
		{"npx create-a && npx create-b", Yarn, "yarn create-a && yarn create-b"},
	}
	for _, tt := range tests {
		if got := ForPackageManager(tt.cmd, tt.pm); got != tt.want {
			t.Errorf("ForPackageManager(%q, %s) = %q, want %q", tt.cmd, tt.pm, got, tt.want)
		}
	}
}

func TestParsePackageManager(t *testing.T) {
	for in, want := range map[string]PackageManager{"": NPM, "npm": NPM, "Yarn": Yarn, " pnpm ": PNPM} {
		got, err := ParsePackageManager(in)
		if err != nil || got != want {
			t.Errorf("ParsePackageManager(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePackageManager("bun"); err == nil {
		t.Error("expected error for bun")
	}
}

func TestSelectionToggle(t *testing.T) {
	s := NewSelection()
	s.Toggle("tailwind")
	s.Toggle("typescript")
	s.Toggle("eslint")
	if on := s.Toggle("tailwind"); on {
		t.Error("second toggle should deselect")
	}
	s.Toggle("tailwind")

	want := []catalog.FeatureID{"typescript", "eslint", "tailwind"}
	if diff := cmp.Diff(want, s.IDs()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	if !s.Has("eslint") || s.Has("sass") {
		t.Error("Has returned wrong result")
	}

	dup := NewSelection("a", "b", "a")
	if dup.Len() != 2 {
		t.Errorf("NewSelection kept duplicates: %v", dup.IDs())
	}
	dup.Clear()
	if dup.Len() != 0 {
		t.Error("Clear left entries")
	}
}
