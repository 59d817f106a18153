package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := Load(embedded)
	if err != nil {
		t.Fatalf("Load embedded failed: %v", err)
	}
	if got := len(c.Frameworks); got != 6 {
		t.Errorf("frameworks = %d, want 6", got)
	}
	if got := len(c.Features); got != 40 {
		t.Errorf("features = %d, want 40", got)
	}
	if Default() == nil {
		t.Fatal("Default returned nil")
	}
}

func TestEveryFeatureHasFragmentForEveryFramework(t *testing.T) {
	c := Default()
	for _, ft := range c.Features {
		for _, fw := range c.Frameworks {
			if _, ok := ft.Fragments[fw.ID]; !ok {
				t.Errorf("feature %s missing fragment for %s", ft.ID, fw.ID)
			}
		}
	}
}

func TestBaseCommand(t *testing.T) {
	c := Default()
	tests := []struct {
		fw   FrameworkID
		want string
	}{
		{React, "npx create-react-app"},
		{Next, "npx create-next-app"},
		{Vue, "npm init vue@latest"},
		{Nuxt, "npx nuxi init"},
		{Svelte, "npm create svelte@latest"},
		{Solid, "npx degit solidjs/templates/js"},
		{"angular", "npx create-angular-app"},
	}
	for _, tt := range tests {
		if got := c.BaseCommand(tt.fw); got != tt.want {
			t.Errorf("BaseCommand(%s) = %q, want %q", tt.fw, got, tt.want)
		}
	}
}

func TestFragmentLookups(t *testing.T) {
	c := Default()
	tests := []struct {
		fw   FrameworkID
		ft   FeatureID
		want string
	}{
		{React, "typescript", "--template typescript"},
		{Next, "tailwind", "--tailwind"},
		{React, "eslint", ""},
		{Next, "router", ""},
		{Vue, "redux", `&& echo "Redux is not commonly used with Vue"`},
		{React, "nonexistent", ""},
		{"angular", "typescript", ""},
	}
	for _, tt := range tests {
		if got := c.Fragment(tt.fw, tt.ft); got != tt.want {
			t.Errorf("Fragment(%s, %s) = %q, want %q", tt.fw, tt.ft, got, tt.want)
		}
	}
}

func TestAvailability(t *testing.T) {
	c := Default()
	tests := []struct {
		fw   FrameworkID
		ft   FeatureID
		want bool
	}{
		{Solid, "eslint", false},
		{Svelte, "eslint", true},
		{Next, "router", false},
		{Nuxt, "router", false},
		{Vue, "router", true},
		{Vue, "shadcn", false},
		{Next, "shadcn", true},
		{Solid, "stripe", true},
		{Svelte, "openai", true},
		{React, "vuex", false},
	}
	for _, tt := range tests {
		if got := c.Available(tt.fw, tt.ft); got != tt.want {
			t.Errorf("Available(%s, %s) = %v, want %v", tt.fw, tt.ft, got, tt.want)
		}
	}

	ui := c.FeaturesFor(Vue, CategoryUI)
	for _, f := range ui {
		if f.ID == "shadcn" || f.ID == "chakra" {
			t.Errorf("FeaturesFor(vue, ui) includes %s", f.ID)
		}
	}
}

func TestFeatureDocsOverride(t *testing.T) {
	c := Default()

	got := c.FeatureDocs(Vue, "router")
	if len(got) != 1 || got[0].Name != "Vue Router" {
		t.Errorf("vue router docs = %+v", got)
	}

	got = c.FeatureDocs(Svelte, "router")
	if len(got) != 1 || got[0].Name != "Routing Documentation" {
		t.Errorf("svelte router docs should fall back to default, got %+v", got)
	}

	got = c.FeatureDocs(React, "typescript")
	want := []DocLink{
		{Name: "TypeScript with React", URL: "https://react.dev/learn/typescript"},
		{Name: "TypeScript Documentation", URL: "https://www.typescriptlang.org/docs/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("react typescript docs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsMissingFragment(t *testing.T) {
	data := `
frameworks:
  - {id: react, name: React, command: npx create-react-app}
  - {id: vue, name: Vue, command: npm init vue@latest}
features:
  - id: typescript
    name: TypeScript
    category: core
    available_for: [react, vue]
    fragments:
      react: '--template typescript'
`
	_, err := Load([]byte(data))
	if err == nil {
		t.Fatal("expected validation error for missing fragment")
	}
	if !strings.Contains(err.Error(), `missing fragment for "vue"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadRejectsBadReferences(t *testing.T) {
	data := `
frameworks:
  - {id: react, name: React, command: npx create-react-app}
features:
  - id: redux
    name: Redux
    category: state
    available_for: [react, angular]
    fragments:
      react: '&& npm install redux'
presets:
  - {id: p1, name: P1, framework: ember, features: []}
  - {id: p2, name: P2, framework: react, features: [zustand]}
`
	_, err := Load([]byte(data))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		`available for unknown framework "angular"`,
		`preset "p1": unknown framework "ember"`,
		`preset "p2": unknown feature "zustand"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestParseFrameworkAndFeatures(t *testing.T) {
	c := Default()
	fw, err := c.ParseFramework(" Next ")
	if err != nil || fw != Next {
		t.Fatalf("ParseFramework = %q, %v", fw, err)
	}
	if _, err := c.ParseFramework("angular"); !errors.Is(err, ErrUnknownFramework) {
		t.Errorf("expected ErrUnknownFramework, got %v", err)
	}

	fts, err := c.ParseFeatures([]string{"tailwind", "", "TypeScript"})
	if err != nil {
		t.Fatalf("ParseFeatures failed: %v", err)
	}
	if diff := cmp.Diff([]FeatureID{"tailwind", "typescript"}, fts); diff != "" {
		t.Errorf("ParseFeatures mismatch (-want +got):\n%s", diff)
	}
	if _, err := c.ParseFeatures([]string{"bootstrap"}); !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestSearchPresets(t *testing.T) {
	c := Default()
	tests := []struct {
		query string
		want  []string
	}{
		{"", nil},
		{"STRIPE", []string{"saas-starter", "ecommerce-store"}},
		{"svelte", []string{"svelte-blog"}},
		{"dashboard", []string{"admin-dashboard"}},
		{"no-such-thing", []string{}},
	}
	for _, tt := range tests {
		got := c.SearchPresets(tt.query)
		if tt.want == nil {
			if len(got) != len(c.Presets) {
				t.Errorf("SearchPresets(%q) = %d presets, want all %d", tt.query, len(got), len(c.Presets))
			}
			continue
		}
		ids := []string{}
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		if diff := cmp.Diff(tt.want, ids); diff != "" {
			t.Errorf("SearchPresets(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestCompare(t *testing.T) {
	c := Default()
	got, err := c.Compare([]FrameworkID{React, Svelte, Solid}, ScorePerformance)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	ids := []FrameworkID{got[0].ID, got[1].ID, got[2].ID}
	// svelte and solid tie at 10; stable sort keeps request order
	if diff := cmp.Diff([]FrameworkID{Svelte, Solid, React}, ids); diff != "" {
		t.Errorf("Compare order mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.Compare([]FrameworkID{React, Vue, Next, Nuxt}, ScoreLearning); err == nil {
		t.Error("expected error comparing four frameworks")
	}
	if _, err := c.Compare([]FrameworkID{React}, "speed"); err == nil {
		t.Error("expected error for unknown category")
	}
	if _, err := c.Compare(nil, ScoreLearning); err == nil {
		t.Error("expected error for empty selection")
	}
}
