package guide

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/generator"
)

func TestStepsPnpm(t *testing.T) {
	g := generator.New(nil)
	steps := Steps(g, catalog.Svelte, []catalog.FeatureID{"typescript", "eslint"}, "blog", generator.PNPM)

	if len(steps) != 5 {
		t.Fatalf("got %d steps, want 5", len(steps))
	}
	titles := []string{}
	for _, s := range steps {
		titles = append(titles, s.Title)
	}
	want := []string{"Installation", "Navigate to Project", "Install Dependencies", "Configuration", "Start Development"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}

	if got := steps[0].Commands[0]; got != "pnpm create svelte@latest blog --with-typescript --with-eslint" {
		t.Errorf("install command = %q", got)
	}
	if !strings.Contains(steps[0].Description, "Svelte") {
		t.Errorf("description = %q", steps[0].Description)
	}
	if got := steps[1].Commands[0]; got != "cd blog" {
		t.Errorf("navigate = %q", got)
	}
	if got := steps[2].Commands[0]; got != "pnpm install" {
		t.Errorf("deps = %q", got)
	}
	if diff := cmp.Diff([]string{"ESLint: Edit `.eslintrc.js` for linting preferences"}, steps[3].Notes); diff != "" {
		t.Errorf("config notes mismatch (-want +got):\n%s", diff)
	}
	if got := steps[4].Commands[0]; got != "pnpm run dev" {
		t.Errorf("dev = %q", got)
	}
}

func TestStepsNoConfig(t *testing.T) {
	steps := Steps(generator.New(nil), catalog.React, nil, "app", "")
	if steps[2].Commands[0] != "npm install" {
		t.Errorf("default pm not npm: %q", steps[2].Commands[0])
	}
	if steps[3].Notes[0] != "No additional configuration needed for basic setup." {
		t.Errorf("notes = %v", steps[3].Notes)
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(Steps(generator.New(nil), catalog.Next, nil, "site", generator.Yarn))
	for _, want := range []string{"## 1. Installation", "yarn create-next-app site", "## 5. Start Development", "http://localhost:3000"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
