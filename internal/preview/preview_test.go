package preview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marcus/devsetup/internal/catalog"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestBuildReact(t *testing.T) {
	root := Build(catalog.React, nil, "")
	if root.Name != "my-app" {
		t.Errorf("root = %q, want my-app", root.Name)
	}
	want := []string{"src", "package.json", "README.md", "public"}
	if diff := cmp.Diff(want, names(root.Children)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSvelteMergesSrcAndRenamesForTypescript(t *testing.T) {
	root := Build(catalog.Svelte, []catalog.FeatureID{"typescript", "tailwind"}, "blog")

	src := root.Child("src")
	want := []string{"main.ts", "App.tsx", "App.svelte", "index.css"}
	if diff := cmp.Diff(want, names(src.Children)); diff != "" {
		t.Errorf("src mismatch (-want +got):\n%s", diff)
	}
	count := 0
	for _, c := range root.Children {
		if c.Name == "src" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("src appears %d times", count)
	}
	for _, name := range []string{"tsconfig.json", "tailwind.config.js", "postcss.config.js", "svelte.config.js"} {
		if root.Child(name) == nil {
			t.Errorf("missing %s", name)
		}
	}
}

func TestBuildHasNoDuplicateNames(t *testing.T) {
	var all []catalog.FeatureID
	for _, f := range catalog.Default().Features {
		all = append(all, f.ID)
	}
	for _, fw := range catalog.Default().Frameworks {
		for _, features := range [][]catalog.FeatureID{nil, all} {
			var walk func(n *Node, path string)
			walk = func(n *Node, path string) {
				seen := map[string]bool{}
				for _, c := range n.Children {
					if seen[c.Name] {
						t.Errorf("%s %v: %s/%s listed twice", fw.ID, features != nil, path, c.Name)
					}
					seen[c.Name] = true
					walk(c, path+"/"+c.Name)
				}
			}
			walk(Build(fw.ID, features, "app"), "app")
		}
	}

	src := Build(catalog.Solid, nil, "app").Child("src")
	if diff := cmp.Diff([]string{"main.ts", "App.tsx", "index.tsx"}, names(src.Children)); diff != "" {
		t.Errorf("solid src mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTestRunnerPrefersJest(t *testing.T) {
	root := Build(catalog.Vue, []catalog.FeatureID{"vitest", "jest"}, "app")
	if root.Child("jest.config.js") == nil || root.Child("vitest.config.js") != nil {
		t.Errorf("expected jest config only, got %v", names(root.Children))
	}
	tests := root.Child("__tests__")
	if tests == nil || !tests.Dir || tests.Child("example.test.ts") == nil {
		t.Error("missing __tests__/example.test.ts")
	}
}

func TestRender(t *testing.T) {
	root := dir("app",
		dir("src", file("main.ts")),
		file("package.json"),
	)
	want := "app/\n" +
		"├── src/\n" +
		"│   └── main.ts\n" +
		"└── package.json\n"
	if got := Render(root, nil); got != want {
		t.Errorf("Render mismatch:\n%s\nwant:\n%s", got, want)
	}

	files, dirs := Count(root)
	if files != 2 || dirs != 1 {
		t.Errorf("Count = %d files, %d dirs", files, dirs)
	}
}
