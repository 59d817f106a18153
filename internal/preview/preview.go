// Package preview sketches the file tree a scaffold would produce.
package preview

import (
	"strings"

	"github.com/marcus/devsetup/internal/catalog"
)

// Node is a file or directory in the preview tree.
type Node struct {
	Name     string  `json:"name"`
	Dir      bool    `json:"dir,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

func file(name string) *Node { return &Node{Name: name} }

func dir(name string, children ...*Node) *Node {
	return &Node{Name: name, Dir: true, Children: children}
}

// Child returns the direct child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// add appends children. Directories that already exist by name are merged
// and files that already exist are skipped.
func (n *Node) add(children ...*Node) {
	for _, c := range children {
		existing := n.Child(c.Name)
		switch {
		case existing == nil:
			n.Children = append(n.Children, c)
		case existing.Dir && c.Dir:
			existing.add(c.Children...)
		}
	}
}

// renameExt renames files ending in from to end in to. A renamed file that
// would collide with an existing one is dropped.
func (n *Node) renameExt(from, to string) {
	kept := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.Dir && strings.HasSuffix(c.Name, from) {
			renamed := strings.TrimSuffix(c.Name, from) + to
			if n.Child(renamed) != nil {
				continue
			}
			c.Name = renamed
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

// Build returns the preview tree for a framework and feature selection.
// An empty project name falls back to "my-app".
func Build(fw catalog.FrameworkID, features []catalog.FeatureID, projectName string) *Node {
	if projectName == "" {
		projectName = "my-app"
	}
	root := dir(projectName,
		dir("src", file("main.ts"), file("App.tsx")),
		file("package.json"),
		file("README.md"),
	)

	switch fw {
	case catalog.React:
		root.add(dir("public", file("index.html"), file("favicon.ico")))
	case catalog.Next:
		root.add(
			dir("pages", file("index.tsx"), dir("api", file("hello.ts")), file("_app.tsx")),
			dir("public", file("favicon.ico")),
			file("next.config.js"),
		)
	case catalog.Vue:
		root.add(
			dir("public", file("index.html")),
			dir("components", file("HelloWorld.vue")),
			file("App.vue"),
			file("vite.config.js"),
		)
	case catalog.Nuxt:
		root.add(
			dir("pages", file("index.vue")),
			dir("components", file("AppHeader.vue")),
			dir("assets"),
			file("nuxt.config.js"),
		)
	case catalog.Svelte:
		root.add(
			dir("public", file("index.html")),
			dir("src", file("App.svelte"), file("main.js")),
			file("svelte.config.js"),
		)
	case catalog.Solid:
		root.add(
			dir("public", file("index.html")),
			dir("src", file("App.tsx"), file("index.tsx")),
			file("vite.config.js"),
		)
	}

	has := func(id catalog.FeatureID) bool {
		for _, f := range features {
			if f == id {
				return true
			}
		}
		return false
	}
	src := root.Child("src")

	if has("typescript") {
		root.add(file("tsconfig.json"))
		src.renameExt(".js", ".ts")
	}
	if has("tailwind") {
		root.add(file("tailwind.config.js"), file("postcss.config.js"))
		src.add(file("index.css"))
	}
	if has("eslint") {
		root.add(file(".eslintrc.js"))
	}
	if has("prettier") {
		root.add(file(".prettierrc"), file(".prettierignore"))
	}
	if has("jest") || has("vitest") {
		config := "vitest.config.js"
		if has("jest") {
			config = "jest.config.js"
		}
		root.add(file(config), dir("__tests__", file("example.test.ts")))
	}
	return root
}
