package preview

import "strings"

// Render draws the tree with box-drawing connectors. Directories get a
// trailing slash. decorate, when non-nil, styles each name.
func Render(root *Node, decorate func(n *Node, name string) string) string {
	if decorate == nil {
		decorate = func(_ *Node, name string) string { return name }
	}
	var b strings.Builder
	b.WriteString(decorate(root, label(root)))
	b.WriteString("\n")
	renderChildren(&b, root, "", decorate)
	return b.String()
}

func renderChildren(b *strings.Builder, n *Node, prefix string, decorate func(*Node, string) string) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		connector, next := "├── ", "│   "
		if last {
			connector, next = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(decorate(c, label(c)))
		b.WriteString("\n")
		if c.Dir {
			renderChildren(b, c, prefix+next, decorate)
		}
	}
}

func label(n *Node) string {
	if n.Dir {
		return n.Name + "/"
	}
	return n.Name
}

// Count returns the number of files and directories below root.
func Count(root *Node) (files, dirs int) {
	for _, c := range root.Children {
		if c.Dir {
			dirs++
			f, d := Count(c)
			files += f
			dirs += d
		} else {
			files++
		}
	}
	return files, dirs
}
