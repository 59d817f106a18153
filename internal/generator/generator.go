// Package generator assembles scaffold commands, post-install steps and
// documentation links from the catalog. Everything here is pure.
package generator

import (
	"strings"

	"github.com/marcus/devsetup/internal/catalog"
)

// Generator resolves selections against a catalog.
type Generator struct {
	cat *catalog.Catalog
}

// New returns a Generator over c, or over the embedded catalog when c is nil.
func New(c *catalog.Catalog) *Generator {
	if c == nil {
		c = catalog.Default()
	}
	return &Generator{cat: c}
}

// Catalog exposes the underlying catalog.
func (g *Generator) Catalog() *catalog.Catalog { return g.cat }

// Command builds "<base> <projectName>" followed by each non-empty feature
// fragment in selection order. Nothing is deduplicated, validated or escaped.
func (g *Generator) Command(projectName string, fw catalog.FrameworkID, features []catalog.FeatureID) string {
	var b strings.Builder
	b.WriteString(g.cat.BaseCommand(fw))
	b.WriteString(" ")
	b.WriteString(projectName)
	for _, f := range features {
		frag := g.cat.Fragment(fw, f)
		if frag == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(frag)
	}
	return b.String()
}

// PostInstallSteps returns, for each selected feature with steps, a
// "# <feature> setup:" marker followed by its lines.
func (g *Generator) PostInstallSteps(fw catalog.FrameworkID, features []catalog.FeatureID) []string {
	var out []string
	for _, f := range features {
		steps := g.cat.FeatureSteps(fw, f)
		if len(steps) == 0 {
			continue
		}
		out = append(out, "# "+string(f)+" setup:")
		out = append(out, steps...)
	}
	return out
}

// DocumentationLinks returns the framework documentation link followed by the
// links of each selected feature.
func (g *Generator) DocumentationLinks(fw catalog.FrameworkID, features []catalog.FeatureID) []catalog.DocLink {
	links := []catalog.DocLink{{
		Name: capitalize(string(fw)) + " Documentation",
		URL:  g.cat.DocsURL(fw),
	}}
	for _, f := range features {
		links = append(links, g.cat.FeatureDocs(fw, f)...)
	}
	return links
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
