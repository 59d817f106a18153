// Package guide builds the step-by-step installation walkthrough.
package guide

import (
	"fmt"
	"strings"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/generator"
)

// DevServerURL is where the walkthrough says the app will be served.
const DevServerURL = "http://localhost:3000"

// Step is one page of the walkthrough.
type Step struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Commands    []string `json:"commands,omitempty"`
	Notes       []string `json:"notes,omitempty"`
}

// Steps returns the five walkthrough steps for a selection.
func Steps(g *generator.Generator, fw catalog.FrameworkID, features []catalog.FeatureID, projectName string, pm generator.PackageManager) []Step {
	if pm == "" {
		pm = generator.NPM
	}
	name := string(fw)
	if f, ok := g.Catalog().Framework(fw); ok {
		name = f.Name
	}
	cmd := generator.ForPackageManager(g.Command(projectName, fw, features), pm)

	return []Step{
		{
			Title:       "Installation",
			Description: fmt.Sprintf("Install the %s project with the CLI command", name),
			Commands:    []string{cmd},
		},
		{
			Title:       "Navigate to Project",
			Description: "Change directory to your new project",
			Commands:    []string{"cd " + projectName},
		},
		{
			Title:       "Install Dependencies",
			Description: "Install all required dependencies",
			Commands:    []string{string(pm) + " install"},
		},
		{
			Title:       "Configuration",
			Description: "Configure your development environment",
			Notes:       configNotes(features),
		},
		{
			Title:       "Start Development",
			Description: "Launch your development server",
			Commands:    []string{generator.Run(pm, "dev")},
			Notes:       []string{"Your application will be available at " + DevServerURL},
		},
	}
}

func configNotes(features []catalog.FeatureID) []string {
	has := func(id catalog.FeatureID) bool {
		for _, f := range features {
			if f == id {
				return true
			}
		}
		return false
	}
	var notes []string
	if has("eslint") {
		notes = append(notes, "ESLint: Edit `.eslintrc.js` for linting preferences")
	}
	if has("prettier") {
		notes = append(notes, "Prettier: Edit `.prettierrc` for formatting rules")
	}
	if has("tailwind") {
		notes = append(notes, "Tailwind CSS: Configure `tailwind.config.js` for styling")
	}
	if len(notes) == 0 {
		return []string{"No additional configuration needed for basic setup."}
	}
	return notes
}

// Markdown renders the steps as a numbered markdown document.
func Markdown(steps []Step) string {
	var b strings.Builder
	b.WriteString("# Installation Guide\n\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "## %d. %s\n\n%s\n\n", i+1, s.Title, s.Description)
		if len(s.Commands) > 0 {
			b.WriteString("```sh\n")
			for _, c := range s.Commands {
				b.WriteString(c)
				b.WriteString("\n")
			}
			b.WriteString("```\n\n")
		}
		for _, n := range s.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		if len(s.Notes) > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
