package generator

import (
	"fmt"
	"strings"
)

// PackageManager is the tool used to scaffold and install.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	PNPM PackageManager = "pnpm"
)

// PackageManagers lists the supported package managers.
var PackageManagers = []PackageManager{NPM, Yarn, PNPM}

// ParsePackageManager validates a package manager name.
func ParsePackageManager(s string) (PackageManager, error) {
	switch pm := PackageManager(strings.ToLower(strings.TrimSpace(s))); pm {
	case NPM, Yarn, PNPM:
		return pm, nil
	case "":
		return NPM, nil
	}
	return "", fmt.Errorf("unknown package manager %q (valid: npm, yarn, pnpm)", s)
}

// ForPackageManager rewrites every "npm create" and "npx create" occurrence to
// "<pm> create" for yarn and pnpm. Install fragments are left as they are.
func ForPackageManager(command string, pm PackageManager) string {
	switch pm {
	case Yarn, PNPM:
		repl := string(pm) + " create"
		command = strings.ReplaceAll(command, "npm create", repl)
		return strings.ReplaceAll(command, "npx create", repl)
	}
	return command
}

// Run returns the command that runs a package.json script.
func Run(pm PackageManager, script string) string {
	if pm == "" {
		pm = NPM
	}
	return string(pm) + " run " + script
}
