// Package output provides styled terminal output helpers (success, error,
// warning, command and feature formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/marcus/devsetup/internal/catalog"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	categoryStyles = map[catalog.Category]lipgloss.Style{
		catalog.CategoryCore:    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		catalog.CategoryUI:      lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		catalog.CategoryPayment: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		catalog.CategoryCloud:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		catalog.CategoryAI:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		catalog.CategoryState:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		catalog.CategoryMisc:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound       = "not_found"
	ErrCodeInvalidInput   = "invalid_input"
	ErrCodeSignupRequired = "signup_required"
	ErrCodeStorageError   = "storage_error"
	ErrCodeNetworkError   = "network_error"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	data, _ := json.Marshal(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
	fmt.Println(string(data))
}

// Title renders bold text.
func Title(s string) string { return titleStyle.Render(s) }

// Subtle renders dimmed text.
func Subtle(s string) string { return subtleStyle.Render(s) }

// CommandBlock renders a command in a rounded box.
func CommandBlock(cmd string) string {
	return commandStyle.Render(cmd)
}

// FormatCategory colors a category label.
func FormatCategory(c catalog.Category) string {
	style, ok := categoryStyles[c]
	if !ok {
		return string(c)
	}
	return style.Render(string(c))
}

// FeatureBadges shows the first max feature ids and a "+N" remainder.
func FeatureBadges(ids []catalog.FeatureID, max int) string {
	if len(ids) == 0 {
		return subtleStyle.Render("no features")
	}
	var parts []string
	for i, id := range ids {
		if max > 0 && i == max {
			parts = append(parts, subtleStyle.Render(fmt.Sprintf("+%d", len(ids)-max)))
			break
		}
		parts = append(parts, badgeStyle.Render(string(id)))
	}
	return strings.Join(parts, " ")
}

// ScoreBar draws a 10-cell bar for a 1-10 score.
func ScoreBar(score int) string {
	score = min(max(score, 0), 10)
	return successStyle.Render(strings.Repeat("█", score)) +
		subtleStyle.Render(strings.Repeat("░", 10-score)) +
		fmt.Sprintf(" %d/10", score)
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	if time.Since(t) < time.Minute {
		return "just now"
	}
	return humanize.Time(t)
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nPOST-INSTALL STEPS:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// BulletList formats items as a bulleted list with optional indentation
func BulletList(items []string, indent int) []string {
	prefix := strings.Repeat(" ", indent)
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = prefix + "- " + item
	}
	return result
}
