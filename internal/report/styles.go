package report

import "github.com/charmbracelet/lipgloss"

// Role names what a piece of report output is, not how it looks
type Role int

const (
	RoleLocation Role = iota // file:line:col, section headers
	RoleError
	RoleWarning // warnings, carets under a source line
	RoleSuccess
	RoleMuted // linter names, timings, hints
)

var roleStyles = map[Role]lipgloss.Style{
	RoleLocation: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	RoleError:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	RoleWarning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	RoleSuccess:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	RoleMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// SeverityRole maps an issue severity to the role its text is drawn with.
// Info issues stay unstyled.
func SeverityRole(severity string) (Role, bool) {
	switch severity {
	case SeverityError:
		return RoleError, true
	case SeverityWarning:
		return RoleWarning, true
	default:
		return 0, false
	}
}

// Paint renders text in the style of role, or returns it untouched when
// colors are off.
func Paint(role Role, text string, useColors bool) string {
	style, ok := roleStyles[role]
	if !useColors || !ok || text == "" {
		return text
	}
	return style.Render(text)
}
