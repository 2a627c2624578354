package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/habitpet/internal/model"
)

// Shared ink for all pastel backgrounds
const (
	ink      = lipgloss.Color("#44403C")
	inkMuted = lipgloss.Color("#A8A29E")
	success  = lipgloss.Color("#4ADE80")
	warning  = lipgloss.Color("#F59E0B")
	danger   = lipgloss.Color("#F87171")
)

// Cream is the default palette
var Cream = Theme{
	Name: string(model.ThemeCream),

	Background: lipgloss.Color("#FDFBF7"),
	Foreground: ink,
	Subtle:     inkMuted,
	Highlight:  lipgloss.Color("#F5F5F4"),
	Border:     lipgloss.Color("#E7E5E4"),

	Primary:   lipgloss.Color("#D97706"),
	Secondary: lipgloss.Color("#A16207"),
	Success:   success,
	Warning:   warning,
	Error:     danger,
	Info:      lipgloss.Color("#60A5FA"),

	XPFill:  lipgloss.Color("#FBBF24"),
	XPEmpty: lipgloss.Color("#E7E5E4"),
}

var Sky = Theme{
	Name: string(model.ThemeSky),

	Background: lipgloss.Color("#E0F2FE"),
	Foreground: ink,
	Subtle:     inkMuted,
	Highlight:  lipgloss.Color("#F0F9FF"),
	Border:     lipgloss.Color("#BAE6FD"),

	Primary:   lipgloss.Color("#0284C7"),
	Secondary: lipgloss.Color("#0369A1"),
	Success:   success,
	Warning:   warning,
	Error:     danger,
	Info:      lipgloss.Color("#38BDF8"),

	XPFill:  lipgloss.Color("#38BDF8"),
	XPEmpty: lipgloss.Color("#BAE6FD"),
}

var Lavender = Theme{
	Name: string(model.ThemeLavender),

	Background: lipgloss.Color("#F3E8FF"),
	Foreground: ink,
	Subtle:     inkMuted,
	Highlight:  lipgloss.Color("#FAF5FF"),
	Border:     lipgloss.Color("#D8B4FE"),

	Primary:   lipgloss.Color("#9333EA"),
	Secondary: lipgloss.Color("#7E22CE"),
	Success:   success,
	Warning:   warning,
	Error:     danger,
	Info:      lipgloss.Color("#A78BFA"),

	XPFill:  lipgloss.Color("#C084FC"),
	XPEmpty: lipgloss.Color("#E9D5FF"),
}

var Mint = Theme{
	Name: string(model.ThemeMint),

	Background: lipgloss.Color("#DCFCE7"),
	Foreground: ink,
	Subtle:     inkMuted,
	Highlight:  lipgloss.Color("#F0FDF4"),
	Border:     lipgloss.Color("#86EFAC"),

	Primary:   lipgloss.Color("#16A34A"),
	Secondary: lipgloss.Color("#15803D"),
	Success:   success,
	Warning:   warning,
	Error:     danger,
	Info:      lipgloss.Color("#2DD4BF"),

	XPFill:  lipgloss.Color("#4ADE80"),
	XPEmpty: lipgloss.Color("#BBF7D0"),
}

var Pink = Theme{
	Name: string(model.ThemePink),

	Background: lipgloss.Color("#FDF2F8"),
	Foreground: ink,
	Subtle:     inkMuted,
	Highlight:  lipgloss.Color("#FFF1F2"),
	Border:     lipgloss.Color("#FBCFE8"),

	Primary:   lipgloss.Color("#DB2777"),
	Secondary: lipgloss.Color("#BE185D"),
	Success:   success,
	Warning:   warning,
	Error:     danger,
	Info:      lipgloss.Color("#F472B6"),

	XPFill:  lipgloss.Color("#F472B6"),
	XPEmpty: lipgloss.Color("#FBCFE8"),
}
