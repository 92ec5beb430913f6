package styles

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// tailwind holds the shades used by tag color tokens, keyed by family and
// shade. Only the shades the dashboard stores are listed.
var tailwind = map[string]map[string]string{
	"purple":  {"100": "#f3e8ff", "300": "#d8b4fe", "600": "#9333ea", "700": "#7e22ce", "800": "#6b21a8"},
	"indigo":  {"100": "#e0e7ff", "300": "#a5b4fc", "600": "#4f46e5", "700": "#4338ca", "800": "#3730a3"},
	"blue":    {"100": "#dbeafe", "300": "#93c5fd", "600": "#2563eb", "700": "#1d4ed8", "800": "#1e40af"},
	"cyan":    {"100": "#cffafe", "300": "#67e8f9", "600": "#0891b2", "700": "#0e7490", "800": "#155e75"},
	"teal":    {"100": "#ccfbf1", "300": "#5eead4", "600": "#0d9488", "700": "#0f766e", "800": "#115e59"},
	"emerald": {"100": "#d1fae5", "300": "#6ee7b7", "600": "#059669", "700": "#047857", "800": "#065f46"},
	"green":   {"100": "#dcfce7", "300": "#86efac", "600": "#16a34a", "700": "#15803d", "800": "#166534"},
	"lime":    {"100": "#ecfccb", "300": "#bef264", "600": "#65a30d", "700": "#4d7c0f", "800": "#3f6212"},
	"yellow":  {"100": "#fef9c3", "300": "#fde047", "600": "#ca8a04", "700": "#a16207", "800": "#854d0e"},
	"amber":   {"100": "#fef3c7", "300": "#fcd34d", "600": "#d97706", "700": "#b45309", "800": "#92400e"},
	"orange":  {"100": "#ffedd5", "300": "#fdba74", "600": "#ea580c", "700": "#c2410c", "800": "#9a3412"},
	"red":     {"100": "#fee2e2", "300": "#fca5a5", "600": "#dc2626", "700": "#b91c1c", "800": "#991b1b"},
	"pink":    {"100": "#fce7f3", "300": "#f9a8d4", "600": "#db2777", "700": "#be185d", "800": "#9d174d"},
	"rose":    {"100": "#ffe4e6", "300": "#fda4af", "600": "#e11d48", "700": "#be123c", "800": "#9f1239"},
	"violet":  {"100": "#ede9fe", "300": "#c4b5fd", "600": "#7c3aed", "700": "#6d28d9", "800": "#5b21b6"},
	"fuchsia": {"100": "#fae8ff", "300": "#f0abfc", "600": "#c026d3", "700": "#a21caf", "800": "#86198f"},
	"gray":    {"100": "#f3f4f6", "300": "#d1d5db", "600": "#4b5563", "700": "#374151", "800": "#1f2937"},
	"slate":   {"100": "#f1f5f9", "300": "#cbd5e1", "600": "#475569", "700": "#334155", "800": "#1e293b"},
}

// TokenColors resolves the bg-* and text-* classes of a color token such as
// "bg-purple-100 text-purple-800". Unknown classes yield nil; other classes
// (border-*) are ignored.
func TokenColors(token string) (fg, bg color.Color) {
	for _, class := range strings.Fields(token) {
		kind, rest, ok := strings.Cut(class, "-")
		if !ok {
			continue
		}
		family, shade, ok := strings.Cut(rest, "-")
		if !ok {
			continue
		}
		hex, ok := tailwind[family][shade]
		if !ok {
			continue
		}
		switch kind {
		case "bg":
			bg = lipgloss.Color(hex)
		case "text":
			fg = lipgloss.Color(hex)
		}
	}
	return fg, bg
}

// Chip renders text as a tag chip colored by token. With the "none" theme,
// or when the token resolves to nothing, the text is wrapped in brackets
// instead so chips stay distinguishable.
func Chip(token, text string) string {
	fg, bg := TokenColors(token)
	if !chipsEnabled || (fg == nil && bg == nil) {
		return "[" + text + "]"
	}

	style := lipgloss.NewStyle().Padding(0, 1)
	if fg != nil {
		style = style.Foreground(fg)
	}
	if bg != nil {
		style = style.Background(bg)
	}
	return style.Render(text)
}
