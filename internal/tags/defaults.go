package tags

import "maps"

// Palette is the set of tokens new category tags get a color from.
var Palette = []string{
	"bg-purple-100 text-purple-800",
	"bg-indigo-100 text-indigo-800",
	"bg-blue-100 text-blue-800",
	"bg-cyan-100 text-cyan-800",
	"bg-teal-100 text-teal-800",
	"bg-emerald-100 text-emerald-800",
	"bg-green-100 text-green-800",
	"bg-lime-100 text-lime-800",
	"bg-yellow-100 text-yellow-800",
	"bg-amber-100 text-amber-800",
	"bg-orange-100 text-orange-800",
	"bg-pink-100 text-pink-800",
	"bg-rose-100 text-rose-800",
	"bg-violet-100 text-violet-800",
	"bg-fuchsia-100 text-fuchsia-800",
}

// DefaultColor is the seeded "default" category entry, used for categories
// without a color.
const DefaultColor = "bg-gray-100 text-gray-600"

var progressValues = []string{
	ProgressActive,
	ProgressPaused,
	ProgressDone,
	ProgressPlanned,
	ProgressDeprecated,
}

var defaultCategories = []string{
	"AI", "웹앱", "CLI", "봇", "스크래퍼", "자동화",
	"지식관리", "Obsidian", "에이전트", "데이터수집", "문서변환",
}

var defaultProgressColors = map[string]string{
	ProgressActive:     "bg-green-100 text-green-800 border-green-300",
	ProgressPaused:     "bg-gray-100 text-gray-800 border-gray-300",
	ProgressDone:       "bg-blue-100 text-blue-800 border-blue-300",
	ProgressPlanned:    "bg-orange-100 text-orange-800 border-orange-300",
	ProgressDeprecated: "bg-red-100 text-red-800 border-red-300",
}

var defaultCategoryColors = map[string]string{
	"AI":       "bg-purple-100 text-purple-800",
	"웹앱":       "bg-indigo-100 text-indigo-800",
	"CLI":      "bg-slate-100 text-slate-800",
	"봇":        "bg-pink-100 text-pink-800",
	"스크래퍼":     "bg-orange-100 text-orange-800",
	"자동화":      "bg-cyan-100 text-cyan-800",
	"지식관리":     "bg-amber-100 text-amber-800",
	"Obsidian": "bg-violet-100 text-violet-800",
	"에이전트":     "bg-fuchsia-100 text-fuchsia-800",
	"데이터수집":    "bg-teal-100 text-teal-800",
	"문서변환":     "bg-emerald-100 text-emerald-800",

	DefaultColorKey: DefaultColor,
}

// ProgressValues returns the fixed progress enum in display order.
func ProgressValues() []string {
	return append([]string(nil), progressValues...)
}

// DefaultDefinitions returns the seed registry.
func DefaultDefinitions() Definitions {
	return Definitions{
		Progress:   ProgressValues(),
		Categories: append([]string(nil), defaultCategories...),
	}
}

// DefaultColors returns the seed color map.
func DefaultColors() Colors {
	return Colors{
		Progress:   maps.Clone(defaultProgressColors),
		Categories: maps.Clone(defaultCategoryColors),
	}
}

// DefaultAssignments returns the seed assignment document (empty).
func DefaultAssignments() Assignments {
	return Assignments{}
}
