package types

// VulnerabilityMap maps a version string to its known advisory
// identifiers. A nil map means no vulnerability data was available, which
// is distinct from an empty map (data available, no advisories).
type VulnerabilityMap map[string][]string

// Preferences controls how inline annotations are rendered. The text
// templates substitute "${version}" with the latest known version and
// "${count}" with the advisory count.
type Preferences struct {
	Position         DecorationPosition
	CompatibleText   string
	IncompatibleText string
	ErrorText        string
	VulnText         string
}

// DefaultPreferences returns the stock annotation templates.
func DefaultPreferences() Preferences {
	return Preferences{
		Position:         DecorationPositionAfter,
		CompatibleText:   "✓ ${version}",
		IncompatibleText: "❌ ${version}",
		ErrorText:        "⚠️ ${version}",
		VulnText:         "🚨 ${count}",
	}
}

// Decoration is the annotation descriptor handed to the rendering layer:
// where to render, what to render inline, and the hover document. Hover is
// trusted markdown, meaning embedded command references must be honored by
// the renderer.
type Decoration struct {
	Range          Range
	RenderText     string
	Hover          string
	Classification Classification

	// Latest is versions[0], MaxSatisfying the resolved version for the
	// declared constraint ("" when nothing satisfies).
	Latest        string
	MaxSatisfying string
}

// AutoFill is the side-effect request emitted when a declared value is the
// "?" placeholder: overwrite Range with Value and save the document.
type AutoFill struct {
	Value string
	Range Range
}
