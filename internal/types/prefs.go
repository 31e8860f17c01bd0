package types

import "strings"

// ProjectPrefs are per-project overrides loaded from a .dependi.yaml file
// next to the manifest. All fields are optional; zero values fall back to
// the base preferences.
type ProjectPrefs struct {
	Decorator DecoratorPrefs `yaml:"decorator,omitempty"`

	// Ignore lists dependency names to skip during annotation.
	Ignore []string `yaml:"ignore,omitempty"`
}

type DecoratorPrefs struct {
	Position      string `yaml:"position,omitempty"`
	Compatible    string `yaml:"compatible,omitempty"`
	Incompatible  string `yaml:"incompatible,omitempty"`
	Error         string `yaml:"error,omitempty"`
	Vulnerability string `yaml:"vulnerability,omitempty"`
}

// Apply overlays the non-empty overrides onto base and returns the result.
func (p ProjectPrefs) Apply(base Preferences) Preferences {
	if pos := strings.TrimSpace(p.Decorator.Position); pos != "" {
		base.Position = DecorationPosition(pos)
	}
	if p.Decorator.Compatible != "" {
		base.CompatibleText = p.Decorator.Compatible
	}
	if p.Decorator.Incompatible != "" {
		base.IncompatibleText = p.Decorator.Incompatible
	}
	if p.Decorator.Error != "" {
		base.ErrorText = p.Decorator.Error
	}
	if p.Decorator.Vulnerability != "" {
		base.VulnText = p.Decorator.Vulnerability
	}
	return base
}

// Ignored reports whether the dependency name is on the ignore list.
func (p ProjectPrefs) Ignored(name string) bool {
	for _, entry := range p.Ignore {
		if strings.EqualFold(strings.TrimSpace(entry), name) {
			return true
		}
	}
	return false
}
