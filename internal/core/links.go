package core

import (
	"fmt"

	"github.com/innocenzi/dependi/internal/types"
)

// linkSet holds the markdown link templates for one ecosystem. Quick links
// render once under the Versions heading; the docs link is appended to the
// latest and resolved version bullets.
type linkSet struct {
	quick func(name string) string
	docs  func(name string, version string) string
}

// ecosystemLinks is the registry-page and documentation link table. Adding
// an ecosystem is a data change, not new branching.
var ecosystemLinks = map[types.Ecosystem]linkSet{
	types.EcosystemRust: {
		quick: func(name string) string {
			return fmt.Sprintf("[View crates.io](https://crates.io/crates/%s)  [View crev](https://web.crev.dev/rust-reviews/crate/%s/)", name, name)
		},
		docs: func(name string, version string) string {
			return fmt.Sprintf("[docs](https://docs.rs/%s/%s)", name, version)
		},
	},
	types.EcosystemGo: {
		quick: func(name string) string {
			return fmt.Sprintf("[View pkg.go.dev](https://pkg.go.dev/%s)  [View docs](https://pkg.go.dev/%s#section-documentation)", name, name)
		},
		docs: func(name string, version string) string {
			return fmt.Sprintf("[docs](https://pkg.go.dev/%s@%s#section-documentation)", name, version)
		},
	},
	types.EcosystemJavaScript: {
		quick: func(name string) string {
			return fmt.Sprintf("[View npm](https://www.npmjs.com/package/%s)", name)
		},
		docs: func(name string, version string) string {
			return fmt.Sprintf("[docs](https://www.npmjs.com/package/%s/v/%s)", name, version)
		},
	},
	types.EcosystemPython: {
		quick: func(name string) string {
			return fmt.Sprintf("[View PyPI](https://pypi.org/project/%s/)", name)
		},
		docs: func(name string, version string) string {
			return fmt.Sprintf("[docs](https://pypi.org/project/%s/%s/)", name, version)
		},
	},
}

// QuickLinks returns the registry quick links for a dependency, or "" for
// an unknown ecosystem.
func QuickLinks(eco types.Ecosystem, name string) string {
	if set, ok := ecosystemLinks[eco]; ok {
		return set.quick(name)
	}
	return ""
}

// DocsLink returns the pinned-version documentation link for a dependency,
// or "" for an unknown ecosystem.
func DocsLink(eco types.Ecosystem, name string, version string) string {
	if set, ok := ecosystemLinks[eco]; ok {
		return set.docs(name, version)
	}
	return ""
}

// AdvisoryLink returns the OSV page for an advisory identifier.
func AdvisoryLink(id string) string {
	return fmt.Sprintf("https://osv.dev/vulnerability/%s", id)
}
