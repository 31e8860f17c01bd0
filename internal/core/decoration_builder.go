package core

import (
	"fmt"
	"strings"

	"github.com/innocenzi/dependi/internal/types"
)

// versionPlaceholder marks a declared value the user left uninitialized.
// The builder resolves it to the latest known version and requests an
// auto-fill of the document.
const versionPlaceholder = "?"

// BuildDecoration classifies one dependency against its known versions and
// produces the annotation descriptor: inline render text, hover document,
// and target range. The returned AutoFill is non-nil only when the
// declared value is the "?" placeholder; applying it (and saving) is the
// caller's concern and fails silently if the underlying write is rejected.
//
// When errText is non-empty all classification logic is bypassed: the
// result is ERROR and the hover lists the error lines verbatim (escaped so
// they render as literal text).
func BuildDecoration(
	item types.DependencyItem,
	versions []string,
	prefs types.Preferences,
	eco types.Ecosystem,
	vulns types.VulnerabilityMap,
	errText string,
) (types.Decoration, *types.AutoFill) {
	value := strings.TrimSuffix(strings.TrimSpace(item.Value), ",")
	latest := ""
	if len(versions) > 0 {
		latest = versions[0]
	}

	deco := types.Decoration{
		Range:  decorationRange(item, prefs.Position),
		Latest: latest,
	}

	if errText != "" {
		deco.Classification = types.ClassificationError
		deco.RenderText = substituteVersion(prefs.ErrorText, latest)
		deco.Hover = buildErrorHover(errText)
		return deco, nil
	}

	// Classification is a forward-only walk: start compatible, downgrade
	// on the first matching rule.
	var autoFill *types.AutoFill
	if value == versionPlaceholder {
		quoted := fmt.Sprintf("%q", latest)
		autoFill = &types.AutoFill{
			Value: stripDelimiters(quoted),
			Range: item.Range,
		}
		value = latest
	}

	satisfies, maxSatisfying, err := CheckVersion(eco, value, versions)
	deco.MaxSatisfying = maxSatisfying
	switch {
	case err != nil:
		deco.Classification = types.ClassificationError
	case latest != maxSatisfying:
		if satisfies {
			deco.Classification = types.ClassificationCompatible
		} else {
			deco.Classification = types.ClassificationIncompatible
		}
	default:
		deco.Classification = types.ClassificationCompatible
	}

	deco.RenderText = inlineText(deco.Classification, prefs, latest, maxSatisfying, vulns)
	deco.Hover = buildHover(item, versions, maxSatisfying, eco, vulns, prefs)
	return deco, autoFill
}

// inlineText renders the per-state template and appends the vulnerability
// count when the resolved version has known advisories.
func inlineText(
	classification types.Classification,
	prefs types.Preferences,
	latest string,
	maxSatisfying string,
	vulns types.VulnerabilityMap,
) string {
	var template string
	switch classification {
	case types.ClassificationIncompatible:
		template = prefs.IncompatibleText
	case types.ClassificationError:
		template = prefs.ErrorText
	default:
		template = prefs.CompatibleText
	}
	text := substituteVersion(template, latest)
	if count := len(vulns[maxSatisfying]); count > 0 {
		text += "\t" + substituteCount(prefs.VulnText, count)
	}
	return text
}

// buildHover assembles the markdown hover document: current-version
// advisories, ecosystem quick links, then one clickable bullet per known
// version in list order.
func buildHover(
	item types.DependencyItem,
	versions []string,
	maxSatisfying string,
	eco types.Ecosystem,
	vulns types.VulnerabilityMap,
	prefs types.Preferences,
) string {
	var b strings.Builder

	if advisories := vulns[maxSatisfying]; len(advisories) > 0 {
		b.WriteString("#### Vulnerabilities (Current)\n")
		for _, id := range advisories {
			fmt.Fprintf(&b, "- [%s](%s)\n", id, AdvisoryLink(id))
		}
		b.WriteString("\n")
	}

	b.WriteString("#### Versions\n")
	if quick := QuickLinks(eco, item.Key); quick != "" {
		b.WriteString(quick)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, version := range versions {
		label := version
		if version == maxSatisfying {
			label = "**" + version + "**"
		}
		instruction := types.ReplaceInstruction{Value: version, Range: item.Range}
		link, err := CommandLink(label, instruction)
		if err != nil {
			link = label
		}
		b.WriteString("- " + link)
		if i == 0 || version == maxSatisfying {
			if docs := DocsLink(eco, item.Key, version); docs != "" {
				b.WriteString("  " + docs)
			}
		}
		if count := len(vulns[version]); count > 0 {
			b.WriteString("  " + substituteCount(prefs.VulnText, count))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// buildErrorHover splits a multi-line error into bullets, escaping
// markdown so each segment renders as literal text.
func buildErrorHover(errText string) string {
	var b strings.Builder
	for _, line := range strings.Split(errText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("- " + escapeMarkdown(line) + "\n")
	}
	return b.String()
}

func decorationRange(item types.DependencyItem, position types.DecorationPosition) types.Range {
	if position == types.DecorationPositionBefore {
		return types.Range{Start: item.Range.Start, End: item.Range.Start}
	}
	return item.DecoRange
}

func substituteVersion(template string, version string) string {
	return strings.ReplaceAll(template, "${version}", version)
}

func substituteCount(template string, count int) string {
	return strings.ReplaceAll(template, "${count}", fmt.Sprintf("%d", count))
}

// stripDelimiters removes exactly one leading and one trailing character,
// assumed to be quote delimiters around a version literal.
func stripDelimiters(value string) string {
	if len(value) < 2 {
		return value
	}
	return value[1 : len(value)-1]
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"#", `\#`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

func escapeMarkdown(value string) string {
	return markdownEscaper.Replace(value)
}
