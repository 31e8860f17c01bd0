package app

import (
	"context"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"github.com/innocenzi/dependi/internal/core"
	"github.com/innocenzi/dependi/internal/ports"
	"github.com/innocenzi/dependi/internal/shared"
	"github.com/innocenzi/dependi/internal/types"
)

const prefsFileName = ".dependi.yaml"

// Annotate parses a manifest, looks up versions and advisories for every
// declared dependency, and builds the decoration descriptor for each. It
// also applies "?" auto-fills to the document and queues a latest-version
// replace instruction per outdated dependency for a later ReplaceAll.
func (s Service) Annotate(ctx context.Context, req AnnotateRequest) (AnnotateResult, error) {
	assert.NotEmpty(ctx, req.ManifestPath, "manifest path must be set")

	manifest, err := s.Manifest(req.ManifestPath)
	if err != nil {
		return AnnotateResult{}, err
	}
	doc, err := s.OpenDocument(req.ManifestPath)
	if err != nil {
		return AnnotateResult{}, err
	}
	items, err := manifest.Parse(doc.Text())
	if err != nil {
		return AnnotateResult{}, err
	}
	eco := manifest.Ecosystem()

	prefs, projPrefs, err := s.loadPreferences(req)
	if err != nil {
		return AnnotateResult{}, err
	}
	registry, err := s.Registry(eco, req.RegistryURL)
	if err != nil {
		return AnnotateResult{}, err
	}

	result := AnnotateResult{
		Ecosystem: eco,
		Counts:    map[types.Classification]int{},
	}
	saveNeeded := false
	for _, item := range items {
		name := shared.TrimQuotes(item.Key)
		if projPrefs.Ignored(name) {
			continue
		}

		versions, errText := s.lookupVersions(ctx, registry, name)
		var vulns types.VulnerabilityMap
		if !req.NoVulns && errText == "" {
			// Lookup failures degrade to "no data"; the adapter never
			// propagates them.
			vulns, _ = s.Advisories.Advisories(ctx, eco, name, versions)
		}

		deco, autoFill := core.BuildDecoration(item, versions, prefs, eco, vulns, errText)
		annotated := AnnotatedDependency{Item: item, Decoration: deco}
		if autoFill != nil {
			annotated.AutoFilled = s.applyAutoFill(ctx, doc, *autoFill)
			saveNeeded = saveNeeded || annotated.AutoFilled
		}
		// An auto-filled dependency is already at the latest version, so
		// queueing it would only apply a stale range.
		if autoFill == nil && shouldQueueUpdate(item.Value, deco.Latest) {
			s.Session.Queue(types.ReplaceInstruction{Value: deco.Latest, Range: item.Range})
		}

		result.Items = append(result.Items, annotated)
		result.Counts[deco.Classification]++
	}
	if saveNeeded {
		s.saveAsync(ctx, doc)
	}
	log.Ctx(ctx).Debug().
		Str("manifest", req.ManifestPath).
		Int("deps", len(result.Items)).
		Int("outdated", result.Counts[types.ClassificationIncompatible]).
		Msg("manifest annotated")
	return result, nil
}

// lookupVersions fetches the known versions; failures become the
// user-visible error text that drives the ERROR classification instead of
// propagating.
func (s Service) lookupVersions(ctx context.Context, registry ports.RegistryPort, name string) ([]string, string) {
	versions, err := registry.Versions(ctx, name)
	if err != nil {
		return nil, err.Error()
	}
	if len(versions) == 0 {
		return nil, "no published versions found for " + name
	}
	return versions, ""
}

// applyAutoFill overwrites the placeholder with the latest version and
// reports whether the write took. Rejected writes are logged and otherwise
// silent.
func (s Service) applyAutoFill(ctx context.Context, doc ports.DocumentPort, fill types.AutoFill) bool {
	if err := doc.ReplaceRange(fill.Range, fill.Value); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("value", fill.Value).Msg("auto-fill rejected")
		return false
	}
	return true
}

func (s Service) loadPreferences(req AnnotateRequest) (types.Preferences, types.ProjectPrefs, error) {
	prefs := req.Preferences
	if prefs == (types.Preferences{}) {
		prefs = types.DefaultPreferences()
	}
	path := req.PrefsPath
	if path == "" {
		path = filepath.Join(filepath.Dir(req.ManifestPath), prefsFileName)
	}
	projPrefs, err := s.Prefs.Load(path)
	if err != nil {
		return types.Preferences{}, types.ProjectPrefs{}, err
	}
	return projPrefs.Apply(prefs), projPrefs, nil
}

// shouldQueueUpdate reports whether replacing the declared value with the
// latest version would change the document.
func shouldQueueUpdate(value string, latest string) bool {
	if latest == "" {
		return false
	}
	return strings.TrimSuffix(strings.TrimSpace(value), ",") != latest
}
