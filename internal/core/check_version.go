package core

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"github.com/innocenzi/dependi/internal/types"
)

// CheckVersion evaluates a declared constraint against the known versions
// of a dependency. It returns whether any version satisfies the constraint
// and the highest satisfying version ("" when none). Versions that fail to
// parse under the ecosystem's version grammar are skipped rather than
// treated as errors; an unparsable constraint is an error.
func CheckVersion(eco types.Ecosystem, constraint string, versions []string) (bool, string, error) {
	switch eco {
	case types.EcosystemPython:
		return checkPep440(constraint, versions)
	default:
		return checkSemver(constraint, versions)
	}
}

// checkSemver covers the Rust, Go, and JavaScript ecosystems, which all
// use node-style semver range expressions ("^1.0.0", "~1.4", ">=1 <2").
func checkSemver(constraint string, versions []string) (bool, string, error) {
	parsed, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version constraint: %s", constraint)).
			WithCause(err)
	}
	var best *semver.Version
	var bestRaw string
	for _, raw := range versions {
		candidate, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if !parsed.Check(candidate) {
			continue
		}
		if best == nil || candidate.GreaterThan(best) {
			best = candidate
			bestRaw = raw
		}
	}
	return best != nil, bestRaw, nil
}

// checkPep440 covers Python manifests, where constraints are PEP 440
// specifier sets (">=2.0,<3", "~=1.4.2").
func checkPep440(constraint string, versions []string) (bool, string, error) {
	spec, err := pep440.NewSpecifiers(constraint)
	if err != nil {
		return false, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version specifier: %s", constraint)).
			WithCause(err)
	}
	found := false
	var best pep440.Version
	var bestRaw string
	for _, raw := range versions {
		candidate, err := pep440.Parse(raw)
		if err != nil {
			continue
		}
		if !spec.Check(candidate) {
			continue
		}
		if !found || candidate.Compare(best) > 0 {
			best = candidate
			bestRaw = raw
			found = true
		}
	}
	return found, bestRaw, nil
}
