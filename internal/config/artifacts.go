package config

import (
	"fmt"
	"sort"

	"beacon/internal/gather"
)

// resolveArtifacts expands artifact declarations into concrete definitions
// in dependency-safe order. The order invariant is enforced by
// construction: the symbol table is populated incrementally, so an artifact
// can only depend on symbols exported by artifacts resolved before it.
func resolveArtifacts(decls []*ArtifactConfig, reg *Registry) ([]*ArtifactDefn, error) {
	if decls == nil {
		return nil, nil
	}

	sorted := append([]*ArtifactConfig{}, decls...)
	// Destructive, order-sensitive gatherers sort after everything else;
	// ties keep declaration order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return artifactResolutionPriority[sorted[i].ID] < artifactResolutionPriority[sorted[j].ID]
	})

	symbolTable := make(map[gather.Symbol]*ArtifactDefn)
	defns := make([]*ArtifactDefn, 0, len(sorted))
	seen := make(map[string]bool, len(sorted))

	for _, decl := range sorted {
		gd, err := resolveGatherer(reg, decl)
		if err != nil {
			return nil, err
		}
		if err := assertValidGatherer(decl.ID, gd); err != nil {
			return nil, err
		}

		meta := gd.Instance.Meta()
		defn := &ArtifactDefn{ID: decl.ID, Gatherer: gd}

		if len(meta.Dependencies) > 0 {
			defn.Dependencies = make(map[string]Dependency, len(meta.Dependencies))
			for depName, sym := range meta.Dependencies {
				producer, ok := symbolTable[sym]
				if !ok {
					return nil, fmt.Errorf("%w: artifact %q dependency %q (symbol %s) has no earlier-declared producer",
						ErrDependencyOrder, decl.ID, depName, gather.SymbolName(sym))
				}
				if err := assertCompatiblePhases(decl.ID, meta, producer); err != nil {
					return nil, err
				}
				defn.Dependencies[depName] = Dependency{ID: producer.ID}
			}
		}

		if meta.Symbol != nil {
			symbolTable[meta.Symbol] = defn
		}

		if seen[defn.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateArtifact, defn.ID)
		}
		seen[defn.ID] = true
		defns = append(defns, defn)
	}
	return defns, nil
}

// minModeOrdinal returns the smallest lifecycle ordinal among modes.
func minModeOrdinal(modes []gather.Mode) int {
	min := len(gatherModeOrdinals)
	for _, m := range modes {
		if ord, ok := gatherModeOrdinals[string(m)]; ok && ord < min {
			min = ord
		}
	}
	return min
}

func isOnlyMode(modes []gather.Mode, mode gather.Mode) bool {
	return len(modes) == 1 && modes[0] == mode
}

// assertCompatiblePhases enforces the dependency direction rule: a
// dependent's minimum lifecycle ordinal must not be below its dependency's,
// and a timespan-only or snapshot-only dependent may only depend on a
// producer confined to the same single lifecycle. Navigation dependents may
// depend on anything, since navigation subsumes both other lifecycles.
func assertCompatiblePhases(dependentID string, dependent gather.Meta, producer *ArtifactDefn) error {
	producerMeta := producer.Gatherer.Instance.Meta()

	if isOnlyMode(dependent.SupportedModes, gather.ModeTimespan) &&
		!isOnlyMode(producerMeta.SupportedModes, gather.ModeTimespan) {
		return fmt.Errorf("%w: timespan artifact %q cannot depend on %q",
			ErrDependencyDirection, dependentID, producer.ID)
	}
	if isOnlyMode(dependent.SupportedModes, gather.ModeSnapshot) &&
		!isOnlyMode(producerMeta.SupportedModes, gather.ModeSnapshot) {
		return fmt.Errorf("%w: snapshot artifact %q cannot depend on %q",
			ErrDependencyDirection, dependentID, producer.ID)
	}
	if minModeOrdinal(dependent.SupportedModes) < minModeOrdinal(producerMeta.SupportedModes) {
		return fmt.Errorf("%w: artifact %q runs in an earlier phase than its dependency %q",
			ErrDependencyDirection, dependentID, producer.ID)
	}
	return nil
}
