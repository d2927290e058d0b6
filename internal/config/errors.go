package config

import "errors"

// Every fatal resolution failure wraps one of these sentinels so callers
// and tests can classify failures with errors.Is instead of string matching.
var (
	// ErrFragmentShape marks a type mismatch during fragment merging, such
	// as a sequence extension over a map base.
	ErrFragmentShape = errors.New("config fragment shape mismatch")

	// ErrInvalidExtends marks an extends value other than the single
	// recognized sentinel.
	ErrInvalidExtends = errors.New("invalid extends value")

	// ErrComponentNotFound marks a gatherer, audit, or plugin reference that
	// no consulted registry or search location could satisfy.
	ErrComponentNotFound = errors.New("component not found")

	// ErrPluginName marks a plugin whose name violates the required naming
	// convention or collides with an existing category id.
	ErrPluginName = errors.New("invalid plugin name")

	// ErrGathererShape marks a gatherer missing its meta descriptor, its
	// supported-mode set, or a real GetArtifact implementation.
	ErrGathererShape = errors.New("invalid gatherer definition")

	// ErrAuditShape marks an audit whose meta violates the audit contract.
	ErrAuditShape = errors.New("invalid audit definition")

	// ErrDependencyOrder marks an artifact that depends on a symbol no
	// earlier-declared artifact exports.
	ErrDependencyOrder = errors.New("artifact dependency declared before its producer")

	// ErrDependencyDirection marks a dependency edge between artifacts with
	// incompatible gather-mode phases.
	ErrDependencyDirection = errors.New("invalid artifact dependency direction")

	// ErrDuplicateArtifact marks two artifact definitions sharing an id.
	ErrDuplicateArtifact = errors.New("duplicate artifact id")

	// ErrCategoryReference marks a category auditRef pointing at an unknown
	// audit or group, or violating a category-specific rule.
	ErrCategoryReference = errors.New("invalid category reference")

	// ErrSettings marks a settings conflict such as overlapping onlyAudits
	// and skipAudits or a formFactor / screen-emulation mismatch.
	ErrSettings = errors.New("invalid settings")
)
