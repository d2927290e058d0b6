package config

import "fmt"

// resolveAudits expands audit declarations into concrete definitions.
// Declarations sharing a path collapse into one entry whose options are
// shallow-merged, last writer wins on conflicting keys.
func resolveAudits(decls []*AuditConfig, reg *Registry) ([]*AuditDefn, error) {
	if decls == nil {
		return nil, nil
	}

	defns := make([]*AuditDefn, 0, len(decls))
	byPath := make(map[string]*AuditDefn, len(decls))

	for _, decl := range decls {
		impl := decl.Implementation
		path := decl.Path
		if impl == nil {
			var err error
			impl, err = reg.Audit(path)
			if err != nil {
				return nil, err
			}
		} else if path == "" {
			path = impl.Meta().ID
		}

		if existing, ok := byPath[path]; ok {
			existing.Options = mergeOptionMaps(existing.Options, decl.Options)
			continue
		}
		defn := &AuditDefn{
			Path:           path,
			Implementation: impl,
			Options:        decl.Options,
		}
		byPath[path] = defn
		defns = append(defns, defn)
	}

	for _, d := range defns {
		if d.Implementation == nil {
			return nil, fmt.Errorf("%w: audit %q has no implementation", ErrAuditShape, d.Path)
		}
	}
	return defns, nil
}
