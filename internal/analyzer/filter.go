package analyzer

import (
	"sort"
	"strings"
	"unicode"
)

// Filter keeps relations that match opts and prunes contracts and types that
// no longer take part in any relation.
func Filter(result *Result, opts Options) *Result {
	filtered := &Result{}

	contractSet := make(map[string]bool)
	typeSet := make(map[string]bool)

	for _, rel := range result.Relations {
		c := rel.Contract
		typ := rel.Type

		if !opts.IncludeUnexported {
			if isUnexported(c.Name) || isUnexported(typ.Name) {
				continue
			}
		}

		if opts.Filter != "" {
			if !strings.HasPrefix(c.PkgPath, opts.Filter) && !strings.HasPrefix(typ.PkgPath, opts.Filter) {
				continue
			}
		}

		filtered.Relations = append(filtered.Relations, rel)
		contractSet[key(c.PkgPath, c.Name)] = true
		typeSet[key(typ.PkgPath, typ.Name)] = true
	}

	for i := range result.Contracts {
		c := &result.Contracts[i]
		if contractSet[key(c.PkgPath, c.Name)] {
			filtered.Contracts = append(filtered.Contracts, *c)
		}
	}

	for i := range result.Types {
		typ := &result.Types[i]
		if typeSet[key(typ.PkgPath, typ.Name)] {
			filtered.Types = append(filtered.Types, *typ)
		}
	}

	return filtered
}

// CapabilitiesOf returns the sorted names of the contracts typeName satisfies.
func CapabilitiesOf(result *Result, typeName string) []string {
	var names []string
	for _, rel := range result.Relations {
		if rel.Type.Name == typeName {
			names = append(names, rel.Contract.Name)
		}
	}
	sort.Strings(names)
	return names
}

// WideContracts returns the contracts flagged as too wide, sorted by name.
func WideContracts(result *Result) []Contract {
	var wide []Contract
	for _, c := range result.Contracts {
		if c.Wide {
			wide = append(wide, c)
		}
	}
	sort.Slice(wide, func(i, j int) bool {
		return key(wide[i].PkgPath, wide[i].Name) < key(wide[j].PkgPath, wide[j].Name)
	})
	return wide
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	return unicode.IsLower(rune(name[0]))
}

func key(pkgPath, name string) string {
	return pkgPath + "." + name
}
