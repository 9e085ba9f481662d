package analyzer

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

// Analyze loads the Go packages under dir and records which concrete types
// satisfy which interfaces.
func Analyze(ctx context.Context, dir string, opts Options, logger *slog.Logger) (*Result, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	logger.Info("packages loaded", "packages_count", len(pkgs))

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
	}

	var contracts []Contract
	var impls []Implementer

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || tn.IsAlias() {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			src := resolveSourceFile(pkg.Fset, tn.Pos(), dir)

			if iface, ok := named.Underlying().(*types.Interface); ok {
				c := Contract{
					Name:       tn.Name(),
					PkgPath:    pkg.PkgPath,
					PkgName:    pkg.Name,
					Methods:    extractMethods(iface),
					TypeObj:    iface,
					SourceFile: src,
					Wide:       opts.MaxMethods > 0 && iface.NumMethods() > opts.MaxMethods,
				}
				contracts = append(contracts, c)
				logger.Debug("found contract", "name", c.Name, "package", c.PkgPath, "methods", iface.NumMethods(), "wide", c.Wide)
				continue
			}

			// types.Implements is unspecified for uninstantiated generic types.
			if named.TypeParams().Len() > 0 {
				continue
			}
			impls = append(impls, Implementer{
				Name:       tn.Name(),
				PkgPath:    pkg.PkgPath,
				PkgName:    pkg.Name,
				IsStruct:   isStruct(named),
				TypeObj:    named,
				SourceFile: src,
			})
			logger.Debug("found type", "name", tn.Name(), "package", pkg.PkgPath)
		}
	}

	logger.Info("types collected", "contracts", len(contracts), "types", len(impls))

	var msets typeutil.MethodSetCache
	var relations []Relation

	for i := range impls {
		t := &impls[i]
		for j := range contracts {
			c := &contracts[j]
			if c.TypeObj.NumMethods() == 0 {
				continue
			}
			if types.Implements(t.TypeObj, c.TypeObj) || matchesMethodSet(msets.MethodSet(t.TypeObj), c.TypeObj) {
				relations = append(relations, Relation{Type: t, Contract: c})
				logger.Debug("match found", "type", t.Name, "contract", c.Name, "via_pointer", false)
			} else if ptr := types.NewPointer(t.TypeObj); types.Implements(ptr, c.TypeObj) || matchesMethodSet(msets.MethodSet(ptr), c.TypeObj) {
				relations = append(relations, Relation{Type: t, Contract: c, ViaPointer: true})
				logger.Debug("match found", "type", t.Name, "contract", c.Name, "via_pointer", true)
			}
		}
	}

	logger.Info("analysis complete", "relations", len(relations))

	return &Result{
		Contracts: contracts,
		Types:     impls,
		Relations: relations,
	}, nil
}

func extractMethods(iface *types.Interface) []MethodSig {
	methods := make([]MethodSig, iface.NumMethods())
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		methods[i] = MethodSig{
			Name:      m.Name(),
			Signature: formatSignature(m),
		}
	}
	return methods
}

func formatSignature(fn *types.Func) string {
	sig := fn.Type().(*types.Signature)
	var b strings.Builder
	b.WriteString(fn.Name())
	b.WriteString("(")
	writeTuple(&b, sig.Params())
	b.WriteString(")")
	switch results := sig.Results(); results.Len() {
	case 0:
	case 1:
		b.WriteString(" ")
		b.WriteString(shortType(results.At(0).Type()))
	default:
		b.WriteString(" (")
		writeTuple(&b, results)
		b.WriteString(")")
	}
	return b.String()
}

func writeTuple(b *strings.Builder, tuple *types.Tuple) {
	for i := 0; i < tuple.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(shortType(tuple.At(i).Type()))
	}
}

func shortType(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

func isStruct(named *types.Named) bool {
	_, ok := named.Underlying().(*types.Struct)
	return ok
}

// matchesMethodSet reports whether mset has every method of iface, by name.
// Signatures are not compared.
func matchesMethodSet(mset *types.MethodSet, iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		if mset.Lookup(m.Pkg(), m.Name()) == nil {
			return false
		}
	}
	return true
}

// resolveSourceFile resolves a token position to a path relative to root.
func resolveSourceFile(fset *token.FileSet, pos token.Pos, root string) string {
	if fset == nil || !pos.IsValid() {
		return ""
	}
	position := fset.Position(pos)
	if !position.IsValid() || position.Filename == "" {
		return ""
	}
	rel, err := filepath.Rel(root, position.Filename)
	if err != nil {
		return position.Filename
	}
	return rel
}
