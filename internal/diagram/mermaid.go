package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olehluchkiv/penguin/internal/analyzer"
)

// Options controls Mermaid diagram generation.
type Options struct {
	MaxMethodsPerBox int  // 0 means unlimited
	IncludeInit      bool // include %%{init:}%% directive (for standalone .mmd files)
}

// DefaultOptions returns sensible defaults for diagram generation.
func DefaultOptions() Options {
	return Options{MaxMethodsPerBox: 5}
}

// GenerateMermaid produces a Mermaid classDiagram from an analysis result.
// Output order is deterministic.
func GenerateMermaid(result *analyzer.Result, opts Options) string {
	var b strings.Builder

	contracts := make([]analyzer.Contract, len(result.Contracts))
	copy(contracts, result.Contracts)
	sort.Slice(contracts, func(i, j int) bool {
		return NodeID(contracts[i].PkgName, contracts[i].Name) < NodeID(contracts[j].PkgName, contracts[j].Name)
	})

	typs := make([]analyzer.Implementer, len(result.Types))
	copy(typs, result.Types)
	sort.Slice(typs, func(i, j int) bool {
		return NodeID(typs[i].PkgName, typs[i].Name) < NodeID(typs[j].PkgName, typs[j].Name)
	})

	rels := make([]analyzer.Relation, len(result.Relations))
	copy(rels, result.Relations)
	sort.Slice(rels, func(i, j int) bool {
		ti := NodeID(rels[i].Type.PkgName, rels[i].Type.Name)
		tj := NodeID(rels[j].Type.PkgName, rels[j].Type.Name)
		if ti != tj {
			return ti < tj
		}
		return NodeID(rels[i].Contract.PkgName, rels[i].Contract.Name) < NodeID(rels[j].Contract.PkgName, rels[j].Contract.Name)
	})

	if opts.IncludeInit {
		b.WriteString("%%{init: {'theme': 'base', 'themeVariables': {'primaryColor': '#ffffff', 'primaryBorderColor': '#cccccc', 'primaryTextColor': '#000000', 'lineColor': '#555555'}}%%\n")
	}
	b.WriteString("classDiagram")
	if len(contracts) == 0 && len(typs) == 0 {
		return b.String()
	}

	b.WriteString("\n    direction LR\n")
	b.WriteString("    classDef contractStyle fill:#2374ab,stroke:#1a5a8a,color:#fff,stroke-width:2px,font-weight:bold\n")
	b.WriteString("    classDef wideStyle fill:#c0392b,stroke:#922b21,color:#fff,stroke-width:2px,font-weight:bold\n")
	b.WriteString("    classDef implStyle fill:#4a9c6d,stroke:#357a50,color:#fff,stroke-width:2px\n")

	for _, c := range contracts {
		b.WriteString("\n")
		writeContractBlock(&b, c, opts)
	}
	for _, typ := range typs {
		b.WriteString("\n")
		writeTypeBlock(&b, typ)
	}

	if len(rels) > 0 {
		b.WriteString("\n")
	}
	for _, rel := range rels {
		b.WriteString("\n")
		writeRelation(&b, rel)
	}

	b.WriteString("\n")
	for _, c := range contracts {
		style := "contractStyle"
		if c.Wide {
			style = "wideStyle"
		}
		fmt.Fprintf(&b, "\n    cssClass \"%s\" %s", NodeID(c.PkgName, c.Name), style)
	}
	for _, typ := range typs {
		fmt.Fprintf(&b, "\n    cssClass \"%s\" implStyle", NodeID(typ.PkgName, typ.Name))
	}

	return b.String()
}

// SanitizeSignature removes characters that Mermaid treats as markup in
// class diagram labels ({}, <, ~).
func SanitizeSignature(sig string) string {
	sig = strings.ReplaceAll(sig, "<-chan", "chan")
	// "interface" alone is reserved by the <<interface>> annotation parser.
	sig = strings.ReplaceAll(sig, "interface{}", "any")
	sig = strings.ReplaceAll(sig, "{}", "")
	return sig
}

// NodeID builds a sanitized node ID from pkgName and type/interface name.
func NodeID(pkgName, name string) string {
	return strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(pkgName + "_" + name)
}

func writeContractBlock(b *strings.Builder, c analyzer.Contract, opts Options) {
	fmt.Fprintf(b, "    class %s {\n", NodeID(c.PkgName, c.Name))
	b.WriteString("        <<interface>>\n")
	if c.SourceFile != "" {
		b.WriteString("        %% file: " + c.SourceFile + "\n")
	}

	limit := len(c.Methods)
	if opts.MaxMethodsPerBox > 0 && limit > opts.MaxMethodsPerBox {
		limit = opts.MaxMethodsPerBox
	}
	for _, m := range c.Methods[:limit] {
		fmt.Fprintf(b, "        +%s\n", SanitizeSignature(m.Signature))
	}
	if limit < len(c.Methods) {
		b.WriteString("        ...\n")
	}
	b.WriteString("    }")
}

// Methods are omitted on type blocks; the contract blocks already list them.
func writeTypeBlock(b *strings.Builder, typ analyzer.Implementer) {
	fmt.Fprintf(b, "    class %s {\n", NodeID(typ.PkgName, typ.Name))
	if typ.SourceFile != "" {
		b.WriteString("        %% file: " + typ.SourceFile + "\n")
	}
	b.WriteString("    }")
}

// Pointer-only implementations are drawn dashed.
func writeRelation(b *strings.Builder, rel analyzer.Relation) {
	arrow := "--|>"
	if rel.ViaPointer {
		arrow = "..|>"
	}
	fmt.Fprintf(b, "    %s %s %s",
		NodeID(rel.Type.PkgName, rel.Type.Name), arrow, NodeID(rel.Contract.PkgName, rel.Contract.Name))
}
