package analyzer

import "go/types"

// Contract is a named interface found in the loaded packages.
type Contract struct {
	Name       string
	PkgPath    string
	PkgName    string
	Methods    []MethodSig
	TypeObj    *types.Interface
	SourceFile string
	Wide       bool // more methods than Options.MaxMethods
}

// Implementer is a named concrete type.
type Implementer struct {
	Name       string
	PkgPath    string
	PkgName    string
	IsStruct   bool
	TypeObj    *types.Named
	SourceFile string
}

// MethodSig captures a method name and its signature string.
type MethodSig struct {
	Name      string
	Signature string
}

// Relation records that a concrete type satisfies a contract.
type Relation struct {
	Type       *Implementer
	Contract   *Contract
	ViaPointer bool // only *T satisfies the contract
}

// Result holds the complete analysis output.
type Result struct {
	Contracts []Contract
	Types     []Implementer
	Relations []Relation
}

// Options controls analysis behavior.
type Options struct {
	Filter            string // package path prefix
	IncludeUnexported bool
	MaxMethods        int // contracts above this are Wide; 0 disables the check
}

// DefaultMaxMethods is the method count above which a contract is reported as wide.
const DefaultMaxMethods = 3
