// Package dts_ast holds the data model produced by the scanner and consumed
// by the processor: the Declaration record, import bookkeeping, and the
// per-invocation processing context. Nothing in this package parses or
// renders source text; it only describes the shape of what those stages
// pass between themselves.
package dts_ast

// Kind identifies which top-level (or class-body, or namespace-body)
// construct a Declaration was scanned from.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindImport
	KindFunction
	KindVariable
	KindInterface
	KindType
	KindClass
	KindEnum
	KindModule
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindImport:
		return "import"
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	case KindInterface:
		return "interface"
	case KindType:
		return "type"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindModule:
		return "module"
	case KindExport:
		return "export"
	default:
		return "unknown"
	}
}

// Declaration is the scanner's unit of output: one shaped DTS statement (or,
// for imports/exports, one shaped directive) plus the metadata later passes
// need to order, filter, and cross-reference it. Declarations are built once
// by the scanner and never mutated afterwards, except that the processor may
// insert harvested non-exported types into the vector (section 4.4 step 9).
// Overload implementation signatures are already dropped by the scanner
// (section 4.2).
type Declaration struct {
	Kind Kind

	// Name is the canonical identifier: "" for anonymous re-exports, quoted
	// for ambient modules, dotted for nested namespaces, "default" for
	// default exports.
	Name string

	// Text is the already-shaped declaration string in DTS form. The
	// processor never rewrites it; it only includes, omits, or reorders it.
	Text string

	IsExported   bool
	IsDefault    bool
	IsTypeOnly   bool
	IsSideEffect bool
	IsAsync      bool
	IsGenerator  bool

	// Source is the module specifier for imports and ambient modules.
	Source string

	// Kind-specific metadata used by later passes (ordering, reference
	// checks, inference). Not every field is populated for every kind.
	ReturnType     string
	Generics       string
	Extends        string
	Implements     string
	Modifiers      []string
	TypeAnnotation string
	Value          string

	// LeadingComments holds the verbatim leading comment blocks attached to
	// this declaration, in source order. Empty when keep_comments is false.
	LeadingComments []string

	// Start and End are byte offsets into the original source. They are
	// used only to stably order declarations pulled in after the fact
	// (section 4.4 step 9), never to re-slice the source.
	Start int
	End   int

	// HasBody records whether the scanned source had a body-bearing form
	// (used to find and drop overload implementation signatures, section 4.2).
	HasBody bool

	// Imports is populated only for KindImport declarations.
	Imports []ImportItem
}

// ImportItem is one named binding inside an import declaration.
type ImportItem struct {
	// LocalName is what appears in code after any "X as Y" renaming.
	LocalName string
	// OriginalName is what the exporting module exposes.
	OriginalName string
	IsTypeOnly   bool
	IsDefault    bool
	// IsNamespace marks a "* as N" binding; N is stored in LocalName.
	IsNamespace bool
}

// ProcessingContext carries the configuration knobs recognized by the
// scanner and processor (section 6 "Configuration").
type ProcessingContext struct {
	SourceCode           string
	KeepComments         bool
	IsolatedDeclarations bool
	// ImportPriority is an ordered sequence of module prefixes driving
	// import sort order; unmatched specifiers sort after all of them.
	ImportPriority []string
}

// ScanResult is everything the scanner hands to the processor: the ordered
// declaration vector plus the side table of non-exported types seen along
// the way (section 4.2 "Non-exported type harvesting").
type ScanResult struct {
	Declarations []Declaration
	// NonExported holds interface/type/class/enum declarations that were
	// not exported, keyed by name, for later reference-driven pull-in.
	NonExported map[string]Declaration
	// Directives holds triple-slash directive lines found in the prologue.
	Directives []string
}
