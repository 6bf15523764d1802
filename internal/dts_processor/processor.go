// Package dts_processor glues a scanner's output into the final
// deterministic declaration string: it resolves which held-back
// non-exported interfaces (and, transitively, any other non-exported type
// harvested along the way) a retained declaration actually needs, drops
// imports nothing references, sorts the survivors, and concatenates
// everything in the fixed bucket order spec.md §4.4/§6 call for.
package dts_processor

import (
	"sort"
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_cache"
	"github.com/stacksjs/dtsx/internal/dts_directives"
	"github.com/stacksjs/dtsx/internal/dts_scanner"
)

// Process runs the full pipeline described in spec.md §4.4 over one file's
// scan result and returns the final declaration text. directives is the
// prologue's triple-slash lines (internal/dts_directives.Extract), already
// separated from the scan because it reads the raw source rather than the
// declaration vector. caches may be nil (a fresh, uncached run); pass a
// per-worker *dts_cache.Caches from ProcessBatch to amortize whole-word
// pattern compilation and import re-rendering across a batch.
func Process(scan dts_ast.ScanResult, directives []string, ctx dts_ast.ProcessingContext, caches *dts_cache.Caches) string {
	decls := pullInReferencedTypes(scan.Declarations, scan.NonExported, caches)

	imports, rest := splitImports(decls)
	exportedNames := collectExportedNames(rest)

	combined := combinedText(rest)
	keptImports := rewriteImports(imports, combined, exportedNames, caches)
	sortImports(keptImports, ctx.ImportPriority)

	typeOnlyExports, valueExports, defaultExport := splitExports(rest)

	var segments []string
	if d := dts_directives.Render(directives); d != "" {
		segments = append(segments, d)
	}
	if len(keptImports) > 0 {
		var b strings.Builder
		for i, d := range keptImports {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(d.Text)
		}
		segments = append(segments, b.String())
	}
	if s := joinTexts(typeOnlyExports); s != "" {
		segments = append(segments, s)
	}
	for _, kind := range bucketOrder {
		if s := joinTexts(bucketOf(rest, kind)); s != "" {
			segments = append(segments, s)
		}
	}
	if s := joinTexts(valueExports); s != "" {
		segments = append(segments, s)
	}
	if defaultExport != nil {
		segments = append(segments, defaultExport.Text)
	}

	return strings.Join(segments, "\n")
}

// bucketOrder is the kind-bucket emission order from spec.md §4.4 step 10:
// functions, variables, interfaces, types, classes, enums, modules.
// "namespace" aliases to KindModule at scan time, so there's no separate
// bucket for it.
var bucketOrder = []dts_ast.Kind{
	dts_ast.KindFunction,
	dts_ast.KindVariable,
	dts_ast.KindInterface,
	dts_ast.KindType,
	dts_ast.KindClass,
	dts_ast.KindEnum,
	dts_ast.KindModule,
}

// pullInReferencedTypes runs the unified non-exported-type pull-in pass.
// spec.md §4.4 describes two separate passes (step 5, interfaces only,
// against exported function/class/type-alias text; step 9, all four
// harvested kinds, iteratively, against every retained declaration's text).
// Both resolve the same question - "is this held-back declaration
// referenced by something that survives?" - against a combined text that
// only grows as more is pulled in, so they are unified here into one
// iterative fixed-point pass run once, before used-imports detection.
// Non-exported types/classes/enums are already present in scan.Declarations
// (spec.md §4.2); only interfaces are actually held back and need pulling
// in, but the pass is written generically over scan.NonExported so any kind
// stored there is handled uniformly.
func pullInReferencedTypes(decls []dts_ast.Declaration, nonExported map[string]dts_ast.Declaration, caches *dts_cache.Caches) []dts_ast.Declaration {
	if len(nonExported) == 0 {
		return decls
	}

	present := make(map[string]bool, len(decls))
	for _, d := range decls {
		present[presentKey(d.Kind, d.Name)] = true
	}

	for {
		text := combinedText(decls)
		inserted := false
		for name, d := range nonExported {
			key := presentKey(d.Kind, d.Name)
			if present[key] {
				continue
			}
			if name == "" || !wholeWordContains(text, name, caches) {
				continue
			}
			decls = insertStable(decls, d)
			present[key] = true
			inserted = true
		}
		if !inserted {
			break
		}
	}
	return decls
}

func presentKey(k dts_ast.Kind, name string) string {
	return k.String() + "\x00" + name
}

// insertStable inserts d into decls ordered by Start, keeping existing
// relative order for equal offsets (spec.md §4.4 step 9: "insert ... at its
// original source position").
func insertStable(decls []dts_ast.Declaration, d dts_ast.Declaration) []dts_ast.Declaration {
	i := sort.Search(len(decls), func(i int) bool { return decls[i].Start > d.Start })
	out := make([]dts_ast.Declaration, 0, len(decls)+1)
	out = append(out, decls[:i]...)
	out = append(out, d)
	out = append(out, decls[i:]...)
	return out
}

func splitImports(decls []dts_ast.Declaration) (imports, rest []dts_ast.Declaration) {
	for _, d := range decls {
		if d.Kind == dts_ast.KindImport {
			imports = append(imports, d)
		} else {
			rest = append(rest, d)
		}
	}
	return imports, rest
}

// collectExportedNames gathers every name an "export { a, b }" clause lists
// (its OriginalName, the identifier that must already be in scope), used by
// used-imports detection to retain an import whose only use is being
// re-exported verbatim (spec.md §4.4 step 6).
func collectExportedNames(decls []dts_ast.Declaration) map[string]bool {
	names := make(map[string]bool)
	for _, d := range decls {
		if d.Kind != dts_ast.KindExport {
			continue
		}
		for _, item := range d.Imports {
			if item.OriginalName != "" {
				names[item.OriginalName] = true
			} else {
				names[item.LocalName] = true
			}
		}
	}
	return names
}

func combinedText(decls []dts_ast.Declaration) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Text)
	}
	return b.String()
}

// wholeWordContains runs one whole-word regexp match per query, not a
// pairwise scan. The compiled pattern is memoized per worker via caches.
func wholeWordContains(text, name string, caches *dts_cache.Caches) bool {
	if name == "" {
		return false
	}
	return caches.WholeWordPattern(name).MatchString(text)
}

// rewriteImports implements spec.md §4.4 step 7: side-effect imports are
// kept unconditionally; otherwise only the default/namespace/named items
// actually referenced (or re-exported) survive, and the import is dropped
// entirely once nothing does.
func rewriteImports(imports []dts_ast.Declaration, combined string, exportedNames map[string]bool, caches *dts_cache.Caches) []dts_ast.Declaration {
	var kept []dts_ast.Declaration
	for _, d := range imports {
		if d.IsSideEffect {
			kept = append(kept, d)
			continue
		}

		var usedItems []dts_ast.ImportItem
		for _, item := range d.Imports {
			if wholeWordContains(combined, item.LocalName, caches) || exportedNames[item.LocalName] {
				usedItems = append(usedItems, item)
			}
		}
		if len(usedItems) == 0 {
			continue
		}

		d.Imports = usedItems
		d.Text = renderImportCached(d, caches)
		kept = append(kept, d)
	}
	return kept
}

func renderImportCached(d dts_ast.Declaration, caches *dts_cache.Caches) string {
	var defaultName, nsName string
	var named []string
	for _, item := range d.Imports {
		switch {
		case item.IsDefault:
			defaultName = item.LocalName
		case item.IsNamespace:
			nsName = item.LocalName
		default:
			named = append(named, item.OriginalName+">"+item.LocalName+">"+boolMark(item.IsTypeOnly))
		}
	}
	key := dts_cache.ImportRenderKey(d.IsTypeOnly, defaultName, nsName, named, d.Source)
	if rendered, ok := caches.GetRender(key); ok {
		return rendered
	}
	rendered := dts_scanner.RenderImportText(d.IsTypeOnly, d.Imports, d.Source)
	caches.PutRender(key, rendered)
	return rendered
}

func boolMark(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

// sortImports implements spec.md §4.4 step 8: stable sort by (priority rank
// of the first matching module-prefix, then lexicographic module
// specifier).
func sortImports(imports []dts_ast.Declaration, priority []string) {
	rank := func(spec string) int {
		for i, p := range priority {
			if strings.HasPrefix(spec, p) {
				return i
			}
		}
		return len(priority)
	}
	sort.SliceStable(imports, func(i, j int) bool {
		ri, rj := rank(imports[i].Source), rank(imports[j].Source)
		if ri != rj {
			return ri < rj
		}
		return imports[i].Source < imports[j].Source
	})
}

// splitExports implements spec.md §4.4 step 3's grouping of the export
// bucket: the (at most one) default export always emitted last, exact-text
// duplicates dropped, and the remainder split into type-only vs. value
// exports.
func splitExports(decls []dts_ast.Declaration) (typeOnly, value []dts_ast.Declaration, def *dts_ast.Declaration) {
	seen := make(map[string]bool)
	for _, d := range decls {
		if d.Kind != dts_ast.KindExport {
			continue
		}
		if d.IsDefault {
			dd := d
			def = &dd
			continue
		}
		if seen[d.Text] {
			continue
		}
		seen[d.Text] = true
		if d.IsTypeOnly {
			typeOnly = append(typeOnly, d)
		} else {
			value = append(value, d)
		}
	}
	return typeOnly, value, def
}

func bucketOf(decls []dts_ast.Declaration, kind dts_ast.Kind) []dts_ast.Declaration {
	var out []dts_ast.Declaration
	for _, d := range decls {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

func joinTexts(decls []dts_ast.Declaration) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Text)
	}
	return b.String()
}
