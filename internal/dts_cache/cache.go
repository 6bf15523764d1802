// Package dts_cache provides the two bounded, per-worker caches the
// processor consults while resolving whole-word references and rebuilding
// import clauses: a compiled-pattern cache (capacity 500) and an
// import-render cache (capacity 200), per spec.md §4.3/§5 and
// SPEC_FULL.md §3. Each ProcessBatch worker owns one Caches value; nothing
// here is shared or locked across goroutines, which satisfies the
// concurrency model's "thread-local or bounded-and-locked" requirement by
// simply never sharing.
package dts_cache

import (
	"regexp"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	patternCacheCapacity       = 500
	importRenderCacheCapacity  = 200
)

// Caches bundles the two process-wide caches the reference source keeps as
// globals (spec.md §9 "Module-level caches") as explicit, owned values
// instead: one per worker, never shared, so no lock is needed to bound
// their size.
type Caches struct {
	patterns *lru.Cache[string, *regexp.Regexp]
	renders  *lru.Cache[string, string]
}

// New allocates a fresh cache pair. Panics only if the LRU capacities are
// misconfigured, which they never are here (both are positive constants).
func New() *Caches {
	patterns, err := lru.New[string, *regexp.Regexp](patternCacheCapacity)
	if err != nil {
		panic(err)
	}
	renders, err := lru.New[string, string](importRenderCacheCapacity)
	if err != nil {
		panic(err)
	}
	return &Caches{patterns: patterns, renders: renders}
}

// WholeWordPattern returns a compiled whole-word matcher for name, reusing
// a previously compiled pattern when the same identifier was looked up
// earlier in this worker's lifetime (common across a batch of files that
// share popular import names like "useState" or "Component"). A nil
// receiver compiles without caching, so callers may pass a nil *Caches.
func (c *Caches) WholeWordPattern(name string) *regexp.Regexp {
	if c != nil {
		if p, ok := c.patterns.Get(name); ok {
			return p
		}
	}
	p := regexp.MustCompile(`(?:^|[^\p{L}\p{N}_$])` + regexp.QuoteMeta(name) + `(?:$|[^\p{L}\p{N}_$])`)
	if c != nil {
		c.patterns.Add(name, p)
	}
	return p
}

// ImportRenderKey builds a deterministic cache key for a rewritten import
// clause from its shape, so identical clauses across many files in a batch
// (e.g. "import { useState, useEffect } from 'react'") hit the cache
// instead of re-rendering.
func ImportRenderKey(isTypeOnly bool, defaultName, namespaceName string, named []string, spec string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatBool(isTypeOnly))
	b.WriteByte('|')
	b.WriteString(defaultName)
	b.WriteByte('|')
	b.WriteString(namespaceName)
	b.WriteByte('|')
	b.WriteString(strings.Join(named, ","))
	b.WriteByte('|')
	b.WriteString(spec)
	return b.String()
}

// GetRender and PutRender memoize a fully rendered import statement by its
// ImportRenderKey. A nil receiver is a permanent cache miss, so callers may
// pass a nil *Caches when running outside a worker pool.
func (c *Caches) GetRender(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.renders.Get(key)
}

func (c *Caches) PutRender(key, rendered string) {
	if c == nil {
		return
	}
	c.renders.Add(key, rendered)
}
