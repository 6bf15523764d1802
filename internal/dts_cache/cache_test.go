package dts_cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWholeWordPatternMatchesBoundaries(t *testing.T) {
	c := New()
	p := c.WholeWordPattern("Thing")
	require.True(t, p.MatchString("const x: Thing = 1"))
	require.False(t, p.MatchString("const x: SomeThing = 1"))
	require.False(t, p.MatchString("const x: ThingAmajig = 1"))
}

func TestWholeWordPatternIsCached(t *testing.T) {
	c := New()
	first := c.WholeWordPattern("Foo")
	second := c.WholeWordPattern("Foo")
	require.Same(t, first, second)
}

func TestWholeWordPatternNilReceiverStillWorks(t *testing.T) {
	var c *Caches
	p := c.WholeWordPattern("Foo")
	require.True(t, p.MatchString("type Foo = string"))
}

func TestImportRenderCacheRoundTrip(t *testing.T) {
	c := New()
	key := ImportRenderKey(false, "", "", []string{"A>A>f"}, "pkg")
	_, ok := c.GetRender(key)
	require.False(t, ok)

	c.PutRender(key, "import { A } from 'pkg';")
	got, ok := c.GetRender(key)
	require.True(t, ok)
	require.Equal(t, "import { A } from 'pkg';", got)
}

func TestImportRenderCacheNilReceiverIsNoop(t *testing.T) {
	var c *Caches
	c.PutRender("key", "value")
	_, ok := c.GetRender("key")
	require.False(t, ok)
}
