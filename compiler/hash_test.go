package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/schemamap/internal/testutil"
)

func TestStructuralHash(t *testing.T) {
	t.Run("key order does not matter", func(t *testing.T) {
		a := testutil.LoadJSON(t, `{"type":"object","properties":{"x":{"type":"string"},"y":{"type":"integer"}}}`)
		b := testutil.LoadJSON(t, `{"properties":{"y":{"type":"integer"},"x":{"type":"string"}},"type":"object"}`)
		assert.Equal(t, StructuralHash(a, ""), StructuralHash(b, ""))
	})

	t.Run("array order does not matter", func(t *testing.T) {
		a := testutil.LoadJSON(t, `{"type":"string","enum":["a","b","c"]}`)
		b := testutil.LoadJSON(t, `{"type":"string","enum":["c","a","b"]}`)
		assert.Equal(t, StructuralHash(a, ""), StructuralHash(b, ""))
	})

	t.Run("metadata is ignored", func(t *testing.T) {
		a := testutil.LoadJSON(t, `{"type":"object","title":"A","description":"first","properties":{"x":{"type":"string"}}}`)
		b := testutil.LoadJSON(t, `{"type":"object","properties":{"x":{"type":"string","description":"other"}}}`)
		assert.Equal(t, StructuralHash(a, ""), StructuralHash(b, ""))
	})

	t.Run("property named like a metadata keyword counts", func(t *testing.T) {
		a := testutil.LoadJSON(t, `{"type":"object","properties":{"title":{"type":"string"}}}`)
		b := testutil.LoadJSON(t, `{"type":"object","properties":{}}`)
		assert.NotEqual(t, StructuralHash(a, ""), StructuralHash(b, ""))
	})

	t.Run("different structure differs", func(t *testing.T) {
		a := testutil.LoadJSON(t, `{"type":"object","properties":{"x":{"type":"string"}}}`)
		b := testutil.LoadJSON(t, `{"type":"object","properties":{"x":{"type":"integer"}}}`)
		assert.NotEqual(t, StructuralHash(a, ""), StructuralHash(b, ""))
	})

	t.Run("references resolve against the base id", func(t *testing.T) {
		a := testutil.LoadJSON(t, `{"type":"object","properties":{"v":{"$ref":"#/$defs/V"}}}`)
		assert.NotEqual(t, StructuralHash(a, "http://x/a"), StructuralHash(a, "http://x/b"))
		assert.Equal(t, StructuralHash(a, "http://x/a"), StructuralHash(a, "http://x/a"))

		abs := testutil.LoadJSON(t, `{"type":"object","properties":{"v":{"$ref":"http://x/a#/$defs/V"}}}`)
		assert.Equal(t, StructuralHash(a, "http://x/a"), StructuralHash(abs, "http://x/b"),
			"relative and absolute spellings of one target hash alike")
	})

	t.Run("nested id rebases references", func(t *testing.T) {
		a := testutil.LoadJSON(t, `{"$id":"http://x/b","type":"object","properties":{"v":{"$ref":"#/$defs/V"}}}`)
		b := testutil.LoadJSON(t, `{"type":"object","properties":{"v":{"$ref":"#/$defs/V"}}}`)
		assert.Equal(t, StructuralHash(a, "http://x/a"), StructuralHash(b, "http://x/b"))
	})

	t.Run("hex sha256", func(t *testing.T) {
		assert.Len(t, StructuralHash(true, ""), 64)
	})
}

func TestCanonical(t *testing.T) {
	doc := testutil.LoadJSON(t, `{"type":"object","properties":{"b":{"type":"integer"},"a":{"type":"string","default":"x"}}}`)
	assert.Equal(t,
		`{"properties":{"a":{"default":"x","type":"string"},"b":{"type":"integer"}},"type":"object"}`,
		canonical(doc, ""))
}

func TestHashIndex(t *testing.T) {
	h := NewHashIndex()
	h.Add("h1", "#/properties/a")
	h.Add("h2", "#/properties/b")
	h.Add("h1", "#/properties/c")

	candidates := h.Candidates()
	assert.Len(t, candidates, 1)
	assert.Equal(t, []string{"#/properties/a", "#/properties/c"}, candidates["h1"])

	canonical, ok := h.Canonical("#/properties/c")
	assert.True(t, ok)
	assert.Equal(t, "#/properties/a", canonical)

	_, ok = h.Canonical("#/properties/b")
	assert.False(t, ok, "singleton groups are not dedup candidates")

	_, ok = h.Canonical("#/nowhere")
	assert.False(t, ok)

	hash, ok := h.Hash("#/properties/b")
	assert.True(t, ok)
	assert.Equal(t, "h2", hash)
}
