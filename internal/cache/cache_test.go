package cache

import "testing"

func TestVersionedGetPut(t *testing.T) {
	var c Versioned[string]

	if _, ok := c.Get(0); ok {
		t.Fatal("empty cache must miss")
	}

	c.Put(3, "report")
	if v, ok := c.Get(3); !ok || v != "report" {
		t.Fatalf("expected hit for version 3, got %q ok=%v", v, ok)
	}
	if _, ok := c.Get(4); ok {
		t.Fatal("stale version must miss")
	}

	c.Put(4, "newer")
	if v, ok := c.Get(4); !ok || v != "newer" {
		t.Fatalf("expected hit after overwrite, got %q ok=%v", v, ok)
	}
	if _, ok := c.Get(3); ok {
		t.Fatal("overwritten version must miss")
	}
}

func TestVersionedInvalidate(t *testing.T) {
	var c Versioned[int]
	c.Put(1, 42)
	c.Invalidate()
	if _, ok := c.Get(1); ok {
		t.Fatal("invalidated cache must miss")
	}
}
