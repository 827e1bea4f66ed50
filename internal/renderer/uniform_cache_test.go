package renderer

import (
	"testing"
)

func newCountingCache(calls *int) *UniformCache {
	cache := NewUniformCache(7)
	cache.lookup = func(program uint32, name string) int32 {
		*calls++
		if name == "missing" {
			return -1
		}
		return int32(len(name))
	}
	return cache
}

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheLooksUpOnce(t *testing.T) {
	calls := 0
	cache := newCountingCache(&calls)

	first := cache.GetLocation("model")
	second := cache.GetLocation("model")

	if first != second || first != 5 {
		t.Errorf("Expected location 5 twice, got %d and %d", first, second)
	}
	if calls != 1 {
		t.Errorf("Expected 1 lookup, got %d", calls)
	}
}

func TestUniformCacheCachesMissingUniforms(t *testing.T) {
	calls := 0
	cache := newCountingCache(&calls)

	cache.GetLocation("missing")
	if loc := cache.GetLocation("missing"); loc != -1 {
		t.Errorf("Expected -1 for missing uniform, got %d", loc)
	}
	if calls != 1 {
		t.Errorf("Missing uniforms should be cached too, got %d lookups", calls)
	}
}

func TestUniformCacheClear(t *testing.T) {
	calls := 0
	cache := newCountingCache(&calls)
	cache.GetLocation("viewProjection")

	cache.Clear()

	if cache.Len() != 0 {
		t.Error("Clear should empty the cache")
	}
	cache.GetLocation("viewProjection")
	if calls != 2 {
		t.Errorf("Expected a fresh lookup after Clear, got %d lookups", calls)
	}
}
