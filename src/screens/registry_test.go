package screens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_ReusesClientScreens(t *testing.T) {
	f := newFixture(t)

	a := f.registry.Get("a")
	assert.Same(t, a, f.registry.Get("a"))
	assert.NotSame(t, a, f.registry.Get("b"))
	assert.Equal(t, 2, f.registry.Len())
	assert.Equal(t, "a", a.Session.ClientID())
}

func TestRegistry_EvictsLeastRecentlyUsed(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(f.registry.deps, f.store, 2, time.Hour)

	first := r.Get("a")
	r.Get("b")
	r.Get("c")

	assert.Equal(t, 2, r.Len())
	assert.NotSame(t, first, r.Get("a"))
}
