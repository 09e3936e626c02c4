package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type obj struct {
	kind string
	n    int
}

func TestAcquireBuildsWhenEmpty(t *testing.T) {
	built := 0
	r := New(func(k string) *obj {
		built++
		return &obj{kind: k, n: built}
	})

	a := r.Acquire("arrow")
	b := r.Acquire("arrow")

	assert.Equal(t, 2, built)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, r.Outstanding("arrow"))
	assert.Equal(t, 0, r.Idle("arrow"))
}

func TestReleaseIsReusedLIFO(t *testing.T) {
	r := New(func(k string) *obj { return &obj{kind: k} })
	a, b := r.Acquire("bullet"), r.Acquire("bullet")
	r.Release("bullet", a)
	r.Release("bullet", b)
	assert.Equal(t, 2, r.Idle("bullet"))
	assert.Equal(t, 0, r.Outstanding("bullet"))

	assert.Same(t, b, r.Acquire("bullet"))
	assert.Same(t, a, r.Acquire("bullet"))
	assert.Equal(t, 0, r.Idle("bullet"))
}

func TestKindsAreSeparate(t *testing.T) {
	r := New(func(k string) *obj { return &obj{kind: k} })
	a := r.Acquire("arrow")
	r.Release("arrow", a)

	b := r.Acquire("bullet")

	assert.NotSame(t, a, b)
	assert.Equal(t, "bullet", b.kind)
	assert.Equal(t, 1, r.Idle("arrow"))
}
