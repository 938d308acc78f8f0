package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandomIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestIntnStaysInRange(t *testing.T) {
	for _, r := range []Random{New(), NewSeeded(7)} {
		for i := 0; i < 200; i++ {
			v := r.Intn(15)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 15)
		}
		assert.Equal(t, 0, r.Intn(0))
	}
}

func TestStringUsesAlphabet(t *testing.T) {
	s := NewSeeded(1).String(32, "AB")
	assert.Len(t, s, 32)
	for _, c := range s {
		assert.Contains(t, "AB", string(c))
	}
	assert.Empty(t, New().String(0, "AB"))
}
