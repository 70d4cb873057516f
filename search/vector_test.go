package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		sim, ok := Cosine([]float32{1, 2, 3}, []float32{1, 2, 3})
		assert.True(t, ok)
		assert.InDelta(t, 1.0, sim, 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		sim, ok := Cosine([]float32{1, 0}, []float32{0, 1})
		assert.True(t, ok)
		assert.InDelta(t, 0.0, sim, 1e-6)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		sim, ok := Cosine([]float32{1, 0}, []float32{-1, 0})
		assert.True(t, ok)
		assert.InDelta(t, -1.0, sim, 1e-6)
	})

	t.Run("bounds hold for arbitrary pairs", func(t *testing.T) {
		pairs := [][2][]float32{
			{{0.3, -0.7, 2.1}, {1.5, 0.2, -0.4}},
			{{100, 200, 300}, {0.001, 0.002, 0.003}},
			{{-5, 4, -3}, {2, -1, 6}},
		}
		for _, p := range pairs {
			sim, ok := Cosine(p[0], p[1])
			assert.True(t, ok)
			assert.GreaterOrEqual(t, sim, float32(-1.0000001))
			assert.LessOrEqual(t, sim, float32(1.0000001))
		}
	})

	t.Run("zero-norm operand is skipped", func(t *testing.T) {
		_, ok := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3})
		assert.False(t, ok)
		_, ok = Cosine([]float32{1, 2, 3}, []float32{0, 0, 0})
		assert.False(t, ok)
	})

	t.Run("dimension mismatch is skipped", func(t *testing.T) {
		_, ok := Cosine([]float32{1, 2}, []float32{1, 2, 3})
		assert.False(t, ok)
	})

	t.Run("empty vectors are skipped", func(t *testing.T) {
		_, ok := Cosine(nil, nil)
		assert.False(t, ok)
	})
}
