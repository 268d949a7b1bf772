package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.Intn(7), b.Intn(7))
	}
}

func TestBetween_StaysInRange(t *testing.T) {
	src := New(7)
	for i := 0; i < 1000; i++ {
		v := Between(src, 0.7, 1.0)
		assert.GreaterOrEqual(t, v, 0.7)
		assert.Less(t, v, 1.0)
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		n    int
		want int
	}{
		{"zero", 0, 4, 0},
		{"middle", 0.5, 4, 2},
		{"top clamps", 1.0, 4, 3},
		{"negative clamps", -1, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fixed{F: tt.f}.Intn(tt.n))
		})
	}
	assert.Equal(t, 0.25, Fixed{F: 0.25}.Float64())
}
