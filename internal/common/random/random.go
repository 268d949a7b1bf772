// internal/common/random/random.go

// Package random isolates the placeholder randomness used by the pipeline so
// that tests can pin it.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform samples.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a goroutine-safe Source. A zero seed picks a time-based seed.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Between maps a sample from src onto [min, max).
func Between(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Fixed always returns the same sample. Intn scales F onto [0, n).
type Fixed struct {
	F float64
}

func (f Fixed) Float64() float64 { return f.F }

func (f Fixed) Intn(n int) int {
	i := int(f.F * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
