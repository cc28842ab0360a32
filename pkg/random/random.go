package random

import (
	"math"
	"math/rand"
	"time"
)

// Generator produces demo values. A fixed seed gives a reproducible sequence.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator. Seed 0 seeds from the clock.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a value in [min, max)
func (g *Generator) Float(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

// Chance reports true with probability p
func (g *Generator) Chance(p float64) bool {
	return g.rng.Float64() < p
}

// Randomize applies ±percent randomization to value
// Example: Randomize(100, 1.0) returns value in range [99, 101]
func (g *Generator) Randomize(value float64, percent float64) float64 {
	if percent <= 0 {
		return value
	}

	variance := value * (percent / 100.0)

	// Random offset in range [-variance, +variance]
	offset := (g.rng.Float64()*2 - 1) * variance

	result := value + offset
	return math.Round(result*100) / 100
}

// Weighted returns activity-like levels: 30% zero, 40% low, 20% medium, 10% high
func (g *Generator) Weighted() float64 {
	roll := g.rng.Float64()
	switch {
	case roll < 0.3:
		return 0
	case roll < 0.7:
		return g.Float(0.1, 0.4)
	case roll < 0.9:
		return g.Float(0.4, 0.7)
	default:
		return g.Float(0.7, 1.0)
	}
}

// Contribution simulates a commit pattern: active on 60% of weekdays and
// 20% of weekends, with a level in [0.1, 1.0) when active
func (g *Generator) Contribution(weekend bool) float64 {
	chance := 0.6
	if weekend {
		chance = 0.2
	}
	if !g.Chance(chance) {
		return 0
	}
	return g.Float(0.1, 1.0)
}

// SelectRandomItems selects n random items from a slice of totalCount
// Returns indices of selected items
func (g *Generator) SelectRandomItems(totalCount, n int) []int {
	if n <= 0 || totalCount <= 0 {
		return []int{}
	}

	allIndices := make([]int, totalCount)
	for i := range allIndices {
		allIndices[i] = i
	}

	if n >= totalCount {
		return allIndices
	}

	// Fisher-Yates
	for i := len(allIndices) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		allIndices[i], allIndices[j] = allIndices[j], allIndices[i]
	}

	return allIndices[:n]
}
