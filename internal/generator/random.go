package generator

import (
	"math/rand"
	"time"
)

// uniformFloat samples U[lo, hi] rounded to one decimal (grade precision).
func uniformFloat(rng *rand.Rand, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	return float64(int(v*10+0.5)) / 10
}

// weightedChoice is one outcome of a weighted draw.
type weightedChoice[T any] struct {
	Value  T
	Weight float64
}

// pickWeighted draws one value proportionally to the weights.
func pickWeighted[T any](rng *rand.Rand, choices []weightedChoice[T]) T {
	var total float64
	for _, c := range choices {
		total += c.Weight
	}
	r := rng.Float64() * total
	for _, c := range choices {
		r -= c.Weight
		if r < 0 {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}

// sampleIndices draws n distinct indices from [0, total) without replacement.
func sampleIndices(rng *rand.Rand, total, n int) []int {
	if n > total {
		n = total
	}
	perm := rng.Perm(total)
	picked := make([]int, n)
	copy(picked, perm[:n])
	return picked
}

// randomTimeBetween samples a uniform instant in [from, to].
func randomTimeBetween(rng *rand.Rand, from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	delta := to.Unix() - from.Unix()
	return time.Unix(from.Unix()+rng.Int63n(delta+1), 0).UTC()
}

// daysBefore subtracts whole days keeping the clock component.
func daysBefore(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, -days)
}

// atClock pins a date to the given wall-clock time.
func atClock(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// chance reports true with probability p.
func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
