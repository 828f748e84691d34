// Package sample bounds the working set with a stratified downsample
// that preserves (day, user type) group proportions.
package sample

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// Defaults match the production pipeline: sample only when the clean
// set exceeds 10k rows, with a pinned seed so every run of the same
// input produces the same working set.
const (
	DefaultThreshold = 10000
	DefaultSeed      = 42
)

// Config controls the sampler. Zero values fall back to the defaults.
type Config struct {
	// Threshold is the working-set size above which sampling kicks in.
	Threshold int
	// Seed seeds the RNG used for within-stratum selection.
	Seed int64
}

type stratumKey struct {
	day      string
	userType trip.UserType
}

// Stratified returns trips unchanged when at or under the threshold.
// Otherwise it draws a proportional sample per (day_of_week,
// member_casual) stratum: max(1, round(threshold*n/N)) rows, uniform
// without replacement. Strata are processed in first-appearance order
// and selected rows keep their input order, so the result is fully
// determined by the input and the seed.
func Stratified(trips []trip.CleanTrip, cfg Config) []trip.CleanTrip {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	total := len(trips)
	if total <= threshold {
		return trips
	}

	// Index rows per stratum, keeping first-appearance stratum order.
	indexes := make(map[stratumKey][]int)
	var order []stratumKey
	for i, t := range trips {
		key := stratumKey{day: t.DayOfWeek, userType: t.UserType}
		if _, seen := indexes[key]; !seen {
			order = append(order, key)
		}
		indexes[key] = append(indexes[key], i)
	}

	rng := rand.New(rand.NewSource(seed))

	var picked []int
	for _, key := range order {
		rows := indexes[key]
		n := len(rows)

		target := int(math.Round(float64(threshold) * float64(n) / float64(total)))
		if target < 1 {
			target = 1
		}
		if target > n {
			target = n
		}

		perm := rng.Perm(n)
		for _, p := range perm[:target] {
			picked = append(picked, rows[p])
		}
	}

	// Restore input order across the whole sample.
	sort.Ints(picked)

	out := make([]trip.CleanTrip, 0, len(picked))
	for _, i := range picked {
		out = append(out, trips[i])
	}
	return out
}
