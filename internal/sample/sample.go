// Package sample picks random subsets of already-fetched slices.
package sample

import "math/rand/v2"

// Choose returns min(n, len(items)) distinct elements of items picked
// uniformly at random, in random order. items is not modified. A nil r uses
// the global source.
func Choose[T any](r *rand.Rand, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}

	var perm []int
	if r != nil {
		perm = r.Perm(len(items))
	} else {
		perm = rand.Perm(len(items))
	}

	out := make([]T, 0, n)
	for _, i := range perm[:n] {
		out = append(out, items[i])
	}
	return out
}
