package core

import (
	"math/bits"

	"gonum.org/v1/gonum/stat/combin"
)

// MaxMaskSet is the largest set Combinations walks with bit masks.
const MaxMaskSet = 63

// Combinations calls fn with every k-element subset of {0..n-1} as
// ascending positions. Up to MaxMaskSet items the subsets step with
// Gosper's hack, in ascending mask order; larger sets fall through to
// gonum's generator in lexicographic order. fn must not keep idx.
func Combinations(n, k int, fn func(idx []int)) {
	if k <= 0 {
		fatalf(ErrBadChoose, "choose %d of %d", k, n)
	}
	if k > n {
		return
	}
	idx := make([]int, k)
	if n > MaxMaskSet {
		gen := combin.NewCombinationGenerator(n, k)
		for gen.Next() {
			fn(gen.Combination(idx))
		}
		return
	}
	limit := uint64(1) << uint(n)
	for x := uint64(1)<<uint(k) - 1; x < limit; {
		fn(positions(x, idx))
		c := x & -x
		r := x + c
		x = (((r ^ x) >> 2) / c) | r
	}
}

func positions(mask uint64, dst []int) []int {
	dst = dst[:0]
	for mask != 0 {
		dst = append(dst, bits.TrailingZeros64(mask))
		mask &= mask - 1
	}
	return dst
}

// pick returns the items at idx, in idx order.
func pick(items []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, p := range idx {
		out[i] = items[p]
	}
	return out
}
