package utils

// Set builds a membership set from a slice.
func Set[T comparable](items []T) map[T]bool {
	set := make(map[T]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// Combinations returns every k-sized subset of items, preserving item order
// within a subset and ordering subsets lexicographically by index.
func Combinations[T any](items []T, k int) [][]T {
	if k <= 0 || k > len(items) {
		return nil
	}
	result := [][]T{}
	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	for {
		subset := make([]T, k)
		for i, idx := range indices {
			subset[i] = items[idx]
		}
		result = append(result, subset)

		// Advance the rightmost index that still has room
		i := k - 1
		for i >= 0 && indices[i] == len(items)-k+i {
			i--
		}
		if i < 0 {
			return result
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}

// SplitEvenly divides total into parts shares as evenly as possible, giving the
// remainder to the first shares.
func SplitEvenly(total, parts int) []int {
	if parts <= 0 {
		return nil
	}
	shares := make([]int, parts)
	base, remainder := total/parts, total%parts
	for i := range shares {
		shares[i] = base
		if i < remainder {
			shares[i]++
		}
	}
	return shares
}
