// Package batch splits ordered update lists into endpoint-sized requests.
package batch

import (
	"fmt"
	"iter"
)

// Divide yields contiguous chunks of items of length n. The last chunk holds
// the remainder and no empty chunk is ever produced. Chunks share the backing
// array of items. Divide panics if n is not positive.
func Divide[T any](items []T, n int) iter.Seq[[]T] {
	if n <= 0 {
		panic(fmt.Sprintf("batch: invalid chunk size %d", n))
	}
	return func(yield func([]T) bool) {
		for start := 0; start < len(items); start += n {
			end := min(start+n, len(items))
			if !yield(items[start:end:end]) {
				return
			}
		}
	}
}

// Chunks collects Divide into a slice.
func Chunks[T any](items []T, n int) [][]T {
	out := make([][]T, 0, Count(len(items), n))
	for chunk := range Divide(items, n) {
		out = append(out, chunk)
	}
	return out
}

// Count returns the number of chunks Divide produces for length l.
func Count(l, n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("batch: invalid chunk size %d", n))
	}
	if l <= 0 {
		return 0
	}
	return (l + n - 1) / n
}
