// Package internal holds helpers shared by the rvasm packages.
package internal

import (
	"iter"
)

// Concat yields the values of each sequence in turn.
func Concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}
