package common

import (
	"errors"
	"fmt"
)

// ErrInvalidBatchSize is returned by Partition when size is not positive
var ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

// Partition splits s into consecutive groups of at most size elements.
// Every group but the last has exactly size elements. The groups share
// s's backing array and keep its order.
func Partition[S ~[]E, E any](s S, size int) ([]S, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}

	groups := make([]S, 0, (len(s)+size-1)/size)
	for start := 0; start < len(s); start += size {
		end := min(start+size, len(s))
		groups = append(groups, s[start:end:end])
	}

	return groups, nil
}

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}
