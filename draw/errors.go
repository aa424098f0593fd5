package draw

import "errors"

var (
	// ErrEmptyRange is returned when a range has begin > end.
	ErrEmptyRange = errors.New("cannot sample empty range")

	// ErrNegativeCount is returned when a negative number of values is requested.
	ErrNegativeCount = errors.New("count must not be negative")

	// ErrPickTooMany is returned by Pick when n exceeds the input length.
	ErrPickTooMany = errors.New("attempt to pick more elements than the input length")

	// ErrEmptyList is returned by SelectFromWeighted for an empty list.
	ErrEmptyList = errors.New("list must not be empty")

	// ErrZeroWeight is returned by SelectFromWeighted when an element has weight 0.
	ErrZeroWeight = errors.New("all element weights should be >= 1")

	// ErrTotalWeightOverflow is returned by SelectFromWeighted when the
	// weights do not sum within uint32.
	ErrTotalWeightOverflow = errors.New("total weight is greater than maximum value of u32")
)
