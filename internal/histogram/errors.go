package histogram

import "errors"

var (
	// ErrInvalidConfig is returned when a dimension or histogram is built
	// from an invalid description (min >= max, zero buckets, no index
	// function, or a bin count that does not fit in uint32).
	ErrInvalidConfig = errors.New("histogram: invalid configuration")

	// ErrSizeMismatch is returned by bulk Set/Add when the source does not
	// have the same number of bins as the receiver.
	ErrSizeMismatch = errors.New("histogram: bins size not the same")

	// ErrEmpty is returned when combining zero histograms.
	ErrEmpty = errors.New("histogram: cannot add zero histograms")

	// ErrOutOfRange is returned when an index falls outside the bin array.
	ErrOutOfRange = errors.New("histogram: index out of range")

	// ErrArity is returned when a sample tuple does not have exactly one
	// value per dimension.
	ErrArity = errors.New("histogram: wrong number of sample values")

	// ErrSampleType is returned when a sample value is not a number.
	ErrSampleType = errors.New("histogram: sample value is not numeric")
)
