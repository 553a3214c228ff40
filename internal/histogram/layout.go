package histogram

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Axis is the type-erased view of a Dimension. It lets dimensions with
// different sample types share one Layout.
type Axis interface {
	// BucketCount returns the number of buckets on this axis.
	BucketCount() uint32
	// BucketOf quantizes one sample value.
	BucketOf(v any) (uint32, error)
	// Validate reports whether the axis describes a usable range.
	Validate() error
	String() string
}

// Indexer maps a sample tuple to a linear bin index.
type Indexer interface {
	Index(values ...any) (uint32, error)
}

// IndexFunc adapts an ordinary function to the Indexer interface.
type IndexFunc func(values ...any) (uint32, error)

// Index calls f(values...).
func (f IndexFunc) Index(values ...any) (uint32, error) {
	return f(values...)
}

// Layout composes per-dimension quantizers into one linear index using
// mixed-radix flattening. Dimension 0 varies fastest:
//
//	index(v0..vN-1) = q0(v0) + B0 * index(v1..vN-1)
//
// so for two dimensions the bin of (i, j) is i + B0*j. This ordering is part
// of the bin format and must not change.
//
// A Layout is immutable once built and is safe for concurrent use.
type Layout struct {
	axes []Axis
	size uint32
}

// NewLayout validates the axes and builds the composed index function.
func NewLayout(axes ...Axis) (*Layout, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: at least one dimension is required", ErrInvalidConfig)
	}

	size := uint64(1)
	for i, a := range axes {
		if a == nil {
			return nil, fmt.Errorf("%w: dimension %d is nil", ErrInvalidConfig, i)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("dimension %d: %w", i, err)
		}
		size *= uint64(a.BucketCount())
		if size > math.MaxUint32 {
			return nil, fmt.Errorf("%w: total bins exceed %d", ErrInvalidConfig, uint32(math.MaxUint32))
		}
	}

	l := &Layout{
		axes: make([]Axis, len(axes)),
		size: uint32(size),
	}
	copy(l.axes, axes)
	return l, nil
}

// Len returns the total number of bins, the product of all bucket counts.
func (l *Layout) Len() uint32 {
	return l.size
}

// Dims returns the number of dimensions.
func (l *Layout) Dims() int {
	return len(l.axes)
}

// Axis returns the i-th dimension.
func (l *Layout) Axis(i int) Axis {
	return l.axes[i]
}

// Index quantizes each value on its own axis and flattens the result.
func (l *Layout) Index(values ...any) (uint32, error) {
	if len(values) != len(l.axes) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrArity, len(values), len(l.axes))
	}

	// Horner-style fold from the slowest dimension down to dimension 0.
	var idx uint32
	for i := len(l.axes) - 1; i >= 0; i-- {
		b, err := l.axes[i].BucketOf(values[i])
		if err != nil {
			return 0, fmt.Errorf("dimension %d: %w", i, err)
		}
		idx = b + l.axes[i].BucketCount()*idx
	}
	return idx, nil
}

// Offset flattens per-dimension bucket coordinates into a linear index.
func (l *Layout) Offset(buckets ...uint32) (uint32, error) {
	if len(buckets) != len(l.axes) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrArity, len(buckets), len(l.axes))
	}

	var idx uint32
	for i := len(l.axes) - 1; i >= 0; i-- {
		n := l.axes[i].BucketCount()
		if buckets[i] >= n {
			return 0, fmt.Errorf("%w: bucket %d on dimension %d (size %d)", ErrOutOfRange, buckets[i], i, n)
		}
		idx = buckets[i] + n*idx
	}
	return idx, nil
}

// Coordinates is the inverse of Offset: it splits a linear index into one
// bucket per dimension.
func (l *Layout) Coordinates(index uint32) ([]uint32, error) {
	if index >= l.size {
		return nil, fmt.Errorf("%w: %d (bins=%d)", ErrOutOfRange, index, l.size)
	}

	coords := make([]uint32, len(l.axes))
	for i, a := range l.axes {
		n := a.BucketCount()
		coords[i] = index % n
		index /= n
	}
	return coords, nil
}

// Fingerprint returns a 64-bit hash of the dimension descriptors. Layouts
// with equal fingerprints quantize and flatten samples identically.
func (l *Layout) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, a := range l.axes {
		_, _ = d.WriteString(a.String())
		binary.LittleEndian.PutUint32(buf[:], a.BucketCount())
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// String lists the dimensions, slowest last, e.g. "int[0:10]/10 x float64[0:10]/15".
func (l *Layout) String() string {
	parts := make([]string, len(l.axes))
	for i, a := range l.axes {
		parts[i] = a.String()
	}
	return strings.Join(parts, " x ")
}
