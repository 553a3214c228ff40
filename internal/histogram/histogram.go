package histogram

import (
	"fmt"
	"slices"
)

// Precision is the numeric type bins are accumulated in.
type Precision interface {
	Number
}

// Histogram is a flat array of bins addressed through an Indexer. The bin
// count and the indexer are fixed for the lifetime of the histogram.
//
// A Histogram is not safe for concurrent mutation. Callers that accumulate
// in parallel should give each goroutine its own Clone and combine the
// partial results with Add.
type Histogram[P Precision] struct {
	bins    []P
	indexOf Indexer
}

// New creates a histogram with n zeroed bins. The indexer must map every
// sample into [0, n).
func New[P Precision](n uint32, indexer Indexer) (*Histogram[P], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: bins should be > 0", ErrInvalidConfig)
	}
	if indexer == nil {
		return nil, fmt.Errorf("%w: index function is required", ErrInvalidConfig)
	}

	return &Histogram[P]{
		bins:    make([]P, n),
		indexOf: indexer,
	}, nil
}

// NewUniform builds a uniform-width histogram over the given dimensions.
func NewUniform[P Precision](axes ...Axis) (*Histogram[P], error) {
	l, err := NewLayout(axes...)
	if err != nil {
		return nil, err
	}
	return New[P](l.Len(), l)
}

// Clone returns a deep copy of the bins sharing the same indexer.
func (h *Histogram[P]) Clone() *Histogram[P] {
	return &Histogram[P]{
		bins:    slices.Clone(h.bins),
		indexOf: h.indexOf,
	}
}

// Len returns the number of bins.
func (h *Histogram[P]) Len() int {
	return len(h.bins)
}

// Indexer returns the index function the histogram was built with.
func (h *Histogram[P]) Indexer() Indexer {
	return h.indexOf
}

// Layout returns the histogram's Layout, or nil if it was built with a
// custom Indexer.
func (h *Histogram[P]) Layout() *Layout {
	l, _ := h.indexOf.(*Layout)
	return l
}

// Bins returns the backing bin slice, ordered by linear index. The slice is
// shared with the histogram; callers must treat it as read-only.
func (h *Histogram[P]) Bins() []P {
	return h.bins
}

// index resolves a sample to a bin, rejecting anything outside the array.
func (h *Histogram[P]) index(values []any) (uint32, error) {
	idx, err := h.indexOf.Index(values...)
	if err != nil {
		return 0, err
	}
	if int(idx) >= len(h.bins) {
		return 0, fmt.Errorf("%w: %d (bins=%d)", ErrOutOfRange, idx, len(h.bins))
	}
	return idx, nil
}

// Inc adds 1 to the bin of the sample.
func (h *Histogram[P]) Inc(values ...any) error {
	return h.IncMultiplier(1, values...)
}

// IncMultiplier adds weight to the bin of the sample.
func (h *Histogram[P]) IncMultiplier(weight P, values ...any) error {
	idx, err := h.index(values)
	if err != nil {
		return err
	}
	h.bins[idx] += weight
	return nil
}

// Value returns the bin of the sample.
func (h *Histogram[P]) Value(values ...any) (P, error) {
	idx, err := h.index(values)
	if err != nil {
		return 0, err
	}
	return h.bins[idx], nil
}

// At returns the bin at a linear index.
func (h *Histogram[P]) At(index uint32) (P, error) {
	if int(index) >= len(h.bins) {
		return 0, fmt.Errorf("%w: %d (bins=%d)", ErrOutOfRange, index, len(h.bins))
	}
	return h.bins[index], nil
}

// Apply replaces every bin b with fn(b).
func (h *Histogram[P]) Apply(fn func(P) P) {
	for i, b := range h.bins {
		h.bins[i] = fn(b)
	}
}

// Set assigns value to every bin.
func (h *Histogram[P]) Set(value P) {
	for i := range h.bins {
		h.bins[i] = value
	}
}

// SetBins copies bins into the histogram. The receiver is left untouched
// when the lengths differ.
func (h *Histogram[P]) SetBins(bins []P) error {
	if len(bins) != len(h.bins) {
		return fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(bins), len(h.bins))
	}
	copy(h.bins, bins)
	return nil
}

// SetHistogram copies the bins of other.
func (h *Histogram[P]) SetHistogram(other *Histogram[P]) error {
	if other == nil {
		return fmt.Errorf("%w: nil histogram", ErrSizeMismatch)
	}
	return h.SetBins(other.bins)
}

// Add adds value to every bin.
func (h *Histogram[P]) Add(value P) {
	for i := range h.bins {
		h.bins[i] += value
	}
}

// AddBins accumulates bins element-wise. The receiver is left untouched
// when the lengths differ.
func (h *Histogram[P]) AddBins(bins []P) error {
	if len(bins) != len(h.bins) {
		return fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(bins), len(h.bins))
	}
	for i, b := range bins {
		h.bins[i] += b
	}
	return nil
}

// AddHistogram accumulates the bins of other.
func (h *Histogram[P]) AddHistogram(other *Histogram[P]) error {
	if other == nil {
		return fmt.Errorf("%w: nil histogram", ErrSizeMismatch)
	}
	return h.AddBins(other.bins)
}

// Clear zeroes every bin.
func (h *Histogram[P]) Clear() {
	clear(h.bins)
}

// Sum returns the sum of the absolute bin values.
func (h *Histogram[P]) Sum() P {
	var sum P
	for _, b := range h.bins {
		if b < 0 {
			b = -b
		}
		sum += b
	}
	return sum
}

// Normalize divides every bin by Sum so the absolute values add up to 1.
// It does nothing when Sum is not positive. Integer precisions truncate.
func (h *Histogram[P]) Normalize() {
	sum := h.Sum()
	if sum <= 0 {
		return
	}
	for i := range h.bins {
		h.bins[i] /= sum
	}
}

// Add returns a new histogram holding the element-wise sum of histograms.
// The result starts as a clone of the first histogram, so it shares that
// histogram's indexer. None of the inputs are modified.
func Add[P Precision](histograms ...*Histogram[P]) (*Histogram[P], error) {
	if len(histograms) == 0 {
		return nil, ErrEmpty
	}
	if histograms[0] == nil {
		return nil, fmt.Errorf("%w: histogram 0 is nil", ErrSizeMismatch)
	}

	result := histograms[0].Clone()
	for i, h := range histograms[1:] {
		if err := result.AddHistogram(h); err != nil {
			return nil, fmt.Errorf("histogram %d: %w", i+1, err)
		}
	}
	return result, nil
}
