package histogram

// Histogram1D is a uniform histogram over a single typed dimension.
type Histogram1D[P Precision, A Number] struct {
	*Histogram[P]
	a Dimension[A]
}

// New1D builds a one-dimensional uniform histogram.
func New1D[P Precision, A Number](a Dimension[A]) (*Histogram1D[P, A], error) {
	h, err := NewUniform[P](a)
	if err != nil {
		return nil, err
	}
	return &Histogram1D[P, A]{Histogram: h, a: a}, nil
}

// Index returns the linear bin of the sample.
func (h *Histogram1D[P, A]) Index(a A) uint32 {
	return h.a.Bucket(a)
}

// Inc adds 1 to the bin of the sample.
func (h *Histogram1D[P, A]) Inc(a A) {
	h.bins[h.Index(a)]++
}

// IncMultiplier adds weight to the bin of the sample.
func (h *Histogram1D[P, A]) IncMultiplier(weight P, a A) {
	h.bins[h.Index(a)] += weight
}

// Value returns the bin of the sample.
func (h *Histogram1D[P, A]) Value(a A) P {
	return h.bins[h.Index(a)]
}

// Clone returns a deep copy.
func (h *Histogram1D[P, A]) Clone() *Histogram1D[P, A] {
	return &Histogram1D[P, A]{Histogram: h.Histogram.Clone(), a: h.a}
}

// Histogram2D is a uniform histogram over two typed dimensions. Dimension a
// varies fastest in the bin array.
type Histogram2D[P Precision, A, B Number] struct {
	*Histogram[P]
	a Dimension[A]
	b Dimension[B]
}

// New2D builds a two-dimensional uniform histogram.
func New2D[P Precision, A, B Number](a Dimension[A], b Dimension[B]) (*Histogram2D[P, A, B], error) {
	h, err := NewUniform[P](a, b)
	if err != nil {
		return nil, err
	}
	return &Histogram2D[P, A, B]{Histogram: h, a: a, b: b}, nil
}

// Index returns the linear bin of the sample.
func (h *Histogram2D[P, A, B]) Index(a A, b B) uint32 {
	return h.a.Bucket(a) + h.a.Buckets*h.b.Bucket(b)
}

// Inc adds 1 to the bin of the sample.
func (h *Histogram2D[P, A, B]) Inc(a A, b B) {
	h.bins[h.Index(a, b)]++
}

// IncMultiplier adds weight to the bin of the sample.
func (h *Histogram2D[P, A, B]) IncMultiplier(weight P, a A, b B) {
	h.bins[h.Index(a, b)] += weight
}

// Value returns the bin of the sample.
func (h *Histogram2D[P, A, B]) Value(a A, b B) P {
	return h.bins[h.Index(a, b)]
}

// Clone returns a deep copy.
func (h *Histogram2D[P, A, B]) Clone() *Histogram2D[P, A, B] {
	return &Histogram2D[P, A, B]{Histogram: h.Histogram.Clone(), a: h.a, b: h.b}
}

// Histogram3D is a uniform histogram over three typed dimensions.
type Histogram3D[P Precision, A, B, C Number] struct {
	*Histogram[P]
	a Dimension[A]
	b Dimension[B]
	c Dimension[C]
}

// New3D builds a three-dimensional uniform histogram.
func New3D[P Precision, A, B, C Number](a Dimension[A], b Dimension[B], c Dimension[C]) (*Histogram3D[P, A, B, C], error) {
	h, err := NewUniform[P](a, b, c)
	if err != nil {
		return nil, err
	}
	return &Histogram3D[P, A, B, C]{Histogram: h, a: a, b: b, c: c}, nil
}

// Index returns the linear bin of the sample.
func (h *Histogram3D[P, A, B, C]) Index(a A, b B, c C) uint32 {
	return h.a.Bucket(a) + h.a.Buckets*(h.b.Bucket(b)+h.b.Buckets*h.c.Bucket(c))
}

// Inc adds 1 to the bin of the sample.
func (h *Histogram3D[P, A, B, C]) Inc(a A, b B, c C) {
	h.bins[h.Index(a, b, c)]++
}

// IncMultiplier adds weight to the bin of the sample.
func (h *Histogram3D[P, A, B, C]) IncMultiplier(weight P, a A, b B, c C) {
	h.bins[h.Index(a, b, c)] += weight
}

// Value returns the bin of the sample.
func (h *Histogram3D[P, A, B, C]) Value(a A, b B, c C) P {
	return h.bins[h.Index(a, b, c)]
}

// Clone returns a deep copy.
func (h *Histogram3D[P, A, B, C]) Clone() *Histogram3D[P, A, B, C] {
	return &Histogram3D[P, A, B, C]{
		Histogram: h.Histogram.Clone(),
		a:         h.a,
		b:         h.b,
		c:         h.c,
	}
}
