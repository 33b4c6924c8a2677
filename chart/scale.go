package chart

// Linear is an affine map from the domain [D0, D1] to the range [R0, R1].
//
// R1 may be smaller than R0, which is how the value axis is flipped for
// drawing surfaces whose y axis points down.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// Map returns the range position of the domain value v.
func (s Linear) Map(v float64) float64 {
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert returns the domain value at the range position p.
func (s Linear) Invert(p float64) float64 {
	return s.D0 + (p-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}
