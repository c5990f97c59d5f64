// Package tensor holds the small value types the tiling search is built on:
// 4-dimensional shapes, rational per-axis scale factors and the rounding
// helpers the hardware alignment rules are expressed with.
package tensor

// Shape is a 4-dimensional tensor shape. Activations are NHWC with the batch
// dimension fixed at 1; weights are HWIO (or HWIM for depthwise, where the
// last dimension is the per-channel multiplier). Tensors are 8-bit, so the
// element count is also the byte count.
type Shape [4]uint32

// Height returns the H dimension of an NHWC shape.
func (s Shape) Height() uint32 { return s[1] }

// Width returns the W dimension of an NHWC shape.
func (s Shape) Width() uint32 { return s[2] }

// Channels returns the C dimension of an NHWC shape.
func (s Shape) Channels() uint32 { return s[3] }

// TotalBytes returns the byte size of a dense 8-bit tensor of this shape.
func (s Shape) TotalBytes() uint32 {
	return s[0] * s[1] * s[2] * s[3]
}

// Valid reports whether every dimension is non-zero.
func (s Shape) Valid() bool {
	return s[0] > 0 && s[1] > 0 && s[2] > 0 && s[3] > 0
}

// RoundUpToMultiple rounds v up to the nearest multiple of m.
// m must be non-zero.
func RoundUpToMultiple(v, m uint32) uint32 {
	return ((v + m - 1) / m) * m
}

// DivCeil returns ceil(a / b). b must be non-zero.
func DivCeil(a, b uint32) uint32 {
	return (a + b - 1) / b
}
