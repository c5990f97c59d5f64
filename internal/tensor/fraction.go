package tensor

// Fraction is a rational scale factor. It is only ever used to scale integer
// dimensions up or down; it is never reduced or mutated.
type Fraction struct {
	Num uint32 `yaml:"num" json:"num"`
	Den uint32 `yaml:"den" json:"den"`
}

// One is the identity scale factor.
var One = Fraction{Num: 1, Den: 1}

// Mul scales v by the fraction.
func (f Fraction) Mul(v uint32) uint32 {
	return v * f.Num / f.Den
}

// Div scales v by the reciprocal of the fraction.
func (f Fraction) Div(v uint32) uint32 {
	return v * f.Den / f.Num
}

// Times returns the product of two fractions.
func (f Fraction) Times(o Fraction) Fraction {
	return Fraction{Num: f.Num * o.Num, Den: f.Den * o.Den}
}

// ShapeMultiplier relates one tensor granularity to another, per axis. The
// compute engine and the post-processing engine each carry one relative to
// the logical tensor shape (e.g. a 2x upscaling pass has H and W of 2/1, a
// 2x2 pooling pass 1/2).
type ShapeMultiplier struct {
	H Fraction `yaml:"h" json:"h"`
	W Fraction `yaml:"w" json:"w"`
	C Fraction `yaml:"c" json:"c"`
}

// IdentityMultiplier scales every axis by 1.
var IdentityMultiplier = ShapeMultiplier{H: One, W: One, C: One}

// Times returns the componentwise product of two multipliers.
func (m ShapeMultiplier) Times(o ShapeMultiplier) ShapeMultiplier {
	return ShapeMultiplier{
		H: m.H.Times(o.H),
		W: m.W.Times(o.W),
		C: m.C.Times(o.C),
	}
}
