package strategy

import "fmt"

// Validate checks an Operator before a search. The search itself treats a
// bad operator as a contract breach; outer surfaces (CLI, API) validate
// first so user input fails with an error instead.
func (op *Operator) Validate() error {
	if op.Caps == nil {
		return fmt.Errorf("strategy: capabilities are required")
	}
	if err := op.Caps.Validate(); err != nil {
		return err
	}
	if !op.InputShape.Valid() || op.InputShape[0] != 1 {
		return fmt.Errorf("strategy: input shape %v must be NHWC with batch 1", op.InputShape)
	}
	if !op.OutputShape.Valid() || op.OutputShape[0] != 1 {
		return fmt.Errorf("strategy: output shape %v must be NHWC with batch 1", op.OutputShape)
	}
	if !op.WeightsShape.Valid() {
		return fmt.Errorf("strategy: weights shape %v has a zero dimension", op.WeightsShape)
	}
	if op.WeightsFormat != WeightsHWIO {
		return fmt.Errorf("strategy: only HWIO weights are supported")
	}
	if len(op.AllowedBlockConfigs) == 0 {
		return fmt.Errorf("strategy: at least one allowed block config is required")
	}
	for _, m := range []struct {
		name string
		f    uint32
	}{
		{"mce h", op.MceMultiplier.H.Num}, {"mce h", op.MceMultiplier.H.Den},
		{"mce w", op.MceMultiplier.W.Num}, {"mce w", op.MceMultiplier.W.Den},
		{"mce c", op.MceMultiplier.C.Num}, {"mce c", op.MceMultiplier.C.Den},
		{"ple h", op.PleMultiplier.H.Num}, {"ple h", op.PleMultiplier.H.Den},
		{"ple w", op.PleMultiplier.W.Num}, {"ple w", op.PleMultiplier.W.Den},
		{"ple c", op.PleMultiplier.C.Num}, {"ple c", op.PleMultiplier.C.Den},
	} {
		if m.f == 0 {
			return fmt.Errorf("strategy: %s shape multiplier has a zero term", m.name)
		}
	}
	// A downscaling fraction must still leave at least one element when
	// applied to the granule it scales; a product of zero would divide the
	// search's rounding arithmetic by zero.
	mul := op.MceMultiplier.Times(op.PleMultiplier)
	for _, g := range []struct {
		name string
		v    uint32
	}{
		{"brick height", mul.H.Mul(op.Caps.BrickGroup.Height())},
		{"brick width", mul.W.Mul(op.Caps.BrickGroup.Width())},
		{"brick depth", mul.C.Mul(op.Caps.BrickGroup.Channels())},
		{"sram lanes", mul.C.Mul(op.Caps.Srams)},
		{"ofm lanes", op.PleMultiplier.C.Mul(op.Caps.Ofms)},
	} {
		if g.v == 0 {
			return fmt.Errorf("strategy: shape multiplier scales the %s to zero", g.name)
		}
	}
	for _, bc := range op.AllowedBlockConfigs {
		if op.PleMultiplier.H.Mul(bc.Height) == 0 || op.PleMultiplier.W.Mul(bc.Width) == 0 {
			return fmt.Errorf("strategy: ple multiplier scales block %dx%d to zero", bc.Width, bc.Height)
		}
	}
	return nil
}
