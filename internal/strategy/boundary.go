package strategy

// needBoundary records whether the input tile must keep extra rows (or
// columns) of the neighbouring stripes resident so the kernel can read
// across the stripe edge.
type needBoundary struct {
	before bool
	after  bool
}

// boundaryRequirements decides the boundary needs along one axis. A single
// stripe covering the whole axis never needs boundary data. With multiple
// stripes, the kernel reads up to kernelDim-1 elements past the stripe on
// the after side, and on the before side whatever of that overhang the
// caller's padding does not already cover.
func boundaryRequirements(padBefore, inputDim, inputStripeDim, kernelDim uint32) needBoundary {
	if inputStripeDim >= inputDim {
		return needBoundary{}
	}
	return needBoundary{
		before: kernelDim > padBefore+1,
		after:  kernelDim > 1,
	}
}

// accountForFullDimension maps an output stripe extent back to the input
// extent it consumes. When the stripe covers the whole output the input
// stripe must cover the whole input regardless of the scale factor; the
// caller clamps and aligns afterwards.
func accountForFullDimension(outputDim, inputDim, outputStripeDim uint32, mul func(uint32) uint32) uint32 {
	if outputStripeDim >= outputDim {
		return inputDim
	}
	return mul(outputStripeDim)
}
