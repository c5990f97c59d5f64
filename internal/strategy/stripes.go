package strategy

import (
	"github.com/samcharles93/slate/internal/sram"
	"github.com/samcharles93/slate/internal/tensor"
)

// FCAF compression cell geometry. The wide cell (8x16x16) is the format the
// compressor is most likely to pick; the deep cell (8x8x32) wins when the
// tensor's spatial extent is at most 8x8.
const (
	fcafCellSpatial   = 8
	fcafWideCellDepth = 16
	fcafDeepCellDepth = 32
)

// stripeOptions are the per-trial knobs of the resolver.
type stripeOptions struct {
	allowInputBuffering   bool
	avoidInputReloading   bool
	activationCompression bool
	weightsReloading      WeightsReloading
}

// search carries the operator-invariant inputs for one strategy attempt.
type search struct {
	op *Operator

	// depthMax is op.DepthMax normalised so zero means "no cap".
	depthMax uint32
}

func newSearch(op *Operator) *search {
	if op.WeightsFormat != WeightsHWIO {
		// Contract breach, not a search failure: quietly returning false
		// would make the outer search keep retrying a layout that can
		// never succeed.
		panic("strategy: weight tensor must be HWIO")
	}
	depthMax := op.DepthMax
	if depthMax == 0 {
		depthMax = ^uint32(0)
	}
	return &search{op: op, depthMax: depthMax}
}

// tryStripeShapes turns a requested output stripe and input-channel split
// into concrete, hardware-legal stripe shapes and tile sizes, and asks the
// allocator whether they fit. On success it fills cfg and advances alloc;
// on failure both are left untouched.
func (s *search) tryStripeShapes(alloc *sram.Allocator, requestedOutput tensor.Shape, requestedInputChannels uint32, opts stripeOptions, cfg *TensorConfig) bool {
	op := s.op
	caps := op.Caps
	isFullyConnected := op.Operation == OpFullyConnected

	brickH := caps.BrickGroup.Height()
	brickW := caps.BrickGroup.Width()
	brickC := caps.BrickGroup.Channels()
	mul := op.MceMultiplier.Times(op.PleMultiplier)

	// Output stripe spatial extents: requested size rounded up to the
	// scaled brick granule, but never beyond the full tensor rounded to
	// brick granularity.
	outWidthMin := mul.W.Mul(brickW)
	outWidthMax := tensor.RoundUpToMultiple(op.OutputShape.Width(), brickW)
	outputStripeWidth := min(tensor.RoundUpToMultiple(requestedOutput.Width(), outWidthMin), outWidthMax)

	outHeightMin := mul.H.Mul(brickH)
	outHeightMax := tensor.RoundUpToMultiple(op.OutputShape.Height(), brickH)
	outputStripeHeight := min(tensor.RoundUpToMultiple(requestedOutput.Height(), outHeightMin), outHeightMax)

	// The stripe depth must be a multiple of the SRAM lane count, and when
	// the tensor is split across several depth stripes no stripe may start
	// mid-way through a brick-group channel granule (the DMA cannot start a
	// transfer on channel 24 and run into the next group of 16).
	var outputStripeChannels uint32
	if tensor.DivCeil(op.OutputShape.Channels(), requestedOutput.Channels()) > 1 &&
		requestedOutput.Channels() > mul.C.Mul(brickC) {
		outputStripeChannels = tensor.RoundUpToMultiple(requestedOutput.Channels(), mul.C.Mul(brickC))
	} else {
		outputStripeChannels = tensor.RoundUpToMultiple(requestedOutput.Channels(), mul.C.Mul(caps.Srams))
	}

	// Input stripe follows from the output stripe through the inverse of
	// the combined scale, clamped so we never stripe wider or taller than
	// the source tensor.
	inputStripeHeightPre := accountForFullDimension(
		op.OutputShape.Height(), op.InputShape.Height(), outputStripeHeight, mul.H.Div)
	inputStripeHeight := tensor.RoundUpToMultiple(min(inputStripeHeightPre, op.InputShape.Height()), brickH)

	inputStripeWidthPre := accountForFullDimension(
		op.OutputShape.Width(), op.InputShape.Width(), outputStripeWidth, mul.W.Div)
	inputStripeWidth := tensor.RoundUpToMultiple(min(inputStripeWidthPre, op.InputShape.Width()), brickW)

	// With more than one stripe along the height, the post-processing
	// engine spills partial accumulations; its spill depth caps the output
	// stripe depth.
	if tensor.DivCeil(op.InputShape.Height(), inputStripeHeight) > 1 {
		outputStripeChannels = min(outputStripeChannels, s.depthMax)
	}

	// Compute-engine-local output stripe.
	mceOutputStripe := tensor.Shape{
		1,
		op.PleMultiplier.H.Div(outputStripeHeight),
		op.PleMultiplier.W.Div(outputStripeWidth),
		op.PleMultiplier.C.Div(outputStripeChannels),
	}

	// Strided inputs are de-interleaved across the lanes; all sub-channels
	// of one logical channel must travel together.
	strideSize := tensor.DivCeil(
		tensor.RoundUpToMultiple(op.InputShape.Channels(), caps.Srams),
		tensor.RoundUpToMultiple(op.WeightsShape[2], caps.Srams))

	var inputStripeChannels uint32
	if tensor.DivCeil(op.InputShape.Channels(), requestedInputChannels) > 1 &&
		requestedInputChannels > brickC*strideSize {
		inputStripeChannels = tensor.RoundUpToMultiple(requestedInputChannels, brickC*strideSize)
	} else {
		inputStripeChannels = tensor.RoundUpToMultiple(requestedInputChannels, caps.Srams*strideSize)
	}

	inputStripe := tensor.Shape{1, inputStripeHeight, inputStripeWidth, inputStripeChannels}

	if inputStripe.Height()%brickH != 0 || inputStripe.Width()%brickW != 0 {
		return false
	}

	// Weight stripe. Fully-connected weights are consumed as channel
	// vectors, so their input-channel extent covers the whole input stripe
	// volume rounded to the decoder's vector granularity.
	var weightStripeChannels uint32
	if isFullyConnected {
		weightStripeChannels = tensor.RoundUpToMultiple(
			inputStripe.Height()*inputStripe.Width()*inputStripe.Channels(), weightsChannelVecProd)
	} else {
		weightStripeChannels = inputStripe.Channels()
	}
	weightStripe := tensor.Shape{op.WeightsShape[0], op.WeightsShape[1], weightStripeChannels, mceOutputStripe.Channels()}

	// Input tile. Boundary slots hold the rows of the stripes above and
	// below that the kernel reads across the stripe edge.
	boundaryY := boundaryRequirements(op.Pad.Top, op.InputShape.Height(), inputStripe.Height(), op.WeightsShape[0])
	needsBoundarySlots := boundaryY.before || boundaryY.after
	inputStripeXZ := inputStripe.Width() * inputStripe.Channels()

	var boundarySlotSize uint32
	if needsBoundarySlots {
		boundarySlotSize = brickH * inputStripeXZ
	}
	defaultSlotSize := inputStripe.TotalBytes()
	totalSlotSize := 2*boundarySlotSize + defaultSlotSize

	numInputStripesX := tensor.DivCeil(op.InputShape.Width(), inputStripe.Width())
	numInputStripesY := tensor.DivCeil(op.InputShape.Height(), inputStripe.Height())
	numInputStripesZ := tensor.DivCeil(op.InputShape.Channels(), inputStripe.Channels())

	boundaryX := boundaryRequirements(op.Pad.Left, op.InputShape.Width(), inputStripe.Width(), op.WeightsShape[1])

	numInputSlots := uint32(1)
	if boundaryX.before {
		numInputSlots++
	}
	if boundaryX.after {
		numInputSlots++
	}
	numInputSlots = min(numInputSlots, numInputStripesX)

	// When the whole image is a single stripe spatially, reload avoidance
	// keeps every depth stripe resident at once; otherwise two slot groups
	// suffice for double buffering.
	isFullHeight := numInputStripesY == 1
	isFullWidth := numInputStripesX == 1
	numInputSlotGroupsMax := uint32(2)
	if opts.avoidInputReloading && isFullHeight && isFullWidth {
		numInputSlotGroupsMax = numInputStripesX * numInputStripesY * numInputStripesZ
	}

	// Multiple slot groups only pay off when the stripe covers the depth
	// partially.
	needSlotGroups := op.InputShape.Channels() > inputStripe.Channels()
	inputTile := totalSlotSize * numInputSlots
	if opts.allowInputBuffering && needSlotGroups {
		inputTile *= numInputSlotGroupsMax
	}

	// Weight tile: how many weight stripes stay resident.
	var numWeightStripesInTile uint32
	if isFullyConnected {
		// Fully connected always streams weights through two slots.
		numWeightStripesInTile = 2
	} else {
		switch opts.weightsReloading {
		case ReloadNone:
			numWeightStripesInTile = tensor.DivCeil(op.InputShape.Channels(), inputStripe.Channels())
		case ReloadDoubleBuffered:
			numWeightStripesInTile = 2
		case ReloadSingle:
			numWeightStripesInTile = 1
		}
	}
	weightTile := EstimateWeightSizeBytes(weightStripe, caps, op.WeightsFormat == WeightsHWIM) * numWeightStripesInTile

	// Activation compression decouples the engine output stripe from the
	// stored output stripe: several engine stripes may accumulate into one
	// compression-eligible stripe.
	if opts.activationCompression {
		if caps.ActivationCompressionVersion != 1 {
			panic("strategy: activation compression requires compression version 1")
		}
		minFcafDepth := uint32(fcafWideCellDepth)
		if op.OutputShape.Height() <= fcafCellSpatial && op.OutputShape.Width() <= fcafCellSpatial {
			minFcafDepth = fcafDeepCellDepth
		}
		if minFcafDepth > outputStripeChannels {
			outputStripeChannels = minFcafDepth
			outputStripeHeight = tensor.RoundUpToMultiple(op.OutputShape.Height(), fcafCellSpatial)
			outputStripeWidth = tensor.RoundUpToMultiple(op.OutputShape.Width(), fcafCellSpatial)
		}
	}

	outputStripe := tensor.Shape{1, outputStripeHeight, outputStripeWidth, outputStripeChannels}

	if outputStripe.Height()%brickH != 0 || outputStripe.Width()%brickW != 0 {
		return false
	}

	// Output tile: at most two stripes for double buffering, clamped to the
	// stripes that actually exist and to the full tensor rounded to its
	// hardware granularity, so a small image never over-allocates.
	numOutputStripesX := tensor.DivCeil(op.OutputShape.Width(), outputStripe.Width())
	numOutputStripesY := tensor.DivCeil(op.OutputShape.Height(), outputStripe.Height())
	numOutputStripesZ := tensor.DivCeil(op.OutputShape.Channels(), outputStripe.Channels())
	numOutputStripesTotal := numOutputStripesX * numOutputStripesY * numOutputStripesZ
	numOutputStripesInTile := min(uint32(2), numOutputStripesTotal)

	outputTileMax := tensor.Shape{
		1,
		tensor.RoundUpToMultiple(op.OutputShape.Height(), brickH),
		tensor.RoundUpToMultiple(op.OutputShape.Width(), brickW),
		tensor.RoundUpToMultiple(op.OutputShape.Channels(), caps.Ofms),
	}.TotalBytes()
	outputTile := min(outputStripe.TotalBytes()*numOutputStripesInTile, outputTileMax)

	advanced, offsets, ok := alloc.TryReserve(sram.Request{
		InputBytes:  inputTile,
		WeightBytes: weightTile,
		OutputBytes: outputTile,
		InputFixed:  op.InputFixed,
		InputOffset: op.InputOffset,
	})
	if !ok {
		return false
	}

	cfg.Input = Allocation{StripeShape: inputStripe, TileBytes: inputTile, Offset: offsets.Input}
	cfg.Weights = Allocation{StripeShape: weightStripe, TileBytes: weightTile, Offset: offsets.Weights}
	cfg.Output = Allocation{StripeShape: outputStripe, TileBytes: outputTile, Offset: offsets.Output}
	*alloc = advanced
	return true
}
