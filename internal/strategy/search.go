package strategy

import (
	"github.com/samcharles93/slate/internal/sram"
	"github.com/samcharles93/slate/internal/tensor"
)

// candidate is one parameter combination handed to the resolver.
type candidate struct {
	blockWidth  uint32
	blockHeight uint32

	inputStripeChannels   uint32
	outputStripeHeight    uint32
	outputStripeWidth     uint32
	outputStripeChannels  uint32
	activationCompression bool
}

// tryCandidate runs the resolver for one candidate against scratch copies of
// the allocator and config, committing both only when accept approves the
// result. That keeps allocator state and the caller's TensorConfig untouched
// for candidates that resolve but are then rejected.
func (s *search) tryCandidate(alloc *sram.Allocator, cfg *TensorConfig, c candidate, opts stripeOptions, accept func(*TensorConfig) bool) bool {
	trialAlloc := *alloc
	var trialCfg TensorConfig

	requested := tensor.Shape{1, c.outputStripeHeight, c.outputStripeWidth, c.outputStripeChannels}
	if !s.tryStripeShapes(&trialAlloc, requested, c.inputStripeChannels, opts, &trialCfg) {
		return false
	}
	if accept != nil && !accept(&trialCfg) {
		return false
	}

	trialCfg.BlockWidth = c.blockWidth
	trialCfg.BlockHeight = c.blockHeight
	trialCfg.Strategy = StrategyX
	*cfg = trialCfg
	*alloc = trialAlloc
	return true
}

// tryInputZXYOutputXYZ searches channel-split (Z-first) input traversal.
// It enumerates compression choice x block config x channel-split count in
// priority order and degrades through buffering tiers and weight-reloading
// modes until a candidate fits. Only configurations that actually split the
// input depth are accepted; an unsplit fit belongs to other strategies.
func (s *search) tryInputZXYOutputXYZ(cfg *TensorConfig, alloc *sram.Allocator) bool {
	op := s.op
	if op.InputFixed {
		return false
	}
	isFullyConnected := op.Operation == OpFullyConnected

	// Compression is only worth offering on hardware that has it, and
	// fully-connected outputs never compress.
	var compressionOptions []bool
	if op.Caps.ActivationCompressionVersion == 1 && !isFullyConnected {
		compressionOptions = append(compressionOptions, true)
	}
	compressionOptions = append(compressionOptions, false)

	var candidates []candidate
	for _, compression := range compressionOptions {
		for _, bc := range sortBlockConfigs(op.AllowedBlockConfigs) {
			if !blockConfigCompatible(bc, op.Caps, op.Operation, op.Upsample) {
				continue
			}
			// The engine produces a single block per stripe.
			outputStripeHeight := op.PleMultiplier.H.Mul(bc.Height)
			outputStripeWidth := op.PleMultiplier.W.Mul(bc.Width)
			outputStripeChannels := op.PleMultiplier.C.Mul(op.Caps.Ofms)

			for splits := uint32(2); splits < op.InputShape.Channels(); splits++ {
				candidates = append(candidates, candidate{
					blockWidth:            bc.Width,
					blockHeight:           bc.Height,
					inputStripeChannels:   op.InputShape.Channels() / splits,
					outputStripeHeight:    outputStripeHeight,
					outputStripeWidth:     outputStripeWidth,
					outputStripeChannels:  outputStripeChannels,
					activationCompression: compression,
				})
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}

	partialDepth := func(cfg *TensorConfig) bool {
		return cfg.Input.StripeShape.Channels() < op.InputShape.Channels()
	}

	// Preference order within each weight-reloading mode:
	//  a. input double buffering, keeping all depth stripes resident
	//  b. input double buffering only
	//  c. no input buffering
	tiers := []struct {
		allowInputBuffering bool
		avoidInputReloading bool
	}{
		{allowInputBuffering: true, avoidInputReloading: true},
		{allowInputBuffering: true, avoidInputReloading: false},
		{allowInputBuffering: false, avoidInputReloading: false},
	}
	reloading := []WeightsReloading{ReloadNone, ReloadDoubleBuffered, ReloadSingle}

	for _, reload := range reloading {
		for _, tier := range tiers {
			for _, c := range candidates {
				opts := stripeOptions{
					allowInputBuffering:   tier.allowInputBuffering,
					avoidInputReloading:   tier.avoidInputReloading,
					activationCompression: c.activationCompression,
					weightsReloading:      reload,
				}
				if s.tryCandidate(alloc, cfg, c, opts, partialDepth) {
					return true
				}
			}
		}
	}
	return false
}

// tryInputXYOutputXYZ searches whole-channel (XY) input traversal: the full
// input depth per stripe, one compute block per output stripe. Only
// fully-connected operators take this path.
func (s *search) tryInputXYOutputXYZ(cfg *TensorConfig, alloc *sram.Allocator) bool {
	op := s.op
	if op.InputFixed {
		return false
	}
	if op.Operation != OpFullyConnected {
		return false
	}

	var candidates []candidate
	for _, bc := range sortBlockConfigs(op.AllowedBlockConfigs) {
		if !blockConfigCompatible(bc, op.Caps, op.Operation, op.Upsample) {
			continue
		}
		candidates = append(candidates, candidate{
			blockWidth:           bc.Width,
			blockHeight:          bc.Height,
			inputStripeChannels:  op.InputShape.Channels(),
			outputStripeHeight:   op.PleMultiplier.H.Mul(bc.Height),
			outputStripeWidth:    op.PleMultiplier.W.Mul(bc.Width),
			outputStripeChannels: op.PleMultiplier.C.Mul(op.Caps.Ofms),
		})
	}
	if len(candidates) == 0 {
		return false
	}

	for _, allowInputBuffering := range []bool{true, false} {
		for _, c := range candidates {
			opts := stripeOptions{allowInputBuffering: allowInputBuffering}
			if s.tryCandidate(alloc, cfg, c, opts, nil) {
				return true
			}
		}
	}
	return false
}
