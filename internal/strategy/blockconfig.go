package strategy

import (
	"sort"

	"github.com/samcharles93/slate/internal/hw"
)

// blockConfigCompatible reports whether a compute block shape can be
// programmed for this operator. A block is rejected when its area exceeds
// the engine's accumulator count, when a fully-connected operator asks for
// anything but 8x8, or when upsampling asks for anything but 16x16: the
// upsampled input is transferred at half the block size on each axis and
// the DMA cannot move blocks smaller than 8x8.
func blockConfigCompatible(bc hw.BlockConfig, caps *hw.Capabilities, op Operation, up Upsample) bool {
	if bc.Width*bc.Height > caps.AccumulatorsPerEngine {
		return false
	}
	if op == OpFullyConnected && (bc.Width != 8 || bc.Height != 8) {
		return false
	}
	if up != UpsampleNone && (bc.Width != 16 || bc.Height != 16) {
		return false
	}
	return true
}

// sortBlockConfigs orders candidates widest first, then tallest. Larger
// blocks mean fewer, larger stripes, so they are tried first.
func sortBlockConfigs(configs []hw.BlockConfig) []hw.BlockConfig {
	sorted := make([]hw.BlockConfig, len(configs))
	copy(sorted, configs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Width != sorted[j].Width {
			return sorted[i].Width > sorted[j].Width
		}
		return sorted[i].Height > sorted[j].Height
	})
	return sorted
}
