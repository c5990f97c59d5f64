package strategy

import (
	"github.com/samcharles93/slate/internal/hw"
	"github.com/samcharles93/slate/internal/tensor"
)

// weightsChannelVecProd is the channel-vector granularity the weight decoder
// consumes for fully-connected operators; their weight-stripe input-channel
// dimension is rounded up to it.
const weightsChannelVecProd = 1024

// Per-OFM header prepended to each output channel's run in the encoded
// weight stream.
const weightStreamHeaderBytes = 14

// EstimateWeightSizeBytes returns a worst-case byte size for one encoded
// weight stripe, assuming no compression. isHwim selects the depthwise
// layout, where the last dimension is a per-channel multiplier rather than
// an independent output-channel count.
func EstimateWeightSizeBytes(stripe tensor.Shape, caps *hw.Capabilities, isHwim bool) uint32 {
	var ofms, bytesPerOfm uint32
	if isHwim {
		ofms = stripe[2] * stripe[3]
		bytesPerOfm = stripe[0] * stripe[1]
	} else {
		ofms = stripe[3]
		bytesPerOfm = stripe[0] * stripe[1] * stripe[2]
	}
	// The weight stream is fetched per OFM group, so partial groups still
	// occupy a full group's worth of slots.
	ofmsRounded := tensor.RoundUpToMultiple(ofms, caps.Ogs)
	size := ofmsRounded*bytesPerOfm + ofms*weightStreamHeaderBytes
	return tensor.RoundUpToMultiple(size, 16)
}
