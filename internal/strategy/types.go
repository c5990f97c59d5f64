// Package strategy chooses how a convolution or fully-connected operator is
// tiled through the accelerator's scratch memory: stripe shapes for the
// input, weight and output tensors, tile (buffer) sizes, buffering and
// weight-reloading policy, all under the hard SRAM budget. It is one
// candidate strategy among several the outer compiler pass tries; failure to
// find a fit is an expected outcome, not an error.
package strategy

import (
	"github.com/samcharles93/slate/internal/hw"
	"github.com/samcharles93/slate/internal/tensor"
)

// Operation is the operator kind being lowered.
type Operation int

const (
	OpConvolution Operation = iota
	OpDepthwiseConvolution
	OpFullyConnected
)

func (o Operation) String() string {
	switch o {
	case OpConvolution:
		return "convolution"
	case OpDepthwiseConvolution:
		return "depthwise_convolution"
	case OpFullyConnected:
		return "fully_connected"
	}
	return "unknown"
}

// Upsample selects the engine's output upsampling mode.
type Upsample int

const (
	UpsampleNone Upsample = iota
	UpsampleBilinear
	UpsampleNearest
)

// WeightsFormat is the weight tensor layout.
type WeightsFormat int

const (
	// WeightsHWIO is height x width x input-channel x output-channel, the
	// only layout this strategy supports.
	WeightsHWIO WeightsFormat = iota
	// WeightsHWIM is the depthwise layout, with a per-channel multiplier in
	// the last dimension.
	WeightsHWIM
)

// Algorithm is the compute algorithm selected for the operator.
type Algorithm int

const (
	AlgorithmDirect Algorithm = iota
	AlgorithmWinograd
)

// Strategy tags the tiling strategy recorded in a TensorConfig. The set is
// closed: eligibility checks are plain set membership, not type inspection.
type Strategy int

const (
	StrategyNone Strategy = iota
	Strategy0
	Strategy1
	Strategy3
	Strategy4
	Strategy6
	Strategy7
	StrategyFC
	StrategyX
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case Strategy0:
		return "strategy0"
	case Strategy1:
		return "strategy1"
	case Strategy3:
		return "strategy3"
	case Strategy4:
		return "strategy4"
	case Strategy6:
		return "strategy6"
	case Strategy7:
		return "strategy7"
	case StrategyFC:
		return "strategy_fc"
	case StrategyX:
		return "strategy_x"
	}
	return "unknown"
}

// StrategySet is a bitmask of strategies.
type StrategySet uint32

// NewStrategySet builds a set from its members.
func NewStrategySet(ss ...Strategy) StrategySet {
	var set StrategySet
	for _, s := range ss {
		set |= 1 << uint(s)
	}
	return set
}

// Contains reports whether s is a member of the set.
func (set StrategySet) Contains(s Strategy) bool {
	return set&(1<<uint(s)) != 0
}

// ContainsAny reports whether any of ss is a member of the set.
func (set StrategySet) ContainsAny(ss ...Strategy) bool {
	return set&NewStrategySet(ss...) != 0
}

// WeightsReloading is the weight residency policy: keep every weight stripe
// resident, stream with double buffering, or stream one stripe at a time.
type WeightsReloading int

const (
	ReloadNone WeightsReloading = iota
	ReloadDoubleBuffered
	ReloadSingle
)

// Padding is the before-edge padding on each spatial axis.
type Padding struct {
	Top  uint32 `yaml:"top" json:"top"`
	Left uint32 `yaml:"left" json:"left"`
}

// Allocation describes the chosen tiling of one tensor: the stripe streamed
// through SRAM, and the tile (the SRAM region holding one or more stripes).
type Allocation struct {
	StripeShape tensor.Shape `json:"stripe_shape"`
	TileBytes   uint32       `json:"tile_bytes"`
	Offset      uint32       `json:"offset"`
}

// TensorConfig is the product of a successful search. It is either fully
// populated or left exactly as the caller provided it; no partial fill is
// ever surfaced.
type TensorConfig struct {
	Input   Allocation `json:"input"`
	Weights Allocation `json:"weights"`
	Output  Allocation `json:"output"`

	BlockWidth  uint32   `json:"block_width"`
	BlockHeight uint32   `json:"block_height"`
	Strategy    Strategy `json:"strategy"`
}

// Operator carries everything the search needs to know about the operator
// being lowered and its surroundings. All fields are read-only to the search.
type Operator struct {
	Operation Operation
	Upsample  Upsample

	InputShape  tensor.Shape
	OutputShape tensor.Shape

	WeightsFormat WeightsFormat
	WeightsShape  tensor.Shape

	Pad Padding

	AllowedBlockConfigs []hw.BlockConfig
	Caps                *hw.Capabilities

	MceMultiplier tensor.ShapeMultiplier
	PleMultiplier tensor.ShapeMultiplier

	// InputFixed marks an input tensor already resident in SRAM at
	// InputOffset; such an input cannot be re-striped by this strategy.
	InputFixed  bool
	InputOffset uint32

	// DepthMax caps the output stripe depth when the image needs more than
	// one stripe along its height. Zero means uncapped.
	DepthMax uint32
}
