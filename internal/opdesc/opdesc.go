// Package opdesc maps operator descriptions, as written in yaml files or
// sent to the planning API, onto the search's Operator type.
package opdesc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samcharles93/slate/internal/hw"
	"github.com/samcharles93/slate/internal/strategy"
	"github.com/samcharles93/slate/internal/tensor"
)

// Spec is the external description of one operator to plan. Shapes are
// NHWC for activations and HWIO for weights. Omitted fields take their
// defaults: convolution, no upsampling, HWIO weights, the gen1 capability
// preset with its full block-config list, identity shape multipliers.
type Spec struct {
	Operation string `yaml:"operation" json:"operation"`
	Upsample  string `yaml:"upsample,omitempty" json:"upsample,omitempty"`

	InputShape   tensor.Shape `yaml:"input_shape" json:"input_shape"`
	OutputShape  tensor.Shape `yaml:"output_shape" json:"output_shape"`
	WeightsShape tensor.Shape `yaml:"weights_shape" json:"weights_shape"`

	WeightsFormat string `yaml:"weights_format,omitempty" json:"weights_format,omitempty"`

	Pad strategy.Padding `yaml:"pad,omitempty" json:"pad,omitempty"`

	Caps          string `yaml:"caps,omitempty" json:"caps,omitempty"`
	CapsFile      string `yaml:"caps_file,omitempty" json:"caps_file,omitempty"`
	SramSizeBytes uint32 `yaml:"sram_size_bytes,omitempty" json:"sram_size_bytes,omitempty"`

	BlockConfigs []hw.BlockConfig `yaml:"block_configs,omitempty" json:"block_configs,omitempty"`

	MceMultiplier *tensor.ShapeMultiplier `yaml:"mce_multiplier,omitempty" json:"mce_multiplier,omitempty"`
	PleMultiplier *tensor.ShapeMultiplier `yaml:"ple_multiplier,omitempty" json:"ple_multiplier,omitempty"`

	DepthMax uint32 `yaml:"depth_max,omitempty" json:"depth_max,omitempty"`

	InputFixed  bool   `yaml:"input_fixed,omitempty" json:"input_fixed,omitempty"`
	InputOffset uint32 `yaml:"input_offset,omitempty" json:"input_offset,omitempty"`
}

// Load reads a Spec from a yaml file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opdesc: read %s: %w", path, err)
	}
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("opdesc: parse %s: %w", path, err)
	}
	return &s, nil
}

// Resolve turns the description into a validated Operator ready for the
// search.
func (s *Spec) Resolve() (*strategy.Operator, error) {
	operation, err := parseOperation(s.Operation)
	if err != nil {
		return nil, err
	}
	upsample, err := parseUpsample(s.Upsample)
	if err != nil {
		return nil, err
	}
	format, err := parseWeightsFormat(s.WeightsFormat)
	if err != nil {
		return nil, err
	}

	var caps *hw.Capabilities
	switch {
	case s.CapsFile != "":
		caps, err = hw.LoadFile(s.CapsFile)
	case s.Caps != "":
		caps, err = hw.Preset(s.Caps)
	default:
		caps = hw.Gen1()
	}
	if err != nil {
		return nil, err
	}
	if s.SramSizeBytes > 0 {
		caps.SramSizeBytes = s.SramSizeBytes
	}

	blocks := s.BlockConfigs
	if len(blocks) == 0 {
		blocks = caps.BlockConfigs
	}

	mce := tensor.IdentityMultiplier
	if s.MceMultiplier != nil {
		mce = *s.MceMultiplier
	}
	ple := tensor.IdentityMultiplier
	if s.PleMultiplier != nil {
		ple = *s.PleMultiplier
	}

	op := &strategy.Operator{
		Operation:           operation,
		Upsample:            upsample,
		InputShape:          s.InputShape,
		OutputShape:         s.OutputShape,
		WeightsFormat:       format,
		WeightsShape:        s.WeightsShape,
		Pad:                 s.Pad,
		AllowedBlockConfigs: blocks,
		Caps:                caps,
		MceMultiplier:       mce,
		PleMultiplier:       ple,
		InputFixed:          s.InputFixed,
		InputOffset:         s.InputOffset,
		DepthMax:            s.DepthMax,
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func parseOperation(v string) (strategy.Operation, error) {
	switch v {
	case "", "convolution", "conv":
		return strategy.OpConvolution, nil
	case "depthwise", "depthwise_convolution":
		return strategy.OpDepthwiseConvolution, nil
	case "fully_connected", "fc":
		return strategy.OpFullyConnected, nil
	}
	return 0, fmt.Errorf("opdesc: unknown operation %q", v)
}

func parseUpsample(v string) (strategy.Upsample, error) {
	switch v {
	case "", "none", "off":
		return strategy.UpsampleNone, nil
	case "bilinear":
		return strategy.UpsampleBilinear, nil
	case "nearest":
		return strategy.UpsampleNearest, nil
	}
	return 0, fmt.Errorf("opdesc: unknown upsample mode %q", v)
}

func parseWeightsFormat(v string) (strategy.WeightsFormat, error) {
	switch v {
	case "", "hwio":
		return strategy.WeightsHWIO, nil
	case "hwim":
		return strategy.WeightsHWIM, nil
	}
	return 0, fmt.Errorf("opdesc: unknown weights format %q", v)
}
