// Package hw describes the fixed-function accelerator the compiler targets.
// A Capabilities value is a read-only fact sheet: the tiling search queries
// it everywhere and never mutates it.
package hw

import (
	"fmt"

	"github.com/samcharles93/slate/internal/tensor"
)

// BlockConfig is a candidate compute block shape the engine can be
// programmed with.
type BlockConfig struct {
	Width  uint32 `yaml:"width" json:"width"`
	Height uint32 `yaml:"height" json:"height"`
}

// Capabilities describes one hardware generation.
//
// The brick group is the minimum granule the DMA engine can transfer; every
// stripe boundary must align to it. Srams and Ofms are the parallel lane
// counts constraining legal channel granularity. AccumulatorsPerEngine caps
// the compute block area. ActivationCompressionVersion is 0 when the
// generation has no lossless activation compression and 1 for the FCAF
// flavour the search knows how to honour.
type Capabilities struct {
	Name string `yaml:"name" json:"name"`

	BrickGroup            tensor.Shape `yaml:"brick_group" json:"brick_group"`
	Srams                 uint32       `yaml:"srams" json:"srams"`
	Ofms                  uint32       `yaml:"ofms" json:"ofms"`
	Ogs                   uint32       `yaml:"ogs" json:"ogs"`
	AccumulatorsPerEngine uint32       `yaml:"accumulators_per_engine" json:"accumulators_per_engine"`

	ActivationCompressionVersion uint32 `yaml:"activation_compression_version" json:"activation_compression_version"`

	SramSizeBytes uint32 `yaml:"sram_size_bytes" json:"sram_size_bytes"`

	BlockConfigs []BlockConfig `yaml:"block_configs" json:"block_configs"`
}

// Validate checks the descriptor is internally usable.
func (c *Capabilities) Validate() error {
	if !c.BrickGroup.Valid() {
		return fmt.Errorf("hw: brick group %v has a zero dimension", c.BrickGroup)
	}
	if c.Srams == 0 || c.Ofms == 0 || c.Ogs == 0 {
		return fmt.Errorf("hw: lane counts must be non-zero (srams=%d ofms=%d ogs=%d)", c.Srams, c.Ofms, c.Ogs)
	}
	if c.AccumulatorsPerEngine == 0 {
		return fmt.Errorf("hw: accumulator count must be non-zero")
	}
	if c.SramSizeBytes == 0 {
		return fmt.Errorf("hw: sram size must be non-zero")
	}
	if len(c.BlockConfigs) == 0 {
		return fmt.Errorf("hw: at least one block config is required")
	}
	return nil
}
