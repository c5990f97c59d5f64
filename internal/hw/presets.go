package hw

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samcharles93/slate/internal/tensor"
)

// defaultBlockConfigs are the block shapes every generation supports,
// widest first.
func defaultBlockConfigs() []BlockConfig {
	return []BlockConfig{
		{Width: 32, Height: 8},
		{Width: 8, Height: 32},
		{Width: 16, Height: 16},
		{Width: 16, Height: 8},
		{Width: 8, Height: 16},
		{Width: 8, Height: 8},
	}
}

// Gen1 is the first-generation target: no activation compression.
func Gen1() *Capabilities {
	return &Capabilities{
		Name:                  "gen1",
		BrickGroup:            tensor.Shape{1, 8, 8, 16},
		Srams:                 16,
		Ofms:                  16,
		Ogs:                   8,
		AccumulatorsPerEngine: 512,
		SramSizeBytes:         1024 * 1024,
		BlockConfigs:          defaultBlockConfigs(),
	}
}

// Gen2 is the second-generation target, which adds version-1 activation
// compression and a larger scratch memory.
func Gen2() *Capabilities {
	c := Gen1()
	c.Name = "gen2"
	c.ActivationCompressionVersion = 1
	c.SramSizeBytes = 2 * 1024 * 1024
	return c
}

// Presets returns the built-in capability descriptors.
func Presets() []*Capabilities {
	return []*Capabilities{Gen1(), Gen2()}
}

// Preset looks up a built-in descriptor by name.
func Preset(name string) (*Capabilities, error) {
	for _, c := range Presets() {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("hw: unknown preset %q", name)
}

// LoadFile reads a capability descriptor from a yaml file. Fields omitted in
// the file fall back to the gen1 preset so a file only has to name what it
// changes.
func LoadFile(path string) (*Capabilities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hw: read caps file: %w", err)
	}
	c := Gen1()
	c.Name = path
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("hw: parse caps file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
