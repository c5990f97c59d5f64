package hw

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPresets(t *testing.T) {
	t.Parallel()

	for _, c := range Presets() {
		if err := c.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", c.Name, err)
		}
	}

	gen2, err := Preset("gen2")
	if err != nil {
		t.Fatal(err)
	}
	if gen2.ActivationCompressionVersion != 1 {
		t.Error("gen2 should support version-1 activation compression")
	}

	if _, err := Preset("gen9"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	c := Gen1()
	c.Srams = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero sram lanes")
	}

	c = Gen1()
	c.BlockConfigs = nil
	if err := c.Validate(); err == nil {
		t.Error("expected error for empty block config list")
	}
}

func TestLoadFileOverridesPreset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "caps.yaml")
	data := "sram_size_bytes: 262144\nactivation_compression_version: 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.SramSizeBytes != 262144 {
		t.Errorf("sram size = %d", c.SramSizeBytes)
	}
	if c.ActivationCompressionVersion != 1 {
		t.Error("compression version not applied")
	}
	// Unset fields fall back to the gen1 preset.
	if c.Srams != 16 || len(c.BlockConfigs) == 0 {
		t.Errorf("defaults not preserved: srams=%d blocks=%d", c.Srams, len(c.BlockConfigs))
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
