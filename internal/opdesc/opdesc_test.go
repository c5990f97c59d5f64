package opdesc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/slate/internal/strategy"
	"github.com/samcharles93/slate/internal/tensor"
)

const convYAML = `operation: convolution
input_shape: [1, 32, 32, 64]
output_shape: [1, 32, 32, 128]
weights_shape: [3, 3, 64, 128]
pad:
  top: 1
  left: 1
caps: gen2
depth_max: 32
`

func TestLoadAndResolve(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "op.yaml")
	if err := os.WriteFile(path, []byte(convYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	op, err := spec.Resolve()
	if err != nil {
		t.Fatal(err)
	}

	if op.Operation != strategy.OpConvolution {
		t.Errorf("operation = %v", op.Operation)
	}
	if op.InputShape != (tensor.Shape{1, 32, 32, 64}) {
		t.Errorf("input shape = %v", op.InputShape)
	}
	if op.Pad.Top != 1 || op.Pad.Left != 1 {
		t.Errorf("pad = %+v", op.Pad)
	}
	if op.Caps.Name != "gen2" {
		t.Errorf("caps = %s", op.Caps.Name)
	}
	if op.DepthMax != 32 {
		t.Errorf("depth max = %d", op.DepthMax)
	}
	if len(op.AllowedBlockConfigs) == 0 {
		t.Error("expected block configs from the preset")
	}
	if op.MceMultiplier != tensor.IdentityMultiplier {
		t.Errorf("mce multiplier = %+v", op.MceMultiplier)
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	spec := &Spec{
		InputShape:   tensor.Shape{1, 16, 16, 32},
		OutputShape:  tensor.Shape{1, 16, 16, 32},
		WeightsShape: tensor.Shape{1, 1, 32, 32},
	}
	op, err := spec.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if op.Operation != strategy.OpConvolution {
		t.Errorf("default operation = %v", op.Operation)
	}
	if op.Caps.Name != "gen1" {
		t.Errorf("default caps = %s", op.Caps.Name)
	}
	if op.WeightsFormat != strategy.WeightsHWIO {
		t.Errorf("default weights format = %v", op.WeightsFormat)
	}
}

func TestResolveSramOverride(t *testing.T) {
	t.Parallel()

	spec := &Spec{
		InputShape:    tensor.Shape{1, 16, 16, 32},
		OutputShape:   tensor.Shape{1, 16, 16, 32},
		WeightsShape:  tensor.Shape{1, 1, 32, 32},
		SramSizeBytes: 65536,
	}
	op, err := spec.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if op.Caps.SramSizeBytes != 65536 {
		t.Errorf("sram override not applied: %d", op.Caps.SramSizeBytes)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		spec Spec
	}{
		{"unknown operation", Spec{Operation: "pooling"}},
		{"unknown upsample", Spec{Upsample: "cubic"}},
		{"unknown weights format", Spec{WeightsFormat: "oihw"}},
		{"unknown preset", Spec{Caps: "gen9"}},
		{"zero shape", Spec{InputShape: tensor.Shape{1, 0, 16, 16}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := c.spec.Resolve(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
