package strategy

import (
	"testing"

	"github.com/samcharles93/slate/internal/hw"
)

func TestBlockConfigCompatibleAccumulatorLimit(t *testing.T) {
	t.Parallel()

	caps := hw.Gen1()
	caps.AccumulatorsPerEngine = 256

	for _, op := range []Operation{OpConvolution, OpDepthwiseConvolution, OpFullyConnected} {
		if blockConfigCompatible(hw.BlockConfig{Width: 32, Height: 16}, caps, op, UpsampleNone) {
			t.Errorf("%v: block area 512 must be rejected with 256 accumulators", op)
		}
	}
	if !blockConfigCompatible(hw.BlockConfig{Width: 16, Height: 16}, caps, OpConvolution, UpsampleNone) {
		t.Error("block area 256 should fit 256 accumulators")
	}
}

func TestBlockConfigCompatibleFullyConnected(t *testing.T) {
	t.Parallel()

	caps := hw.Gen1()
	for _, bc := range caps.BlockConfigs {
		got := blockConfigCompatible(bc, caps, OpFullyConnected, UpsampleNone)
		want := bc.Width == 8 && bc.Height == 8
		if got != want {
			t.Errorf("fully connected %dx%d: got %v, want %v", bc.Width, bc.Height, got, want)
		}
	}
}

func TestBlockConfigCompatibleUpsampling(t *testing.T) {
	t.Parallel()

	caps := hw.Gen1()
	for _, up := range []Upsample{UpsampleBilinear, UpsampleNearest} {
		for _, bc := range caps.BlockConfigs {
			got := blockConfigCompatible(bc, caps, OpConvolution, up)
			want := bc.Width == 16 && bc.Height == 16
			if got != want {
				t.Errorf("upsample %v %dx%d: got %v, want %v", up, bc.Width, bc.Height, got, want)
			}
		}
	}
}

func TestSortBlockConfigsWidestFirst(t *testing.T) {
	t.Parallel()

	in := []hw.BlockConfig{
		{Width: 8, Height: 8},
		{Width: 16, Height: 8},
		{Width: 16, Height: 16},
		{Width: 32, Height: 8},
	}
	got := sortBlockConfigs(in)
	want := []hw.BlockConfig{
		{Width: 32, Height: 8},
		{Width: 16, Height: 16},
		{Width: 16, Height: 8},
		{Width: 8, Height: 8},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	// Input order is preserved.
	if in[0] != (hw.BlockConfig{Width: 8, Height: 8}) {
		t.Fatal("sortBlockConfigs mutated its input")
	}
}
