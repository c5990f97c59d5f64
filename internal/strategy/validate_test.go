package strategy

import (
	"testing"

	"github.com/samcharles93/slate/internal/hw"
	"github.com/samcharles93/slate/internal/tensor"
)

func TestValidateRejectsTruncatingMultipliers(t *testing.T) {
	t.Parallel()

	if err := convOperator(hw.Gen1()).Validate(); err != nil {
		t.Fatalf("reference operator invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(op *Operator)
	}{
		{"ple c truncates the ofm lanes", func(op *Operator) {
			op.PleMultiplier.C = tensor.Fraction{Num: 1, Den: 32}
		}},
		{"ple h truncates the block", func(op *Operator) {
			op.PleMultiplier.H = tensor.Fraction{Num: 1, Den: 16}
		}},
		{"combined c truncates the brick depth", func(op *Operator) {
			op.MceMultiplier.C = tensor.Fraction{Num: 1, Den: 4}
			op.PleMultiplier.C = tensor.Fraction{Num: 1, Den: 8}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			op := convOperator(hw.Gen1())
			c.mutate(op)
			if err := op.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
