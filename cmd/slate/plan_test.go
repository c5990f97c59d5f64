package main

import (
	"math"
	"testing"
)

func TestSramSizeBytes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		v    int64
		want uint32
		ok   bool
	}{
		{1, 1, true},
		{1024 * 1024, 1024 * 1024, true},
		{math.MaxUint32, math.MaxUint32, true},
		{math.MaxUint32 + 1, 0, false},
		{math.MaxInt64, 0, false},
		{0, 0, false},
		{-1, 0, false},
	}
	for _, c := range cases {
		got, err := sramSizeBytes(c.v)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("sramSizeBytes(%d) = %d, %v; want %d", c.v, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("sramSizeBytes(%d) succeeded, want an error", c.v)
		}
	}
}
