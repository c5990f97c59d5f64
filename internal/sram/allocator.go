// Package sram places tensor tiles inside the accelerator's on-chip scratch
// memory. The Allocator is a value type: a trial runs TryReserve on a copy
// and the caller commits by assigning the returned state back, so a failed
// attempt never disturbs shared allocator state.
package sram

import "slices"

// Granule is the placement alignment. Every offset and reserved size is a
// multiple of it, matching the DMA's addressing granularity.
const Granule = 16

type region struct {
	off  uint32
	size uint32
}

// Allocator tracks the free ranges of one scratch memory. The zero value is
// unusable; construct with New.
type Allocator struct {
	capacity uint32
	free     []region
}

// New returns an allocator over capacity bytes of scratch memory.
func New(capacity uint32) Allocator {
	capacity -= capacity % Granule
	return Allocator{
		capacity: capacity,
		free:     []region{{off: 0, size: capacity}},
	}
}

// Capacity returns the total byte size of the scratch memory.
func (a Allocator) Capacity() uint32 { return a.capacity }

// FreeBytes returns the number of unreserved bytes.
func (a Allocator) FreeBytes() uint32 {
	var n uint32
	for _, r := range a.free {
		n += r.size
	}
	return n
}

func (a Allocator) clone() Allocator {
	return Allocator{capacity: a.capacity, free: slices.Clone(a.free)}
}

// Request asks for one tile placement per tensor. When InputFixed is set the
// input tensor is already resident at InputOffset and only the weight and
// output tiles are placed.
type Request struct {
	InputBytes  uint32
	WeightBytes uint32
	OutputBytes uint32

	InputFixed  bool
	InputOffset uint32
}

// Offsets holds the byte offsets chosen for a successful Request.
type Offsets struct {
	Input   uint32
	Weights uint32
	Output  uint32
}

// TryReserve attempts to place all tiles of req. On success it returns the
// advanced allocator state and the chosen offsets; on failure the receiver
// is returned unchanged. The receiver itself is never mutated either way.
func (a Allocator) TryReserve(req Request) (Allocator, Offsets, bool) {
	trial := a.clone()
	var offs Offsets

	if req.InputFixed {
		// The resident input still occupies its range; carve it out so
		// the weight and output tiles cannot land on top of it.
		if !trial.takeAt(req.InputOffset, req.InputBytes) {
			return a, Offsets{}, false
		}
		offs.Input = req.InputOffset
	} else {
		off, ok := trial.takeLow(req.InputBytes)
		if !ok {
			return a, Offsets{}, false
		}
		offs.Input = off
	}

	off, ok := trial.takeLow(req.WeightBytes)
	if !ok {
		return a, Offsets{}, false
	}
	offs.Weights = off

	// Outputs go at the far end to keep the streaming input and output
	// regions apart.
	off, ok = trial.takeHigh(req.OutputBytes)
	if !ok {
		return a, Offsets{}, false
	}
	offs.Output = off

	return trial, offs, true
}

// Release returns a previously reserved range to the free list, coalescing
// with its neighbours. The outer compiler pass uses this when an operator's
// tiles are retired.
func (a *Allocator) Release(off, size uint32) {
	size = roundUp(size)
	if size == 0 {
		return
	}
	i, _ := slices.BinarySearchFunc(a.free, off, func(r region, o uint32) int {
		if r.off < o {
			return -1
		}
		if r.off > o {
			return 1
		}
		return 0
	})
	a.free = slices.Insert(a.free, i, region{off: off, size: size})
	a.coalesce()
}

func (a *Allocator) coalesce() {
	out := a.free[:0]
	for _, r := range a.free {
		if n := len(out); n > 0 && out[n-1].off+out[n-1].size == r.off {
			out[n-1].size += r.size
			continue
		}
		out = append(out, r)
	}
	a.free = out
}

// takeAt reserves size bytes at a fixed offset, failing when the range is
// not entirely free.
func (a *Allocator) takeAt(off, size uint32) bool {
	size = roundUp(size)
	if size == 0 {
		return true
	}
	for i := range a.free {
		r := a.free[i]
		if off >= r.off+r.size {
			continue
		}
		if off < r.off || off+size > r.off+r.size {
			return false
		}
		lead := region{off: r.off, size: off - r.off}
		tail := region{off: off + size, size: r.off + r.size - (off + size)}
		a.free = slices.Delete(a.free, i, i+1)
		if tail.size > 0 {
			a.free = slices.Insert(a.free, i, tail)
		}
		if lead.size > 0 {
			a.free = slices.Insert(a.free, i, lead)
		}
		return true
	}
	return false
}

// takeLow reserves size bytes from the lowest-addressed free range that can
// hold them.
func (a *Allocator) takeLow(size uint32) (uint32, bool) {
	size = roundUp(size)
	if size == 0 {
		return 0, true
	}
	for i := range a.free {
		r := &a.free[i]
		if r.size < size {
			continue
		}
		off := r.off
		r.off += size
		r.size -= size
		if r.size == 0 {
			a.free = slices.Delete(a.free, i, i+1)
		}
		return off, true
	}
	return 0, false
}

// takeHigh reserves size bytes from the end of the highest-addressed free
// range that can hold them.
func (a *Allocator) takeHigh(size uint32) (uint32, bool) {
	size = roundUp(size)
	if size == 0 {
		return 0, true
	}
	for i := len(a.free) - 1; i >= 0; i-- {
		r := &a.free[i]
		if r.size < size {
			continue
		}
		r.size -= size
		off := r.off + r.size
		if r.size == 0 {
			a.free = slices.Delete(a.free, i, i+1)
		}
		return off, true
	}
	return 0, false
}

func roundUp(v uint32) uint32 {
	return ((v + Granule - 1) / Granule) * Granule
}
