package strategy

import "github.com/samcharles93/slate/internal/sram"

// IsStrategyX reports whether the X strategy may be attempted at all for
// this operator. It may supersede an earlier strategy-7 or strategy-FC
// choice, and is only offered when the caller's allowed set contains one of
// those siblings.
func IsStrategyX(operation Operation, cfg *TensorConfig, algorithm Algorithm, allowed StrategySet) bool {
	supportedOperation := operation == OpConvolution || operation == OpFullyConnected
	supportedAlgorithm := algorithm == AlgorithmDirect
	supportedCurrent := cfg.Strategy == Strategy7 || cfg.Strategy == StrategyFC || cfg.Strategy == StrategyNone
	allowedHere := allowed.ContainsAny(Strategy7, StrategyFC)
	return supportedOperation && supportedAlgorithm && supportedCurrent && allowedHere
}

// TryStrategyX runs the whole-channel traversal first (cheaper, and the only
// one fully-connected operators can use), then falls back to the
// channel-split traversal. On success cfg holds the complete tiling and
// alloc has advanced past the reserved tiles; on failure both are untouched.
func TryStrategyX(op *Operator, cfg *TensorConfig, alloc *sram.Allocator) bool {
	s := newSearch(op)
	if s.tryInputXYOutputXYZ(cfg, alloc) {
		return true
	}
	if s.tryInputZXYOutputXYZ(cfg, alloc) {
		return true
	}
	return false
}
