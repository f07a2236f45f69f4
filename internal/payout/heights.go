package payout

// SnapshotGrid is the width of the agreement window in blocks.
// Both trade parties quantize their observed tip onto this grid.
const SnapshotGrid = 10

// SnapshotHeight quantizes a chain height onto the agreement grid.
// The result is the last multiple of grid from the range 1-2 grids below
// the tip (139 -> 120, 140 -> 130, 141 -> 130 for grid 10, genesis 0), so
// two parties that observed the chain at slightly different heights still
// land on the same height. The result never falls below genesis + 2*grid,
// which keeps the snapshot clear of the near-empty early ledger.
//
// This is a cross-party agreement primitive: both sides must compute the
// exact same value. Panics if grid <= 0.
func SnapshotHeight(genesisHeight, currentHeight, grid int) int {
	if grid <= 0 {
		panic("payout: snapshot grid must be positive")
	}

	base := genesisHeight + 3*grid
	if currentHeight > base {
		base = currentHeight
	}

	return base/grid*grid - grid
}
