package payout

import "testing"

func TestSnapshotHeight(t *testing.T) {
	cases := []struct {
		genesis, current, grid int
		want                   int
	}{
		{0, 139, 10, 120},
		{0, 140, 10, 130},
		{0, 141, 10, 130},
		{0, 149, 10, 130},
		{0, 150, 10, 140},
		// Tip below the lower bound: clamped to genesis + 3*grid
		{0, 0, 10, 20},
		{0, 25, 10, 20},
		{102, 105, 10, 120},
		// Non-zero genesis past the lower bound
		{100, 241, 10, 230},
	}

	for _, c := range cases {
		got := SnapshotHeight(c.genesis, c.current, c.grid)
		if got != c.want {
			t.Errorf("SnapshotHeight(%d, %d, %d) = %d, want %d", c.genesis, c.current, c.grid, got, c.want)
		}
	}
}

func TestSnapshotHeightIdempotent(t *testing.T) {
	a := SnapshotHeight(0, 4717, 10)
	b := SnapshotHeight(0, 4717, 10)

	if a != b {
		t.Errorf("not idempotent: %d vs %d", a, b)
	}
}

func TestSnapshotHeightOnGrid(t *testing.T) {
	// Result is always a multiple of the grid
	for current := 0; current < 500; current++ {
		got := SnapshotHeight(0, current, 10)
		if got%10 != 0 {
			t.Fatalf("SnapshotHeight(0, %d, 10) = %d, not on grid", current, got)
		}
	}
}

func TestSnapshotHeightBehindTip(t *testing.T) {
	// Past the lower bound the snapshot trails the tip by 1-2 grids
	for current := 100; current < 500; current++ {
		got := SnapshotHeight(0, current, 10)

		lag := current - got
		if lag < 1 || lag > 20 {
			t.Fatalf("SnapshotHeight(0, %d, 10) = %d, lag %d outside (0, 20]", current, got, lag)
		}
	}
}

func TestSnapshotHeightPanicsOnBadGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for grid 0")
		}
	}()

	SnapshotHeight(0, 100, 0)
}
