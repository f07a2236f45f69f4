package candidates

import (
	"math"
	"testing"
)

func TestCandidatesAtProportionalShares(t *testing.T) {
	s := newTestStore(t)

	// Two dominant burners: both raw shares exceed the cap
	for _, r := range []BurnRecord{
		{Name: "alice", Address: "addrA", AmountSat: 6000, Height: 100},
		{Name: "bob", Address: "addrB", AmountSat: 4000, Height: 100},
	} {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got := NewProvider(s).CandidatesAt(100)

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}

	if got["alice"].BurnOutputShare != maxBurnShare {
		t.Errorf("alice share = %v, want capped %v", got["alice"].BurnOutputShare, maxBurnShare)
	}

	if got["bob"].BurnOutputShare != maxBurnShare {
		t.Errorf("bob share = %v, want capped %v", got["bob"].BurnOutputShare, maxBurnShare)
	}
}

func TestCandidatesAtShareCap(t *testing.T) {
	s := newTestStore(t)

	// Twenty equal burners: each share is 0.05, below the cap
	names := []string{
		"n01", "n02", "n03", "n04", "n05", "n06", "n07", "n08", "n09", "n10",
		"n11", "n12", "n13", "n14", "n15", "n16", "n17", "n18", "n19", "n20",
	}
	for _, name := range names {
		if err := s.Append(BurnRecord{Name: name, Address: "addr-" + name, AmountSat: 1000, Height: 100}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got := NewProvider(s).CandidatesAt(100)

	for name, c := range got {
		if math.Abs(c.BurnOutputShare-0.05) > 1e-9 {
			t.Errorf("%s share = %v, want 0.05", name, c.BurnOutputShare)
		}
	}
}

func TestCandidatesAtDecay(t *testing.T) {
	s := newTestStore(t)

	// Equal burn amounts, but bob's is half a window older
	if err := s.Append(BurnRecord{Name: "bob", Address: "addrB", AmountSat: 1000, Height: 0}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append(BurnRecord{Name: "alice", Address: "addrA", AmountSat: 1000, Height: decayBlocks / 2}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got := NewProvider(s).CandidatesAt(decayBlocks / 2)

	// alice weight 1000, bob weight 500: shares would be 2/3 vs 1/3 but
	// both get capped; compare the underlying weights instead
	wantAlice := decayedWeight(1000, decayBlocks/2, decayBlocks/2)
	wantBob := decayedWeight(1000, 0, decayBlocks/2)

	if wantAlice != 1000 {
		t.Errorf("fresh weight = %v, want 1000", wantAlice)
	}

	if wantBob != 500 {
		t.Errorf("half-aged weight = %v, want 500", wantBob)
	}

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
}

func TestCandidatesAtFullyDecayedExcluded(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(BurnRecord{Name: "old", Address: "addrO", AmountSat: 1000, Height: 0}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append(BurnRecord{Name: "new", Address: "addrN", AmountSat: 1000, Height: decayBlocks}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got := NewProvider(s).CandidatesAt(decayBlocks)

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}

	if _, ok := got["new"]; !ok {
		t.Error("fresh candidate missing")
	}
}

func TestCandidatesAtMostRecentAddressWins(t *testing.T) {
	s := newTestStore(t)

	for _, r := range []BurnRecord{
		{Name: "alice", Address: "old-addr", AmountSat: 1000, Height: 100},
		{Name: "alice", Address: "new-addr", AmountSat: 1000, Height: 200},
		{Name: "alice", Address: "future-addr", AmountSat: 1000, Height: 300},
	} {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	// At height 250 the height-300 record is invisible
	got := NewProvider(s).CandidatesAt(250)

	if got["alice"].Address != "new-addr" {
		t.Errorf("address = %q, want new-addr", got["alice"].Address)
	}
}

func TestCandidatesAtNoAddressRegistered(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(BurnRecord{Name: "anon", Address: "", AmountSat: 1000, Height: 100}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got := NewProvider(s).CandidatesAt(100)

	// The candidate exists but has no payout address; the allocator
	// excludes it downstream
	c, ok := got["anon"]
	if !ok {
		t.Fatal("candidate missing")
	}

	if c.Address != "" {
		t.Errorf("address = %q, want empty", c.Address)
	}
}

func TestCandidatesAtBitwiseDeterministic(t *testing.T) {
	s := newTestStore(t)

	// One huge and two tiny burns: summing the weights in different orders
	// would flip the tiny shares at the last ulp. Both parties must get
	// bit-identical shares or the allocator can round to different sats.
	for _, r := range []BurnRecord{
		{Name: "whale", Address: "addrW", AmountSat: 10_000_000_000_000_000, Height: 100},
		{Name: "tiny1", Address: "addrT1", AmountSat: 1, Height: 100},
		{Name: "tiny2", Address: "addrT2", AmountSat: 1, Height: 100},
	} {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	p := NewProvider(s)
	first := p.CandidatesAt(100)

	for i := 0; i < 200; i++ {
		got := p.CandidatesAt(100)
		for name, c := range got {
			if math.Float64bits(c.BurnOutputShare) != math.Float64bits(first[name].BurnOutputShare) {
				t.Fatalf("run %d: share for %q diverged: %.20g vs %.20g",
					i, name, c.BurnOutputShare, first[name].BurnOutputShare)
			}
		}
	}
}

func TestCandidatesAtEmptyStore(t *testing.T) {
	s := newTestStore(t)

	if got := NewProvider(s).CandidatesAt(100); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestCandidatesAtImmutableView(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(BurnRecord{Name: "alice", Address: "addrA", AmountSat: 1000, Height: 100}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	before := NewProvider(s).CandidatesAt(130)

	// Later records must not change the view at an earlier height
	if err := s.Append(BurnRecord{Name: "bob", Address: "addrB", AmountSat: 9000, Height: 131}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	after := NewProvider(s).CandidatesAt(130)

	if len(before) != len(after) {
		t.Fatalf("view changed: %v vs %v", before, after)
	}

	if before["alice"].BurnOutputShare != after["alice"].BurnOutputShare {
		t.Errorf("share changed: %v vs %v", before["alice"], after["alice"])
	}
}
