package payout

import (
	"reflect"
	"testing"
)

// fakeLedger is a LedgerState with fixed answers.
type fakeLedger struct {
	genesis  int
	fallback string
}

func (f *fakeLedger) GenesisHeight() int { return f.genesis }

func (f *fakeLedger) FallbackAddress(snapshotHeight int) string { return f.fallback }

// fakeCandidates returns the same candidate set for every height.
type fakeCandidates struct {
	set map[string]Candidate
}

func (f *fakeCandidates) CandidatesAt(snapshotHeight int) map[string]Candidate { return f.set }

func TestServiceSelectionHeight(t *testing.T) {
	svc := NewService(&fakeLedger{genesis: 0, fallback: fallbackAddr}, &fakeCandidates{})

	svc.OnHeightAdvanced(141)
	if got := svc.SelectionHeight(); got != 130 {
		t.Errorf("at tip 141: got %d, want 130", got)
	}

	svc.OnHeightAdvanced(139)
	if got := svc.SelectionHeight(); got != 120 {
		t.Errorf("at tip 139: got %d, want 120", got)
	}

	// Before any height notification the tip is zero and the selection
	// height sits at the genesis lower bound
	fresh := NewService(&fakeLedger{genesis: 0, fallback: fallbackAddr}, &fakeCandidates{})
	if got := fresh.SelectionHeight(); got != 20 {
		t.Errorf("fresh service: got %d, want 20", got)
	}
}

func TestServiceReceiversEmptySet(t *testing.T) {
	svc := NewService(&fakeLedger{fallback: fallbackAddr}, &fakeCandidates{})

	got := svc.Receivers(130, 500000, 2780)

	want := []Receiver{{AmountSat: 500000, Address: fallbackAddr}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestServiceReceivers(t *testing.T) {
	candidates := &fakeCandidates{set: map[string]Candidate{
		"alice": {BurnOutputShare: 0.6, Address: "addrA"},
		"bob":   {BurnOutputShare: 0.4, Address: "addrB"},
	}}
	svc := NewService(&fakeLedger{fallback: fallbackAddr}, candidates)

	// Fee rate 10 (floor), 2 candidates: spendable = 100000 - 10*(51+64)
	got := svc.Receivers(130, 100000, 2780)

	want := []Receiver{
		{AmountSat: 39540, Address: "addrB"},
		{AmountSat: 59310, Address: "addrA"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestServiceReceiversDeterministic(t *testing.T) {
	candidates := &fakeCandidates{set: map[string]Candidate{
		"a": {BurnOutputShare: 0.41, Address: "addr1"},
		"b": {BurnOutputShare: 0.35, Address: "addr2"},
		"c": {BurnOutputShare: 0.2, Address: "addr3"},
	}}
	svc := NewService(&fakeLedger{fallback: fallbackAddr}, candidates)

	first := svc.Receivers(130, 1234567, 4000)
	firstDigest := ReceiversDigest(first)

	for i := 0; i < 20; i++ {
		got := svc.Receivers(130, 1234567, 4000)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %v vs %v", i, got, first)
		}

		if ReceiversDigest(got) != firstDigest {
			t.Fatalf("run %d digest diverged", i)
		}
	}
}

func TestReceiversDigestDistinguishes(t *testing.T) {
	a := []Receiver{{AmountSat: 100, Address: "x"}, {AmountSat: 200, Address: "y"}}
	b := []Receiver{{AmountSat: 100, Address: "x"}, {AmountSat: 200, Address: "z"}}
	c := []Receiver{{AmountSat: 200, Address: "y"}, {AmountSat: 100, Address: "x"}}

	if ReceiversDigest(a) == ReceiversDigest(b) {
		t.Error("different addresses hashed equal")
	}

	// Order is part of the agreement, so it is part of the digest
	if ReceiversDigest(a) == ReceiversDigest(c) {
		t.Error("different order hashed equal")
	}

	if ReceiversDigest(a) != ReceiversDigest(a) {
		t.Error("digest not deterministic")
	}
}

func TestServiceReceiversPanicsOnNegativeInput(t *testing.T) {
	svc := NewService(&fakeLedger{fallback: fallbackAddr}, &fakeCandidates{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative input amount")
		}
	}()

	svc.Receivers(130, -1, 2780)
}
