package payout

import "testing"

func TestFeeRatePerVByte(t *testing.T) {
	// 2780 sat over the 278 vbyte reference tx = 10 sat/vbyte
	if got := FeeRatePerVByte(2780); got != 10 {
		t.Errorf("got %d, want 10", got)
	}

	// Higher originating fee raises the rate
	if got := FeeRatePerVByte(8340); got != 30 {
		t.Errorf("got %d, want 30", got)
	}

	// Low fee clamps to the floor rate
	if got := FeeRatePerVByte(278); got != minFeeRate {
		t.Errorf("got %d, want floor %d", got, minFeeRate)
	}

	if got := FeeRatePerVByte(0); got != minFeeRate {
		t.Errorf("zero fee: got %d, want floor %d", got, minFeeRate)
	}
}

func TestFeeRateRoundsHalfUp(t *testing.T) {
	// 4309/278 = 15.5: half rounds up, not to even
	if got := FeeRatePerVByte(4309); got != 16 {
		t.Errorf("got %d, want 16", got)
	}

	// 4170/278 = 15.0 exactly
	if got := FeeRatePerVByte(4170); got != 15 {
		t.Errorf("got %d, want 15", got)
	}
}

func TestSpendableAmount(t *testing.T) {
	// 2 outputs: txSize = 51 + 2*32 = 115, fee = 10*115 = 1150
	if got := SpendableAmount(2, 100000, 10); got != 98850 {
		t.Errorf("got %d, want 98850", got)
	}

	// No outputs still pays the base size
	if got := SpendableAmount(0, 100000, 10); got != 99490 {
		t.Errorf("got %d, want 99490", got)
	}
}

func TestMinOutputAmount(t *testing.T) {
	// Low rate: the absolute floor wins (10*32*2 = 640 < 1000)
	if got := MinOutputAmount(10); got != 1000 {
		t.Errorf("got %d, want 1000", got)
	}

	// High rate: twice the marginal output cost wins
	if got := MinOutputAmount(50); got != 3200 {
		t.Errorf("got %d, want 3200", got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0.4, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{2.4999, 2},
		{0, 0},
	}

	for _, c := range cases {
		if got := roundHalfUp(c.in); got != c.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
