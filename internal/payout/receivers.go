package payout

import "sort"

// Candidate is a fee-burning contributor eligible for a payout share.
// The share is already capped and boosted by the candidate provider's
// policy; this package only turns shares into concrete outputs.
type Candidate struct {
	// BurnOutputShare is the candidate's fraction of the distributable
	// pool, in [0,1].
	BurnOutputShare float64

	// Address is the candidate's most recent payout address. Empty if the
	// contributor never registered one, in which case the candidate is
	// excluded and its share flows into the shortfall.
	Address string
}

// Receiver is one output of the delayed payout transaction.
// Equality is structural; the pair is the whole identity.
type Receiver struct {
	AmountSat int64  // AmountSat is the output amount in sat
	Address   string // Address is the destination address
}

// Allocate converts candidate shares into the ordered output list of the
// delayed payout transaction. Both parties must call it with identical
// arguments and get identical results.
//
// Candidates without an address are excluded. Amounts below minOutput are
// dropped as dust. Survivors are sorted ascending by (amount, address).
// Whatever the surviving outputs leave unspent of spendableAmount goes to
// the fallback address as one appended receiver if it exceeds the
// fallback threshold, otherwise it is burned as extra miner fee. If
// rounding makes the outputs overshoot spendableAmount instead, the excess
// is trimmed from the largest output, so the sum never exceeds the pool.
//
// An empty candidate set allocates everything to the fallback address
// (bootstrap state, no contributors yet). Panics on a share outside [0,1]
// or a negative spendableAmount: those are contract violations, and
// clamping them silently could make the two parties diverge.
func Allocate(candidates map[string]Candidate, spendableAmount, minOutput int64, fallbackAddress string) []Receiver {
	if spendableAmount < 0 {
		panic("payout: negative spendable amount")
	}

	if len(candidates) == 0 {
		return []Receiver{{AmountSat: spendableAmount, Address: fallbackAddress}}
	}

	receivers := make([]Receiver, 0, len(candidates))

	for _, c := range candidates {
		if c.BurnOutputShare < 0 || c.BurnOutputShare > 1 {
			panic("payout: burn output share outside [0,1]")
		}

		if c.Address == "" {
			continue
		}

		amount := roundHalfUp(c.BurnOutputShare * float64(spendableAmount))
		if amount < minOutput {
			continue
		}

		receivers = append(receivers, Receiver{AmountSat: amount, Address: c.Address})
	}

	// Sort by (amount, address) ascending. The input is a map, so without
	// this the order would follow Go's randomized map iteration and the
	// two parties would build different transactions. Equal amounts are
	// legitimate; the address comparison breaks them.
	sortReceivers(receivers)

	var total int64
	for _, r := range receivers {
		total += r.AmountSat
	}

	// When the shares sum to 1, per-output rounding can overshoot the pool
	// by up to one sat per receiver, which on-chain would be an invalid
	// transaction. Take the excess out of the largest output and restore
	// the amount ordering.
	if excess := total - spendableAmount; excess > 0 {
		receivers[len(receivers)-1].AmountSat -= excess
		sortReceivers(receivers)
		total = spendableAmount
	}

	// Excluded candidates, dust and share capping all surface here as the
	// shortfall. Appended, not re-sorted: the remainder entry is part of
	// the agreed ordering.
	if shortfall := spendableAmount - total; shortfall > remainderToFallbackThreshold {
		receivers = append(receivers, Receiver{AmountSat: shortfall, Address: fallbackAddress})
	}

	return receivers
}

func sortReceivers(receivers []Receiver) {
	sort.Slice(receivers, func(i, j int) bool {
		if receivers[i].AmountSat != receivers[j].AmountSat {
			return receivers[i].AmountSat < receivers[j].AmountSat
		}

		return receivers[i].Address < receivers[j].Address
	})
}
