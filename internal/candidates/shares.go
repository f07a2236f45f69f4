package candidates

import (
	"fmt"
	"sort"

	"burnshare/internal/payout"
)

const (
	// decayBlocks is the retention window: a burn's weight fades linearly
	// to zero this many blocks after it was recorded, so stale
	// contributors stop receiving payouts without any record deletion.
	decayBlocks = 100800

	// maxBurnShare caps any single candidate's fraction of the pool.
	// Capped excess is not redistributed; it surfaces as the allocation
	// shortfall and flows to the fallback address or the miner fee.
	maxBurnShare = 0.11
)

// Provider derives the burning man candidate set from the record store.
// The result for a given snapshot height never changes: records are
// append-only and only records at or below the height contribute.
type Provider struct {
	store *Store
}

// NewProvider creates a candidate provider over the given record store.
func NewProvider(store *Store) *Provider {
	return &Provider{store: store}
}

// CandidatesAt returns the candidate set at a snapshot height, keyed by
// candidate name. A candidate's share is its decayed burn total over the
// all-candidate decayed total, capped at maxBurnShare; its address is the
// most recently registered one at or below the height.
//
// Panics if the store cannot be read: a local store failure must not
// masquerade as an empty candidate set, which would silently diverge
// from the peer's computation.
func (p *Provider) CandidatesAt(snapshotHeight int) map[string]payout.Candidate {
	records, err := p.store.RecordsUpTo(snapshotHeight)
	if err != nil {
		panic(fmt.Sprintf("candidates: read records: %v", err))
	}

	weights := make(map[string]float64)
	addresses := make(map[string]string)

	for _, rec := range records {
		weights[rec.Name] += decayedWeight(rec.AmountSat, rec.Height, snapshotHeight)

		// Records arrive in height order; the last non-empty address wins
		if rec.Address != "" {
			addresses[rec.Name] = rec.Address
		}
	}

	names := make([]string, 0, len(weights))
	for name, w := range weights {
		if w == 0 {
			// Fully decayed candidates drop out entirely
			delete(weights, name)
			continue
		}
		names = append(names, name)
	}

	// Float addition is not associative, so the total must be accumulated
	// in a fixed order. Ranging over the map would follow Go's randomized
	// iteration and the two parties could disagree at the last ulp.
	sort.Strings(names)

	var total float64
	for _, name := range names {
		total += weights[name]
	}

	if total == 0 {
		return nil
	}

	result := make(map[string]payout.Candidate, len(weights))
	for name, w := range weights {
		share := w / total
		if share > maxBurnShare {
			share = maxBurnShare
		}

		result[name] = payout.Candidate{
			BurnOutputShare: share,
			Address:         addresses[name],
		}
	}

	return result
}

// decayedWeight is a burn's contribution at a snapshot height: the full
// amount when fresh, fading linearly to zero over decayBlocks.
func decayedWeight(amountSat int64, recordHeight, snapshotHeight int) float64 {
	age := snapshotHeight - recordHeight
	if age < 0 || age >= decayBlocks {
		return 0
	}

	return float64(amountSat) * (1 - float64(age)/decayBlocks)
}
