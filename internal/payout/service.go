package payout

import (
	"sync/atomic"
)

// LedgerState provides the chain facts both trade parties agree on.
type LedgerState interface {
	// GenesisHeight returns the height of the genesis block.
	GenesisHeight() int

	// FallbackAddress returns the fallback address active at the given
	// snapshot height. Must always resolve.
	FallbackAddress(snapshotHeight int) string
}

// CandidateProvider returns the burning man candidate set at a snapshot
// height, keyed by candidate name. The set for a height is immutable once
// queried (the ledger is append-only).
type CandidateProvider interface {
	CandidatesAt(snapshotHeight int) map[string]Candidate
}

// Service computes the outputs of delayed payout transactions.
// All computations are pure functions of their arguments plus the ledger
// view; the only mutable state is the last observed chain height, written
// by a single height-advance notification and read by any number of
// concurrent trade contexts.
type Service struct {
	ledger      LedgerState
	candidates  CandidateProvider
	chainHeight atomic.Int64 // latest observed tip, single writer
}

// NewService creates a payout service over the given collaborators.
func NewService(ledger LedgerState, candidates CandidateProvider) *Service {
	return &Service{
		ledger:     ledger,
		candidates: candidates,
	}
}

// OnHeightAdvanced records a newly observed chain tip.
// Called by the ledger-progress notification, one writer only.
func (s *Service) OnHeightAdvanced(height int) {
	s.chainHeight.Store(int64(height))
}

// ChainHeight returns the latest observed chain tip.
func (s *Service) ChainHeight() int {
	return int(s.chainHeight.Load())
}

// SelectionHeight returns the current agreement height: the snapshot
// height derived from the latest observed tip. Two parties with tips in
// the same grid window get the same value.
func (s *Service) SelectionHeight() int {
	return SnapshotHeight(s.ledger.GenesisHeight(), s.ChainHeight(), SnapshotGrid)
}

// Receivers computes the ordered output list of the delayed payout
// transaction for a trade. selectionHeight is the agreed snapshot height,
// inputAmount the escrow amount being distributed and tradeTxFee the fee
// of the originating trade transaction. Both parties must call this with
// identical arguments; the result is then byte-identical on both sides.
func (s *Service) Receivers(selectionHeight int, inputAmount, tradeTxFee int64) []Receiver {
	if inputAmount < 0 {
		panic("payout: negative input amount")
	}

	fallback := s.ledger.FallbackAddress(selectionHeight)

	candidates := s.candidates.CandidatesAt(selectionHeight)
	if len(candidates) == 0 {
		// No contributors yet (bootstrap, dev ledgers): the whole input
		// goes to the fallback address, no miner fee reservation.
		return []Receiver{{AmountSat: inputAmount, Address: fallback}}
	}

	feeRate := FeeRatePerVByte(tradeTxFee)
	spendable := SpendableAmount(len(candidates), inputAmount, feeRate)
	minOutput := MinOutputAmount(feeRate)

	return Allocate(candidates, spendable, minOutput, fallback)
}
