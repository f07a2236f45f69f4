package payout

import "math"

const (
	// minFeeRate is the floor fee rate in sat/vbyte for the delayed payout tx.
	// The tx is broadcast long after the originating fee rate was observed, so
	// a low observed rate must not produce a tx that gets stuck on a fee spike.
	minFeeRate = 10

	// referenceTxSize is the assumed size in vbytes of the largest expected
	// originating transaction shape. Using a fixed reference instead of the
	// actual size keeps both parties' fee rate identical without exchanging
	// transaction details. Smallest shape is 246, plus 32 for an optional
	// change output.
	referenceTxSize = 278

	// baseTxSize is the delayed payout tx size in vbytes without outputs.
	baseTxSize = 51

	// outputSize is the per-output size in vbytes.
	outputSize = 32

	// minOutputFloor is the absolute minimum output amount in sat.
	minOutputFloor = 1000

	// remainderToFallbackThreshold is the smallest shortfall in sat worth
	// sending to the fallback address. Anything at or below it is spent as
	// additional miner fee instead. Kept high so the fallback rarely
	// receives payouts.
	remainderToFallbackThreshold = 50000
)

// roundHalfUp rounds to the nearest integer with halves rounding up.
// Protocol constant: both parties must round identically or their
// transactions diverge. Not banker's rounding.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// FeeRatePerVByte derives the fee rate in sat/vbyte from the originating
// transaction's fee, assuming the fixed reference transaction size.
// Never below minFeeRate.
func FeeRatePerVByte(tradeTxFee int64) int64 {
	rate := roundHalfUp(float64(tradeTxFee) / referenceTxSize)
	if rate < minFeeRate {
		return minFeeRate
	}

	return rate
}

// SpendableAmount returns the amount left for distribution after reserving
// the miner fee for a transaction with numOutputs outputs at feeRate.
func SpendableAmount(numOutputs int, inputAmount, feeRate int64) int64 {
	txSize := int64(baseTxSize + numOutputs*outputSize)
	minerFee := feeRate * txSize

	return inputAmount - minerFee
}

// MinOutputAmount returns the dust threshold for a computation at feeRate.
// An output must be worth at least twice its own marginal byte cost,
// and never less than the absolute floor.
func MinOutputAmount(feeRate int64) int64 {
	costBased := feeRate * outputSize * 2
	if costBased < minOutputFloor {
		return minOutputFloor
	}

	return costBased
}
