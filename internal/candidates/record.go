package candidates

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"burnshare/internal/types"
)

// BurnRecord is one fee-burning contribution visible in the ledger.
// Records are append-only: the set at or below a height never changes.
type BurnRecord struct {
	Name      string // Name identifies the candidate across records
	Address   string // Address is the payout address registered with the burn, may be empty
	AmountSat int64  // AmountSat is the burned amount in sat
	Height    int    // Height is the ledger height the burn was recorded at
}

// encodeRecord serializes a record to its flatbuffers form.
func encodeRecord(rec BurnRecord) []byte {
	builder := flatbuffers.NewBuilder(128)

	name := builder.CreateString(rec.Name)
	address := builder.CreateString(rec.Address)

	types.BurnRecordStart(builder)
	types.BurnRecordAddName(builder, name)
	types.BurnRecordAddAddress(builder, address)
	types.BurnRecordAddAmountSat(builder, rec.AmountSat)
	types.BurnRecordAddHeight(builder, int32(rec.Height))
	offset := types.BurnRecordEnd(builder)
	builder.Finish(offset)

	return builder.FinishedBytes()
}

// decodeRecord reads a record from its flatbuffers form.
func decodeRecord(data []byte) BurnRecord {
	rec := types.GetRootAsBurnRecord(data, 0)

	return BurnRecord{
		Name:      string(rec.Name()),
		Address:   string(rec.Address()),
		AmountSat: rec.AmountSat(),
		Height:    int(rec.Height()),
	}
}
