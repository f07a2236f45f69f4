package candidates

import (
	"encoding/binary"
	"errors"
	"fmt"

	"burnshare/internal/logger"
	"burnshare/internal/storage"
)

// RecordPrefix is the store key prefix for burn records. Keys embed the
// height big-endian so prefix iteration visits records in height order,
// then insertion order within a height.
var RecordPrefix = []byte("b:")

// errStop ends a prefix iteration early once past the target height.
var errStop = errors.New("stop iteration")

// Store appends and reads burn records. One writer (the ledger parser),
// many readers.
type Store struct {
	db  *storage.Store
	seq uint32 // next record sequence, single writer
}

// NewStore opens the record store. The sequence counter is derived from
// the highest existing record key, so it stays correct after a snapshot
// import as well as after a restart.
func NewStore(db *storage.Store) (*Store, error) {
	s := &Store{db: db}

	err := db.IteratePrefix(RecordPrefix, func(key, value []byte) error {
		if seq := recordKeySeq(key); seq >= s.seq {
			s.seq = seq + 1
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("derive sequence:\n%w", err)
	}

	return s, nil
}

// Append stores a burn record under the next sequence number.
// Panics on a non-positive amount or negative height: records come from
// the validated ledger, anything else is a programming error.
func (s *Store) Append(rec BurnRecord) error {
	if rec.AmountSat <= 0 {
		panic("candidates: non-positive burn amount")
	}
	if rec.Height < 0 {
		panic("candidates: negative record height")
	}

	key := recordKey(rec.Height, s.seq)

	if err := s.db.Set(key, encodeRecord(rec)); err != nil {
		return fmt.Errorf("append record:\n%w", err)
	}

	s.seq++

	logger.Debug("burn record appended",
		"name", rec.Name,
		"amount", rec.AmountSat,
		"height", rec.Height,
	)

	return nil
}

// RecordsUpTo returns all records with height at or below the given
// height, in height order then insertion order.
func (s *Store) RecordsUpTo(height int) ([]BurnRecord, error) {
	var records []BurnRecord

	err := s.db.IteratePrefix(RecordPrefix, func(key, value []byte) error {
		if RecordKeyHeight(key) > height {
			return errStop
		}

		records = append(records, decodeRecord(value))

		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}

	return records, nil
}

// recordKey builds the store key for a record: prefix, 8-byte big-endian
// height, 4-byte big-endian sequence.
func recordKey(height int, seq uint32) []byte {
	key := make([]byte, len(RecordPrefix)+12)
	copy(key, RecordPrefix)
	binary.BigEndian.PutUint64(key[len(RecordPrefix):], uint64(height))
	binary.BigEndian.PutUint32(key[len(RecordPrefix)+8:], seq)

	return key
}

// RecordKeyHeight extracts the height from a record key.
func RecordKeyHeight(key []byte) int {
	return int(binary.BigEndian.Uint64(key[len(RecordPrefix):]))
}

// recordKeySeq extracts the sequence number from a record key.
func recordKeySeq(key []byte) uint32 {
	return binary.BigEndian.Uint32(key[len(RecordPrefix)+8:])
}
