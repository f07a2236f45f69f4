package export

import (
	"bytes"
	"encoding/binary"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"burnshare/internal/candidates"
	"burnshare/internal/logger"
	"burnshare/internal/storage"
	"burnshare/internal/types"
)

// snapshotVersion is the current snapshot format version.
const snapshotVersion = 1

// recordEntry holds one store entry destined for a snapshot.
type recordEntry struct {
	key  []byte
	data []byte
}

// Export serializes every burn record at or below the given snapshot
// height into a checksummed snapshot. Records are emitted in key order,
// so two parties with the same ledger view produce byte-identical
// snapshots.
func Export(db *storage.Store, snapshotHeight int) ([]byte, error) {
	entries, err := collectRecords(db, snapshotHeight)
	if err != nil {
		return nil, fmt.Errorf("collect records:\n%w", err)
	}

	data := buildSnapshot(snapshotHeight, entries)

	logger.Info("snapshot exported",
		"height", snapshotHeight,
		"records", len(entries),
		"bytes", len(data),
	)

	return data, nil
}

// Import verifies a snapshot's checksum and writes its records into the
// store in one atomic batch. Nothing is written if verification fails.
func Import(db *storage.Store, data []byte) (int, error) {
	snapshot := types.GetRootAsSnapshot(data, 0)

	if snapshot.Version() != snapshotVersion {
		return 0, fmt.Errorf("unsupported snapshot version %d", snapshot.Version())
	}

	entries := make([]recordEntry, snapshot.RecordsLength())

	var rec types.SnapshotRecord
	for i := range entries {
		if !snapshot.Records(&rec, i) {
			return 0, fmt.Errorf("missing record %d", i)
		}

		key := make([]byte, len(rec.KeyBytes()))
		copy(key, rec.KeyBytes())

		value := make([]byte, len(rec.DataBytes()))
		copy(value, rec.DataBytes())

		entries[i] = recordEntry{key: key, data: value}
	}

	checksum := computeChecksum(int(snapshot.Height()), entries)
	if !bytes.Equal(checksum[:], snapshot.ChecksumBytes()) {
		return 0, fmt.Errorf("checksum mismatch")
	}

	pairs := make([]storage.KeyValue, len(entries))
	for i, e := range entries {
		pairs[i] = storage.KeyValue{Key: e.key, Value: e.data}
	}

	if err := db.SetBatch(pairs); err != nil {
		return 0, fmt.Errorf("write records:\n%w", err)
	}

	logger.Info("snapshot imported",
		"height", snapshot.Height(),
		"records", len(entries),
	)

	return len(entries), nil
}

// Compress compresses snapshot data with zstd for transfer.
func Compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create encoder:\n%w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create decoder:\n%w", err)
	}
	defer decoder.Close()

	return decoder.DecodeAll(data, nil)
}

// collectRecords reads burn-record entries up to the snapshot height,
// in key order (height, then insertion order).
func collectRecords(db *storage.Store, snapshotHeight int) ([]recordEntry, error) {
	var entries []recordEntry

	err := db.IteratePrefix(candidates.RecordPrefix, func(key, value []byte) error {
		if candidates.RecordKeyHeight(key) > snapshotHeight {
			return nil
		}

		// Copy key and value to outlive the iterator
		keyCopy := make([]byte, len(key))
		copy(keyCopy, key)

		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)

		entries = append(entries, recordEntry{key: keyCopy, data: valueCopy})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// buildSnapshot assembles the flatbuffers snapshot with its checksum.
func buildSnapshot(snapshotHeight int, entries []recordEntry) []byte {
	checksum := computeChecksum(snapshotHeight, entries)

	builder := flatbuffers.NewBuilder(1024)

	recordOffsets := make([]flatbuffers.UOffsetT, len(entries))
	for i, e := range entries {
		keyOffset := builder.CreateByteVector(e.key)
		dataOffset := builder.CreateByteVector(e.data)

		types.SnapshotRecordStart(builder)
		types.SnapshotRecordAddKey(builder, keyOffset)
		types.SnapshotRecordAddData(builder, dataOffset)
		recordOffsets[i] = types.SnapshotRecordEnd(builder)
	}

	types.SnapshotStartRecordsVector(builder, len(recordOffsets))
	for i := len(recordOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(recordOffsets[i])
	}
	recordsVector := builder.EndVector(len(recordOffsets))

	checksumOffset := builder.CreateByteVector(checksum[:])

	types.SnapshotStart(builder)
	types.SnapshotAddVersion(builder, snapshotVersion)
	types.SnapshotAddHeight(builder, int64(snapshotHeight))
	types.SnapshotAddChecksum(builder, checksumOffset)
	types.SnapshotAddRecords(builder, recordsVector)
	offset := types.SnapshotEnd(builder)
	builder.Finish(offset)

	return builder.FinishedBytes()
}

// computeChecksum hashes the canonical snapshot content.
// Format: version (4 bytes) + height (8 bytes) + for each record in
// order: key length (4 bytes) + key + data length (4 bytes) + data.
func computeChecksum(snapshotHeight int, entries []recordEntry) [32]byte {
	hasher := blake3.New()

	var buf [8]byte
	binary.BigEndian.PutUint32(buf[:4], snapshotVersion)
	hasher.Write(buf[:4])

	binary.BigEndian.PutUint64(buf[:], uint64(snapshotHeight))
	hasher.Write(buf[:])

	for _, e := range entries {
		binary.BigEndian.PutUint32(buf[:4], uint32(len(e.key)))
		hasher.Write(buf[:4])
		hasher.Write(e.key)

		binary.BigEndian.PutUint32(buf[:4], uint32(len(e.data)))
		hasher.Write(buf[:4])
		hasher.Write(e.data)
	}

	var checksum [32]byte
	hasher.Sum(checksum[:0])

	return checksum
}
