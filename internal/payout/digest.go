package payout

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// ReceiversDigest hashes an ordered receiver list into a 32-byte digest.
// Parties exchange digests before signing to cheaply confirm they computed
// identical outputs. Canonical form: for each receiver in list order,
// 8-byte big-endian amount, 4-byte big-endian address length, address bytes.
func ReceiversDigest(receivers []Receiver) [32]byte {
	hasher := blake3.New()

	var buf [8]byte
	for _, r := range receivers {
		binary.BigEndian.PutUint64(buf[:], uint64(r.AmountSat))
		hasher.Write(buf[:])

		binary.BigEndian.PutUint32(buf[:4], uint32(len(r.Address)))
		hasher.Write(buf[:4])
		hasher.Write([]byte(r.Address))
	}

	var digest [32]byte
	hasher.Sum(digest[:0])

	return digest
}
