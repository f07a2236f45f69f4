package ledger

import (
	"encoding/binary"
	"fmt"
	"sort"
	"sync/atomic"

	"burnshare/internal/logger"
	"burnshare/internal/storage"
)

// tipKey is the store key holding the last observed chain tip.
var tipKey = []byte("m:tip")

// FallbackEntry activates a fallback address from a given height.
// The rotation is protocol-defined: every party carries the same table.
type FallbackEntry struct {
	Height  int    // Height is the activation height, inclusive
	Address string // Address is the fallback address active from Height on
}

// Ledger holds the chain facts both trade parties must agree on: the
// genesis height, the last observed tip and the fallback address
// rotation. The tip is advanced by a single writer (the chain listener)
// and read by any number of trade contexts.
type Ledger struct {
	db      *storage.Store
	genesis int
	history []FallbackEntry // sorted ascending by activation height
	tip     atomic.Int64

	// onTipAdvanced fires after a new tip is recorded.
	onTipAdvanced func(height int)
}

// New creates a ledger over the given store. The fallback history must be
// non-empty so a fallback address always resolves; it is sorted by
// activation height here, callers may pass it in any order. A previously
// persisted tip is restored.
func New(db *storage.Store, genesisHeight int, history []FallbackEntry) (*Ledger, error) {
	if len(history) == 0 {
		panic("ledger: empty fallback history")
	}

	sorted := make([]FallbackEntry, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Height < sorted[j].Height
	})

	l := &Ledger{
		db:      db,
		genesis: genesisHeight,
		history: sorted,
	}

	tip, err := loadTip(db)
	if err != nil {
		return nil, fmt.Errorf("load tip:\n%w", err)
	}
	l.tip.Store(int64(tip))

	return l, nil
}

// SetOnTipAdvanced registers the callback fired after each tip advance.
// Used to fan the height notification out to the payout service.
func (l *Ledger) SetOnTipAdvanced(fn func(height int)) {
	l.onTipAdvanced = fn
}

// GenesisHeight returns the height of the genesis block.
func (l *Ledger) GenesisHeight() int {
	return l.genesis
}

// Tip returns the last observed chain tip.
func (l *Ledger) Tip() int {
	return int(l.tip.Load())
}

// AdvanceTip records a newly observed chain tip and persists it so a
// restart resumes from the same view. Heights at or below the current
// tip are ignored (reorg handling lives with the chain source, not here).
func (l *Ledger) AdvanceTip(height int) error {
	if height <= l.Tip() {
		logger.Debug("ignoring stale tip", "height", height, "tip", l.Tip())
		return nil
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(height))

	if err := l.db.Set(tipKey, buf[:]); err != nil {
		return fmt.Errorf("persist tip:\n%w", err)
	}

	l.tip.Store(int64(height))

	if l.onTipAdvanced != nil {
		l.onTipAdvanced(height)
	}

	return nil
}

// FallbackAddress returns the fallback address active at the given
// snapshot height: the latest entry activated at or below it. Heights
// before the first activation resolve to the first entry, so the lookup
// is total.
func (l *Ledger) FallbackAddress(snapshotHeight int) string {
	address := l.history[0].Address

	for _, entry := range l.history {
		if entry.Height > snapshotHeight {
			break
		}
		address = entry.Address
	}

	return address
}

// loadTip reads the persisted tip, or 0 if none was recorded yet.
func loadTip(db *storage.Store) (int, error) {
	data, err := db.Get(tipKey)
	if err != nil {
		return 0, err
	}

	if len(data) != 8 {
		return 0, nil
	}

	return int(binary.BigEndian.Uint64(data)), nil
}
