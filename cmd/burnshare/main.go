package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"burnshare/internal/candidates"
	"burnshare/internal/export"
	"burnshare/internal/ledger"
	"burnshare/internal/logger"
	"burnshare/internal/payout"
	"burnshare/internal/storage"
)

func main() {
	logger.Init()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main entry point with error handling.
func run() error {
	cfg, err := parseFlags()
	if err != nil {
		return err
	}

	db, err := storage.Open(filepath.Join(cfg.DataPath, "records"))
	if err != nil {
		return fmt.Errorf("open store:\n%w", err)
	}
	defer db.Close()

	switch cfg.Command {
	case "tip":
		return recordTip(cfg, db)
	case "burn":
		return appendBurn(cfg, db)
	case "height":
		return printHeight(cfg, db)
	case "receivers":
		return printReceivers(cfg, db)
	case "export":
		return exportSnapshot(cfg, db)
	case "import":
		return importSnapshot(cfg, db)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

// newService wires the ledger and candidate provider into a payout service.
func newService(cfg *Config, db *storage.Store) (*payout.Service, *ledger.Ledger, error) {
	fallback := cfg.Fallback
	if len(fallback) == 0 {
		return nil, nil, fmt.Errorf("no fallback address configured (-fallback)")
	}

	led, err := ledger.New(db, cfg.GenesisHeight, fallback)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger:\n%w", err)
	}

	recs, err := candidates.NewStore(db)
	if err != nil {
		return nil, nil, fmt.Errorf("open record store:\n%w", err)
	}

	svc := payout.NewService(led, candidates.NewProvider(recs))
	led.SetOnTipAdvanced(svc.OnHeightAdvanced)
	svc.OnHeightAdvanced(led.Tip())

	return svc, led, nil
}

// recordTip persists a newly observed chain tip.
func recordTip(cfg *Config, db *storage.Store) error {
	// The fallback rotation plays no part in recording the tip
	history := cfg.Fallback
	if len(history) == 0 {
		history = []ledger.FallbackEntry{{Height: 0, Address: "unset"}}
	}

	led, err := ledger.New(db, cfg.GenesisHeight, history)
	if err != nil {
		return fmt.Errorf("open ledger:\n%w", err)
	}

	if err := led.AdvanceTip(cfg.Tip); err != nil {
		return err
	}

	logger.Info("tip recorded", "height", led.Tip())

	return nil
}

// appendBurn stores one burn record.
func appendBurn(cfg *Config, db *storage.Store) error {
	if cfg.Name == "" {
		return fmt.Errorf("burn requires -name")
	}
	if cfg.Amount <= 0 {
		return fmt.Errorf("burn requires a positive -amount")
	}

	recs, err := candidates.NewStore(db)
	if err != nil {
		return fmt.Errorf("open record store:\n%w", err)
	}

	return recs.Append(candidates.BurnRecord{
		Name:      cfg.Name,
		Address:   cfg.Address,
		AmountSat: cfg.Amount,
		Height:    cfg.Height,
	})
}

// printHeight prints the current selection height.
func printHeight(cfg *Config, db *storage.Store) error {
	svc, led, err := newService(cfg, db)
	if err != nil {
		return err
	}

	if cfg.Tip > 0 {
		if err := led.AdvanceTip(cfg.Tip); err != nil {
			return err
		}
	}

	fmt.Printf("tip %d selection height %d\n", led.Tip(), svc.SelectionHeight())

	return nil
}

// printReceivers computes and prints the delayed payout receivers.
func printReceivers(cfg *Config, db *storage.Store) error {
	if cfg.InputAmount <= 0 {
		return fmt.Errorf("receivers requires a positive -input")
	}

	svc, _, err := newService(cfg, db)
	if err != nil {
		return err
	}

	selection := cfg.Selection
	if selection == 0 {
		selection = svc.SelectionHeight()
	}

	receivers := svc.Receivers(selection, cfg.InputAmount, cfg.TradeTxFee)
	digest := payout.ReceiversDigest(receivers)

	fmt.Printf("selection height %d, %d receivers\n", selection, len(receivers))
	for _, r := range receivers {
		fmt.Printf("  %12d sat  %s\n", r.AmountSat, r.Address)
	}
	fmt.Printf("digest %s\n", hex.EncodeToString(digest[:]))

	return nil
}

// exportSnapshot writes a compressed snapshot of the record store.
func exportSnapshot(cfg *Config, db *storage.Store) error {
	if cfg.Selection <= 0 {
		return fmt.Errorf("export requires a positive -selection")
	}

	data, err := export.Export(db, cfg.Selection)
	if err != nil {
		return err
	}

	compressed, err := export.Compress(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.File, compressed, 0o644); err != nil {
		return fmt.Errorf("write snapshot:\n%w", err)
	}

	logger.Info("snapshot written", "file", cfg.File, "bytes", len(compressed))

	return nil
}

// importSnapshot loads a compressed snapshot into the record store.
func importSnapshot(cfg *Config, db *storage.Store) error {
	compressed, err := os.ReadFile(cfg.File)
	if err != nil {
		return fmt.Errorf("read snapshot:\n%w", err)
	}

	data, err := export.Decompress(compressed)
	if err != nil {
		return err
	}

	n, err := export.Import(db, data)
	if err != nil {
		return err
	}

	logger.Info("snapshot loaded", "file", cfg.File, "records", n)

	return nil
}
