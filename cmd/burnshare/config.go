package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"burnshare/internal/ledger"
)

// Config holds the CLI configuration.
type Config struct {
	// DataPath is the directory for the record store.
	DataPath string

	// GenesisHeight is the height of the genesis block.
	GenesisHeight int

	// Fallback is the fallback address rotation, parsed from
	// height:address pairs. At least one entry is required for commands
	// that compute receivers.
	Fallback []ledger.FallbackEntry

	// Tip is the observed chain tip to record before computing.
	Tip int

	// Name, Address, Amount, Height describe a burn record (burn command).
	Name    string
	Address string
	Amount  int64
	Height  int

	// Selection is the agreed snapshot height (receivers command).
	Selection int

	// InputAmount is the escrow amount to distribute (receivers command).
	InputAmount int64

	// TradeTxFee is the originating trade transaction fee (receivers command).
	TradeTxFee int64

	// File is the snapshot file path (export/import commands).
	File string

	// Command is the remaining positional command.
	Command string
}

// parseFlags parses command-line flags into Config.
func parseFlags() (*Config, error) {
	cfg := &Config{}

	var fallback string

	flag.StringVar(&cfg.DataPath, "data", "./data", "Data directory path")
	flag.IntVar(&cfg.GenesisHeight, "genesis", 0, "Genesis block height")
	flag.StringVar(&fallback, "fallback", "", "Fallback address rotation as height:address[,height:address...]")
	flag.IntVar(&cfg.Tip, "tip", 0, "Observed chain tip to record")
	flag.StringVar(&cfg.Name, "name", "", "Candidate name (burn)")
	flag.StringVar(&cfg.Address, "address", "", "Payout address (burn)")
	flag.Int64Var(&cfg.Amount, "amount", 0, "Burned amount in sat (burn)")
	flag.IntVar(&cfg.Height, "height", 0, "Record height (burn)")
	flag.IntVar(&cfg.Selection, "selection", 0, "Agreed snapshot height (receivers)")
	flag.Int64Var(&cfg.InputAmount, "input", 0, "Escrow input amount in sat (receivers)")
	flag.Int64Var(&cfg.TradeTxFee, "fee", 0, "Originating trade tx fee in sat (receivers)")
	flag.StringVar(&cfg.File, "file", "snapshot.bin", "Snapshot file path (export/import)")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return nil, fmt.Errorf("expected exactly one command")
	}
	cfg.Command = flag.Arg(0)

	if fallback != "" {
		entries, err := parseFallback(fallback)
		if err != nil {
			return nil, fmt.Errorf("parse fallback:\n%w", err)
		}
		cfg.Fallback = entries
	}

	return cfg, nil
}

// parseFallback parses height:address pairs separated by commas.
func parseFallback(s string) ([]ledger.FallbackEntry, error) {
	var entries []ledger.FallbackEntry

	for _, part := range strings.Split(s, ",") {
		height, address, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("malformed entry %q, want height:address", part)
		}

		h, err := strconv.Atoi(height)
		if err != nil {
			return nil, fmt.Errorf("malformed height in %q: %w", part, err)
		}

		entries = append(entries, ledger.FallbackEntry{Height: h, Address: address})
	}

	return entries, nil
}

// usage prints command help.
func usage() {
	fmt.Fprintf(os.Stderr, `usage: burnshare [flags] <command>

commands:
  tip        record an observed chain tip (-tip)
  burn       append a burn record (-name -address -amount -height)
  height     print the current selection height
  receivers  print the delayed payout receivers (-selection -input -fee -fallback)
  export     write a snapshot of the record store (-selection -file)
  import     load a snapshot into the record store (-file)

flags:
`)
	flag.PrintDefaults()
}
