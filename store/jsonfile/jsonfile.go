/*
Package jsonfile persists ledger snapshots as JSON documents on disk.

  Writes are atomic: the document is written to a .tmp sibling and renamed
  over the target, so a crash mid-write never corrupts the previous
  snapshot. The encoding is canonical (two-space indent, fixed field
  order), so load -> save of an untouched snapshot is byte-identical.
*/
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/warp/bank-ledger/bank"
)

// Load reads a snapshot document from path.
func Load(path string) (*bank.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snap bank.Snapshot
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes a snapshot document to path atomically.
func Save(path string, snap *bank.Snapshot) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	return os.Rename(tmp, path)
}

// Marshal renders the canonical byte form of a snapshot, exactly as Save
// writes it. Useful for round-trip checks and HTTP responses.
func Marshal(snap *bank.Snapshot) ([]byte, error) {
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
