package satfolio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes entries from a stream of JSONL data, one entry per line,
// and returns them in a chronologically sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	var entries []Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var e Entry
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("line %d: cannot decode entry %q: %w", lineNo, string(line), err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	if err := ledger.Append(entries...); err != nil {
		return nil, err
	}
	return ledger, nil
}

// EncodeEntry marshals a single entry to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeEntry(w io.Writer, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry %s: %w", e.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", e.ID, err)
	}
	return nil
}

// EncodeLedger persists the ledger to w in JSONL format, in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, e := range ledger.entries {
		if err := EncodeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// LoadLedger reads the ledger file. A missing file is an empty ledger.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", path, err)
	}
	return ledger, nil
}

// SaveLedger writes the whole ledger to path in canonical form. The file is
// replaced atomically.
func SaveLedger(path string, ledger *Ledger) error {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// AppendEntryFile validates e and appends it to the ledger file, creating it if needed.
func AppendEntryFile(path string, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create ledger directory: %w", err)
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open ledger %q: %w", path, err)
	}
	defer f.Close()
	return EncodeEntry(f, e)
}

// writeFileAtomic writes data to a temporary file in the same directory and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot replace %q: %w", path, err)
	}
	return nil
}
