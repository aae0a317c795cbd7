package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// NDJSONRepository appends one JSON object per line to the ledger file,
// creating it when absent. The file is never rewritten in place.
type NDJSONRepository struct {
	path string
	log  zerolog.Logger
}

func NewNDJSONRepository(path string, log zerolog.Logger) *NDJSONRepository {
	return &NDJSONRepository{
		path: path,
		log:  log.With().Str("component", "ledger").Logger(),
	}
}

// Append serializes the record as a single line and appends it.
func (r *NDJSONRepository) Append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", r.path, err)
	}
	// one Write call so the line lands as a single append
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("append ledger %s: %w", r.path, err)
	}
	return f.Close()
}

// Scan reads every line of the ledger. Lines that fail to parse are skipped
// and logged; a corrupt entry never aborts the read. A missing file is an
// empty ledger.
func (r *NDJSONRepository) Scan() ([]Record, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger %s: %w", r.path, err)
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			r.log.Warn().Err(err).Str("line", string(line)).Msg("skipping corrupt ledger line")
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return records, fmt.Errorf("scan ledger %s: %w", r.path, err)
	}
	return records, nil
}
