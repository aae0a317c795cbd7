package ledger

import "sync"

// Repository appends and reads purchase records. There is no update or
// delete: the ledger is an audit log, not a mutable table.
type Repository interface {
	Append(Record) error
	Scan() ([]Record, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []Record

	// Err, when set, is returned by Append and Scan.
	Err error
}

func NewInMemoryRepository(seed []Record) *InMemoryRepository {
	r := &InMemoryRepository{records: make([]Record, 0, len(seed))}
	r.records = append(r.records, seed...)
	return r
}

func (r *InMemoryRepository) Append(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *InMemoryRepository) Scan() ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}
