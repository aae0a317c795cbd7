package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// ErrWriteFailed marks a purchase record that could not be made durable.
var ErrWriteFailed = errors.New("failed to write purchase record")

// Service wraps the ledger repository with ID stamping and history queries.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "ledger").Logger(),
	}
}

// Append stamps the record with a ULID when it has none and appends it.
func (s *Service) Append(rec Record) error {
	if rec.ID == "" {
		rec.ID = ulid.Make().String()
	}
	if err := s.repo.Append(rec); err != nil {
		s.log.Error().Err(err).Str("user", rec.User).Msg("ledger append failed")
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Recent returns records newest first. n <= 0 means all. ISO-8601
// timestamps sort correctly as strings, so unparsable legacy values still
// get a stable order.
func (s *Service) Recent(n int) ([]Record, error) {
	records, err := s.repo.Scan()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}
