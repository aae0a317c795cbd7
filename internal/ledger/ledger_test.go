package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempLedger(t *testing.T) *NDJSONRepository {
	t.Helper()
	return NewNDJSONRepository(filepath.Join(t.TempDir(), "history.json"), zerolog.Nop())
}

func TestNDJSONAppendCreatesFileAndWritesOneLine(t *testing.T) {
	repo := tempLedger(t)
	rec := Record{
		User:      "buyer#1234",
		Items:     []Item{{Name: "Potion", Qty: 3, Price: 50}},
		Total:     150,
		Timestamp: "2026-08-25T12:00:00Z",
	}
	require.NoError(t, repo.Append(rec))

	data, err := os.ReadFile(repo.path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 1)

	records, err := repo.Scan()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestNDJSONScanSkipsCorruptLines(t *testing.T) {
	repo := tempLedger(t)
	content := `{"user":"a","items":[],"total":0,"timestamp":"2026-01-01T00:00:00Z"}
{this line is garbage
{"user":"b","items":[{"name":"Potion","qty":1,"price":50}],"total":50,"timestamp":"2026-01-02T00:00:00Z"}
`
	require.NoError(t, os.WriteFile(repo.path, []byte(content), 0o644))

	records, err := repo.Scan()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].User)
	assert.Equal(t, "b", records[1].User)
}

func TestNDJSONScanMissingFileIsEmpty(t *testing.T) {
	repo := tempLedger(t)
	records, err := repo.Scan()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestServiceAppendStampsID(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo, zerolog.Nop())

	require.NoError(t, svc.Append(Record{User: "a", Total: 10, Timestamp: "2026-01-01T00:00:00Z"}))
	records, err := repo.Scan()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
}

func TestServiceAppendWrapsFailure(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	repo.Err = assert.AnError
	svc := NewService(repo, zerolog.Nop())

	err := svc.Append(Record{User: "a", Total: 10})
	assert.ErrorIs(t, err, ErrWriteFailed)
}

func TestServiceRecentSortsNewestFirstAndLimits(t *testing.T) {
	repo := NewInMemoryRepository([]Record{
		{User: "old", Timestamp: "2026-01-01T00:00:00Z"},
		{User: "newest", Timestamp: "2026-03-01T00:00:00Z"},
		{User: "mid", Timestamp: "2026-02-01T00:00:00Z"},
	})
	svc := NewService(repo, zerolog.Nop())

	records, err := svc.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newest", records[0].User)
	assert.Equal(t, "mid", records[1].User)

	all, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
