package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
)

func testSnapshot() []catalog.Product {
	return []catalog.Product{
		{Name: "Potion", Price: 50, Emoji: "🧪", Category: "item"},
		{Name: "Sword", Price: 300, Emoji: "🗡️", Category: "weapon"},
	}
}

func TestNewSessionStartsEmpty(t *testing.T) {
	s := NewSession(testSnapshot())
	assert.Equal(t, StateEmpty, s.State())
	assert.Equal(t, []int{0, 0}, s.Quantities())
	assert.Equal(t, 0, s.Total())
	assert.Equal(t, EmptySummary, s.Summary())
}

func TestCommitBounds(t *testing.T) {
	cases := []struct {
		qty int
		err error
	}{
		{0, nil},
		{1, nil},
		{100, nil},
		{-1, ErrQuantityNegative},
		{101, ErrQuantityTooLarge},
	}
	for _, c := range cases {
		s := NewSession(testSnapshot())
		err := s.Commit(0, c.qty)
		if c.err == nil {
			require.NoError(t, err, "qty %d", c.qty)
			assert.Equal(t, c.qty, s.Quantities()[0])
			assert.Equal(t, StateReviewing, s.State())
		} else {
			assert.ErrorIs(t, err, c.err, "qty %d", c.qty)
			assert.Equal(t, []int{0, 0}, s.Quantities(), "rejection must not mutate, qty %d", c.qty)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = ParseQuantity("abc")
	assert.ErrorIs(t, err, ErrQuantityNotNumeric)
	_, err = ParseQuantity("")
	assert.ErrorIs(t, err, ErrQuantityNotNumeric)
	_, err = ParseQuantity("1.5")
	assert.ErrorIs(t, err, ErrQuantityNotNumeric)
}

func TestCommitIndexOutOfRange(t *testing.T) {
	s := NewSession(testSnapshot())
	assert.ErrorIs(t, s.Commit(2, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Commit(-1, 1), ErrIndexOutOfRange)
}

func TestTotalTracksQuantities(t *testing.T) {
	s := NewSession(testSnapshot())
	require.NoError(t, s.Commit(0, 3))
	assert.Equal(t, 150, s.Total())
	require.NoError(t, s.Commit(1, 2))
	assert.Equal(t, 150+600, s.Total())
	require.NoError(t, s.Commit(0, 0))
	assert.Equal(t, 600, s.Total())
}

func TestSummaryFormat(t *testing.T) {
	s := NewSession(testSnapshot())
	require.NoError(t, s.Commit(0, 3))
	assert.Equal(t, "🧪 Potion - 50 x 3 = 150", s.Summary())

	require.NoError(t, s.Commit(1, 1))
	assert.Equal(t, "🧪 Potion - 50 x 3 = 150\n🗡️ Sword - 300 x 1 = 300", s.Summary())
}

func TestResetZeroesEverything(t *testing.T) {
	s := NewSession(testSnapshot())
	require.NoError(t, s.Commit(0, 3))
	require.NoError(t, s.Commit(1, 2))

	s.Reset()
	assert.Equal(t, StateEmpty, s.State())
	assert.Equal(t, 0, s.Total())
	assert.Equal(t, EmptySummary, s.Summary())
}

func TestLinesFreezePricesFromSnapshot(t *testing.T) {
	snapshot := testSnapshot()
	s := NewSession(snapshot)
	require.NoError(t, s.Commit(0, 2))

	// mutating the caller's slice must not leak into the session
	snapshot[0].Price = 9999

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 50, lines[0].Product.Price)
	assert.Equal(t, 2, lines[0].Qty)
}

func TestBeginEdit(t *testing.T) {
	s := NewSession(testSnapshot())
	p, err := s.BeginEdit(1)
	require.NoError(t, err)
	assert.Equal(t, "Sword", p.Name)
	assert.Equal(t, StateEditing, s.State())

	_, err = s.BeginEdit(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
