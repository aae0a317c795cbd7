package catalog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(seed []Product) (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository(seed)
	return NewService(repo, zerolog.Nop()), repo
}

func ptr[T any](v T) *T { return &v }

func TestAddRejectsDuplicateName(t *testing.T) {
	svc, _ := newTestService(nil)

	require.NoError(t, svc.Add(Product{Name: "Potion", Price: 50, Emoji: "🧪", Category: "item"}))
	err := svc.Add(Product{Name: "Potion", Price: 80, Emoji: "⚗️", Category: "item"})
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, svc.List(""), 1)
}

func TestAddNameIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService(nil)

	require.NoError(t, svc.Add(Product{Name: "Potion", Price: 50, Category: "item"}))
	require.NoError(t, svc.Add(Product{Name: "potion", Price: 50, Category: "item"}))
	assert.Len(t, svc.List(""), 2)
}

func TestAddValidatesCategoryAndPrice(t *testing.T) {
	svc, _ := newTestService(nil)

	assert.ErrorIs(t, svc.Add(Product{Name: "X", Price: 1, Category: "groceries"}), ErrInvalidCategory)
	assert.ErrorIs(t, svc.Add(Product{Name: "X", Price: -1, Category: "item"}), ErrInvalidPrice)
	assert.Empty(t, svc.List(""))
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService([]Product{{Name: "Potion", Price: 50, Emoji: "🧪", Category: "item"}})

	_, err := svc.Remove("Elixir")
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := svc.Remove("Potion")
	require.NoError(t, err)
	assert.Equal(t, "Potion", removed.Name)
	assert.Empty(t, svc.List(""))
}

func TestEditAppliesOnlyPresentFields(t *testing.T) {
	svc, _ := newTestService([]Product{{Name: "Potion", Price: 50, Emoji: "🧪", Category: "item"}})

	updated, err := svc.Edit("Potion", Patch{Price: ptr(75)})
	require.NoError(t, err)
	assert.Equal(t, "Potion", updated.Name)
	assert.Equal(t, 75, updated.Price)
	assert.Equal(t, "🧪", updated.Emoji)
	assert.Equal(t, "item", updated.Category)
}

func TestEditValidatesBeforeMutating(t *testing.T) {
	svc, _ := newTestService([]Product{{Name: "Potion", Price: 50, Emoji: "🧪", Category: "item"}})

	// invalid category must fail before the new price is applied
	_, err := svc.Edit("Potion", Patch{Price: ptr(999), Category: ptr("groceries")})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	products := svc.List("")
	require.Len(t, products, 1)
	assert.Equal(t, 50, products[0].Price)
}

func TestEditUnknownName(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.Edit("Potion", Patch{Price: ptr(10)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditRenameCollision(t *testing.T) {
	svc, _ := newTestService([]Product{
		{Name: "Potion", Price: 50, Category: "item"},
		{Name: "Elixir", Price: 90, Category: "item"},
	})

	_, err := svc.Edit("Potion", Patch{Name: ptr("Elixir")})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestListFiltersByCategory(t *testing.T) {
	svc, _ := newTestService([]Product{
		{Name: "Potion", Price: 50, Category: "item"},
		{Name: "Sword", Price: 300, Category: "weapon"},
	})

	items := svc.List(CategoryItem)
	require.Len(t, items, 1)
	assert.Equal(t, "Potion", items[0].Name)
	assert.Len(t, svc.List(""), 2)
}

func TestListDegradesToEmptyOnLoadFailure(t *testing.T) {
	svc, repo := newTestService([]Product{{Name: "Potion", Price: 50, Category: "item"}})
	repo.LoadErr = assert.AnError
	assert.Empty(t, svc.List(""))
}
