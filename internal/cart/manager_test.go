package cart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSessionsAreIsolatedPerUser(t *testing.T) {
	m := NewManager(0)
	m.OpenView("view-1", testSnapshot())

	alice, ok := m.Session("view-1", "alice")
	require.True(t, ok)
	bob, ok := m.Session("view-1", "bob")
	require.True(t, ok)

	require.NoError(t, alice.Commit(0, 3))
	assert.Equal(t, 150, alice.Total())
	assert.Equal(t, 0, bob.Total())

	// same user gets the same session back
	again, ok := m.Session("view-1", "alice")
	require.True(t, ok)
	assert.Same(t, alice, again)
}

func TestManagerUnknownView(t *testing.T) {
	m := NewManager(0)
	_, ok := m.Session("never-opened", "alice")
	assert.False(t, ok)
}

func TestManagerCloseViewDropsSessions(t *testing.T) {
	m := NewManager(0)
	m.OpenView("view-1", testSnapshot())
	sess, ok := m.Session("view-1", "alice")
	require.True(t, ok)
	require.NoError(t, sess.Commit(0, 1))

	m.CloseView("view-1")
	_, ok = m.Session("view-1", "alice")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Views())
}

func TestManagerReopenReplacesSnapshotAndSessions(t *testing.T) {
	m := NewManager(0)
	m.OpenView("view-1", testSnapshot())
	sess, ok := m.Session("view-1", "alice")
	require.True(t, ok)
	require.NoError(t, sess.Commit(0, 3))

	m.OpenView("view-1", testSnapshot())
	fresh, ok := m.Session("view-1", "alice")
	require.True(t, ok)
	assert.NotSame(t, sess, fresh)
	assert.Equal(t, 0, fresh.Total())
}

func TestManagerEvictsOldestViewPastBound(t *testing.T) {
	m := NewManager(2)
	m.OpenView("view-1", testSnapshot())
	m.OpenView("view-2", testSnapshot())
	m.OpenView("view-3", testSnapshot())

	assert.Equal(t, 2, m.Views())
	_, ok := m.Session("view-1", "alice")
	assert.False(t, ok, "oldest view should have been evicted")
	_, ok = m.Session("view-2", "alice")
	assert.True(t, ok)
	_, ok = m.Session("view-3", "alice")
	assert.True(t, ok)
}

func TestManagerDefaultBound(t *testing.T) {
	m := NewManager(0)
	for i := 0; i < DefaultMaxViews+10; i++ {
		m.OpenView(fmt.Sprintf("view-%d", i), testSnapshot())
	}
	assert.Equal(t, DefaultMaxViews, m.Views())
}
