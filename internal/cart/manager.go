package cart

import (
	"strings"
	"sync"

	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
)

// DefaultMaxViews bounds the number of live shop views when no explicit
// limit is configured.
const DefaultMaxViews = 256

// sessionKeySep never appears in a Discord snowflake or user ID.
const sessionKeySep = "\x00"

// Manager owns cart sessions, keyed by (view, user) so participants sharing
// one shop message never mutate each other's cart. Views past the bound are
// evicted oldest first.
type Manager struct {
	mu       sync.Mutex
	maxViews int
	order    []string
	views    map[string][]catalog.Product
	sessions map[string]*Session
}

func NewManager(maxViews int) *Manager {
	if maxViews <= 0 {
		maxViews = DefaultMaxViews
	}
	return &Manager{
		maxViews: maxViews,
		views:    make(map[string][]catalog.Product),
		sessions: make(map[string]*Session),
	}
}

// OpenView registers the snapshot a freshly sent shop message was built
// from. Sessions for the view are created lazily per user.
func (m *Manager) OpenView(viewID string, snapshot []catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.views[viewID]; ok {
		m.closeLocked(viewID)
	}
	products := make([]catalog.Product, len(snapshot))
	copy(products, snapshot)
	m.views[viewID] = products
	m.order = append(m.order, viewID)
	for len(m.views) > m.maxViews {
		m.closeLocked(m.order[0])
	}
}

// Session returns the per-user session for a view, creating it from the
// view snapshot on first use. ok is false when the view is unknown, e.g.
// evicted or opened before a restart.
func (m *Manager) Session(viewID, userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot, ok := m.views[viewID]
	if !ok {
		return nil, false
	}
	key := viewID + sessionKeySep + userID
	sess, ok := m.sessions[key]
	if !ok {
		sess = NewSession(snapshot)
		m.sessions[key] = sess
	}
	return sess, true
}

// CloseView drops a view and every session attached to it.
func (m *Manager) CloseView(viewID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked(viewID)
}

func (m *Manager) closeLocked(viewID string) {
	delete(m.views, viewID)
	for i, id := range m.order {
		if id == viewID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	prefix := viewID + sessionKeySep
	for key := range m.sessions {
		if strings.HasPrefix(key, prefix) {
			delete(m.sessions, key)
		}
	}
}

// Views reports how many shop views are currently live.
func (m *Manager) Views() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}
