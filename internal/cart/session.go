// Package cart holds the ephemeral per-view shopping state. Nothing here is
// persisted: a session lives from the moment a shop view opens until it is
// confirmed, reset, evicted, or the process restarts.
package cart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
)

// MaxQuantity bounds a single cart line.
const MaxQuantity = 100

var (
	ErrQuantityNegative   = errors.New("quantity must be zero or greater")
	ErrQuantityTooLarge   = errors.New("quantity must not exceed 100")
	ErrQuantityNotNumeric = errors.New("quantity must be a number")
	ErrIndexOutOfRange    = errors.New("no such product in this shop view")
)

// EmptySummary is the placeholder line shown when no product has a quantity.
const EmptySummary = "ยังไม่ได้เลือกสินค้า"

// State tracks where a session is in the select → review loop.
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateReviewing
)

// ParseQuantity converts raw prompt input into a quantity. Non-numeric text
// is rejected before any range check applies.
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrQuantityNotNumeric
	}
	return n, nil
}

// Line is one selected product with its quantity; the price comes from the
// session snapshot, not a live catalog lookup.
type Line struct {
	Product catalog.Product
	Qty     int
}

// Session is one user's cart against the product snapshot taken when the
// shop view opened. Quantities default to zero.
type Session struct {
	mu         sync.Mutex
	products   []catalog.Product
	quantities []int
	state      State
	editing    int
}

func NewSession(snapshot []catalog.Product) *Session {
	products := make([]catalog.Product, len(snapshot))
	copy(products, snapshot)
	return &Session{
		products:   products,
		quantities: make([]int, len(products)),
		state:      StateEmpty,
	}
}

// Products returns the snapshot the session was opened against.
func (s *Session) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Quantities returns a copy of the current quantities, one per snapshot
// product.
func (s *Session) Quantities() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.quantities))
	copy(out, s.quantities)
	return out
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginEdit marks product i as the one awaiting a quantity submission and
// returns it for prompt labelling. The session itself is not mutated beyond
// the state marker; partial typing is never observed.
func (s *Session) BeginEdit(i int) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.products) {
		return catalog.Product{}, ErrIndexOutOfRange
	}
	s.state = StateEditing
	s.editing = i
	return s.products[i], nil
}

// Commit stores a validated quantity for product i and moves the session to
// the reviewing state. Any rejection leaves the quantities untouched.
func (s *Session) Commit(i, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.quantities) {
		return ErrIndexOutOfRange
	}
	if qty < 0 {
		return ErrQuantityNegative
	}
	if qty > MaxQuantity {
		return ErrQuantityTooLarge
	}
	s.quantities[i] = qty
	s.state = StateReviewing
	return nil
}

// Total is the sum of price times quantity across the whole cart.
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total()
}

func (s *Session) total() int {
	total := 0
	for i, qty := range s.quantities {
		total += s.products[i].Price * qty
	}
	return total
}

// Lines returns the qty>0 lines with prices frozen from the snapshot.
func (s *Session) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []Line
	for i, qty := range s.quantities {
		if qty > 0 {
			lines = append(lines, Line{Product: s.products[i], Qty: qty})
		}
	}
	return lines
}

// Summary renders one line per selected product, joined by newlines, or the
// placeholder when nothing is selected. The caller appends the total.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []string
	for i, qty := range s.quantities {
		if qty > 0 {
			p := s.products[i]
			lines = append(lines, fmt.Sprintf("%s %s - %d x %d = %d", p.Emoji, p.Name, p.Price, qty, p.Price*qty))
		}
	}
	if len(lines) == 0 {
		return EmptySummary
	}
	return strings.Join(lines, "\n")
}

// Reset zeroes every quantity, regardless of current state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quantities {
		s.quantities[i] = 0
	}
	s.state = StateEmpty
}
