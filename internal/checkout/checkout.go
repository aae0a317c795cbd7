// Package checkout turns a reviewed cart into a durable purchase record.
package checkout

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopbot-th/discord-shop-bot/internal/cart"
	"github.com/shopbot-th/discord-shop-bot/internal/ledger"
)

// ErrEmptyCart rejects a confirm when no line has a quantity.
var ErrEmptyCart = errors.New("cart is empty, nothing to confirm")

// Payment is the static manual-payment destination shown with every
// receipt. Payment itself happens off-system.
type Payment struct {
	Bank  string
	QRURL string
}

// Receipt is everything an adapter needs to render the private and public
// confirmations for one purchase. Rendering is best-effort: by the time a
// Receipt exists the purchase is already durable.
type Receipt struct {
	User      string
	Items     []ledger.Item
	Total     int
	Timestamp time.Time
	Payment   Payment
}

// Service finalizes carts against the purchase ledger.
type Service struct {
	ledger  *ledger.Service
	payment Payment
	log     zerolog.Logger
}

func NewService(led *ledger.Service, payment Payment, log zerolog.Logger) *Service {
	return &Service{
		ledger:  led,
		payment: payment,
		log:     log.With().Str("component", "checkout").Logger(),
	}
}

// Confirm appends the purchase to the ledger and, only after the write
// lands, resets the session. A failed append leaves the cart intact so the
// user can retry.
func (s *Service) Confirm(sess *cart.Session, user string) (Receipt, error) {
	total := sess.Total()
	if total == 0 {
		return Receipt{}, ErrEmptyCart
	}

	lines := sess.Lines()
	items := make([]ledger.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, ledger.Item{Name: l.Product.Name, Qty: l.Qty, Price: l.Product.Price})
	}

	now := time.Now()
	rec := ledger.Record{
		User:      user,
		Items:     items,
		Total:     total,
		Timestamp: now.Format(time.RFC3339),
	}
	if err := s.ledger.Append(rec); err != nil {
		return Receipt{}, err
	}

	sess.Reset()
	s.log.Info().Str("user", user).Int("total", total).Int("items", len(items)).Msg("purchase recorded")
	return Receipt{
		User:      user,
		Items:     items,
		Total:     total,
		Timestamp: now,
		Payment:   s.payment,
	}, nil
}
