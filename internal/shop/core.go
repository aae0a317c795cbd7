// Package shop is the single command-handling core. Both invocation
// surfaces (prefixed free-text and slash commands) translate into calls on
// Core, so validation and the admin guard cannot drift between surfaces.
package shop

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopbot-th/discord-shop-bot/internal/cart"
	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
	"github.com/shopbot-th/discord-shop-bot/internal/checkout"
	"github.com/shopbot-th/discord-shop-bot/internal/ledger"
)

// DefaultHistoryCount is how many records a history query shows when no
// count is given.
const DefaultHistoryCount = 5

// Actor identifies who invoked a command and whether they hold the
// administrator capability. The capability is resolved by the platform
// adapter; the guard itself lives here.
type Actor struct {
	ID      string
	Name    string
	Mention string
	Admin   bool
}

// View is a freshly opened shop: the snapshot its buttons are built from.
// It must be registered with RegisterView once the platform assigns the
// sent message an ID.
type View struct {
	Category catalog.Category
	Products []catalog.Product
}

// Summary is a user's current cart rendered for the shop message.
type Summary struct {
	Text  string
	Total int
}

// Listing groups products for display, one group per category in first-seen
// order, with legacy categories collected under the unspecified bucket.
type Listing struct {
	Category catalog.Category
	Groups   []Group
}

// Group is one category worth of products in a listing.
type Group struct {
	Label    string
	Products []catalog.Product
}

// EditPatch carries optional replacement fields for an edit-product
// command. Category, when present, may be a canonical token or a localized
// label and is validated before anything is applied.
type EditPatch struct {
	Name     *string
	Price    *int
	Emoji    *string
	Category *string
}

// Core wires the catalog, ledger, carts and checkout behind the typed
// operations both command surfaces share.
type Core struct {
	catalog  *catalog.Service
	ledger   *ledger.Service
	carts    *cart.Manager
	checkout *checkout.Service
	log      zerolog.Logger
}

func NewCore(cat *catalog.Service, led *ledger.Service, carts *cart.Manager, chk *checkout.Service, log zerolog.Logger) *Core {
	return &Core{
		catalog:  cat,
		ledger:   led,
		carts:    carts,
		checkout: chk,
		log:      log.With().Str("component", "shop").Logger(),
	}
}

// CategoryHint lists the valid categories for error responses.
func CategoryHint() string {
	parts := make([]string, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Label(), c))
	}
	return strings.Join(parts, ", ")
}

// parseCategory accepts an empty string (no filter), a canonical token, or
// a localized label.
func parseCategory(raw string) (catalog.Category, error) {
	if raw == "" {
		return "", nil
	}
	c, ok := catalog.ParseCategory(raw)
	if !ok {
		return "", catalog.ErrInvalidCategory
	}
	return c, nil
}

func (c *Core) guard(actor Actor) error {
	if !actor.Admin {
		return ErrPermissionDenied
	}
	return nil
}

// OpenShop snapshots the (optionally filtered) catalog for a new shop view.
func (c *Core) OpenShop(rawCategory string) (View, error) {
	cat, err := parseCategory(rawCategory)
	if err != nil {
		return View{}, err
	}
	return View{Category: cat, Products: c.catalog.List(cat)}, nil
}

// RegisterView binds a sent shop message to its snapshot.
func (c *Core) RegisterView(viewID string, v View) {
	c.carts.OpenView(viewID, v.Products)
}

// CloseView drops a shop view and its carts.
func (c *Core) CloseView(viewID string) {
	c.carts.CloseView(viewID)
}

func (c *Core) session(viewID string, actor Actor) (*cart.Session, error) {
	sess, ok := c.carts.Session(viewID, actor.ID)
	if !ok {
		return nil, ErrViewExpired
	}
	return sess, nil
}

// BeginQuantity marks one product of the actor's cart as awaiting a
// quantity submission and returns it for prompt labelling.
func (c *Core) BeginQuantity(viewID string, actor Actor, index int) (catalog.Product, error) {
	sess, err := c.session(viewID, actor)
	if err != nil {
		return catalog.Product{}, err
	}
	return sess.BeginEdit(index)
}

// SetQuantity parses and commits raw prompt input for one product of the
// actor's cart. Every rejection leaves the cart unchanged.
func (c *Core) SetQuantity(viewID string, actor Actor, index int, raw string) (Summary, error) {
	sess, err := c.session(viewID, actor)
	if err != nil {
		return Summary{}, err
	}
	qty, err := cart.ParseQuantity(raw)
	if err != nil {
		return Summary{}, err
	}
	if err := sess.Commit(index, qty); err != nil {
		return Summary{}, err
	}
	return Summary{Text: sess.Summary(), Total: sess.Total()}, nil
}

// ResetCart zeroes the actor's cart for the view.
func (c *Core) ResetCart(viewID string, actor Actor) error {
	sess, err := c.session(viewID, actor)
	if err != nil {
		return err
	}
	sess.Reset()
	return nil
}

// Confirm finalizes the actor's cart into a purchase. On success the cart
// is already reset when the receipt comes back.
func (c *Core) Confirm(viewID string, actor Actor) (checkout.Receipt, error) {
	sess, err := c.session(viewID, actor)
	if err != nil {
		return checkout.Receipt{}, err
	}
	return c.checkout.Confirm(sess, actor.Name)
}

// ListProducts groups the (optionally filtered) catalog for display.
func (c *Core) ListProducts(rawCategory string) (Listing, error) {
	cat, err := parseCategory(rawCategory)
	if err != nil {
		return Listing{}, err
	}
	products := c.catalog.List(cat)
	if cat != "" && len(products) == 0 {
		return Listing{}, ErrNoProducts
	}

	listing := Listing{Category: cat}
	index := map[string]int{}
	for _, p := range products {
		label := p.CategoryLabel()
		i, ok := index[label]
		if !ok {
			i = len(listing.Groups)
			index[label] = i
			listing.Groups = append(listing.Groups, Group{Label: label})
		}
		listing.Groups[i].Products = append(listing.Groups[i].Products, p)
	}
	return listing, nil
}

// AddProduct validates and stores a new product. Admin only.
func (c *Core) AddProduct(actor Actor, name string, price int, emoji, rawCategory string) (catalog.Product, error) {
	if err := c.guard(actor); err != nil {
		return catalog.Product{}, err
	}
	if rawCategory == "" {
		rawCategory = string(catalog.CategoryItem)
	}
	cat, ok := catalog.ParseCategory(rawCategory)
	if !ok {
		return catalog.Product{}, catalog.ErrInvalidCategory
	}
	p := catalog.Product{Name: name, Price: price, Emoji: emoji, Category: string(cat)}
	if err := c.catalog.Add(p); err != nil {
		return catalog.Product{}, err
	}
	c.log.Info().Str("actor", actor.Name).Str("product", name).Msg("product added")
	return p, nil
}

// RemoveProduct deletes a product by name. Admin only.
func (c *Core) RemoveProduct(actor Actor, name string) (catalog.Product, error) {
	if err := c.guard(actor); err != nil {
		return catalog.Product{}, err
	}
	p, err := c.catalog.Remove(name)
	if err != nil {
		return catalog.Product{}, err
	}
	c.log.Info().Str("actor", actor.Name).Str("product", name).Msg("product removed")
	return p, nil
}

// EditProduct applies a patch to a product by name. Admin only.
func (c *Core) EditProduct(actor Actor, name string, patch EditPatch) (catalog.Product, error) {
	if err := c.guard(actor); err != nil {
		return catalog.Product{}, err
	}
	p := catalog.Patch{Name: patch.Name, Price: patch.Price, Emoji: patch.Emoji}
	if patch.Category != nil {
		cat, ok := catalog.ParseCategory(*patch.Category)
		if !ok {
			return catalog.Product{}, catalog.ErrInvalidCategory
		}
		token := string(cat)
		p.Category = &token
	}
	updated, err := c.catalog.Edit(name, p)
	if err != nil {
		return catalog.Product{}, err
	}
	c.log.Info().Str("actor", actor.Name).Str("product", updated.Name).Msg("product edited")
	return updated, nil
}

// History returns the most recent purchase records, newest first. Admin
// only. count <= 0 falls back to the default.
func (c *Core) History(actor Actor, count int) ([]ledger.Record, error) {
	if err := c.guard(actor); err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultHistoryCount
	}
	records, err := c.ledger.Recent(count)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoHistory
	}
	return records, nil
}
