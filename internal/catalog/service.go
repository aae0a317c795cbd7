package catalog

import (
	"sync"

	"github.com/rs/zerolog"
)

// Patch carries optional replacement fields for an existing product. Nil
// fields are left untouched.
type Patch struct {
	Name     *string
	Price    *int
	Emoji    *string
	Category *string
}

// Service owns catalog reads and mutations. Mutations rewrite the whole
// document and are serialized through a single writer lock so concurrent
// admin edits cannot interleave as lost updates.
type Service struct {
	mu   sync.Mutex
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "catalog").Logger(),
	}
}

// load degrades to an empty catalog on any read failure; a missing or
// corrupt document must never take a command down.
func (s *Service) load() []Product {
	products, err := s.repo.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog load failed, using empty catalog")
		return []Product{}
	}
	return products
}

// List returns the catalog, optionally filtered to one category. An empty
// category means no filter.
func (s *Service) List(c Category) []Product {
	products := s.load()
	if c == "" {
		return products
	}
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == string(c) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Add appends a new product and saves the document. The name must not
// collide (case-sensitive) and the category must be part of the closed set.
func (s *Service) Add(p Product) error {
	if !Category(p.Category).Valid() {
		return ErrInvalidCategory
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.load()
	for _, existing := range products {
		if existing.Name == p.Name {
			return ErrDuplicateName
		}
	}
	products = append(products, p)
	return s.repo.Save(products)
}

// Remove deletes the product with the given name and saves the document.
// The removed product is returned for display.
func (s *Service) Remove(name string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.load()
	for i, p := range products {
		if p.Name == name {
			products = append(products[:i], products[i+1:]...)
			if err := s.repo.Save(products); err != nil {
				return Product{}, err
			}
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Edit applies a patch to the product with the given name. The patch is
// validated in full before any field is applied.
func (s *Service) Edit(name string, patch Patch) (Product, error) {
	if patch.Category != nil && !Category(*patch.Category).Valid() {
		return Product{}, ErrInvalidCategory
	}
	if patch.Price != nil && *patch.Price < 0 {
		return Product{}, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.load()
	idx := -1
	for i, p := range products {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Product{}, ErrNotFound
	}
	if patch.Name != nil && *patch.Name != name {
		for _, p := range products {
			if p.Name == *patch.Name {
				return Product{}, ErrDuplicateName
			}
		}
	}

	p := products[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Emoji != nil {
		p.Emoji = *patch.Emoji
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	products[idx] = p
	if err := s.repo.Save(products); err != nil {
		return Product{}, err
	}
	return p, nil
}
