package catalog

import "sync"

// Repository persists the full catalog document. Save always rewrites the
// whole document; there are no partial updates on disk.
type Repository interface {
	Load() ([]Product, error)
	Save([]Product) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product

	// LoadErr and SaveErr, when set, are returned by the matching call.
	LoadErr error
	SaveErr error
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make([]Product, 0, len(seed))}
	r.products = append(r.products, seed...)
	return r
}

func (r *InMemoryRepository) Load() ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryRepository) Save(products []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.products = make([]Product, len(products))
	copy(r.products, products)
	return nil
}
