package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// JSONRepository stores the catalog as a single JSON array on disk. Every
// save rewrites the whole document through a temp file and an atomic rename,
// so a crash mid-write leaves the previous document intact.
type JSONRepository struct {
	path string
	log  zerolog.Logger
}

func NewJSONRepository(path string, log zerolog.Logger) *JSONRepository {
	return &JSONRepository{
		path: path,
		log:  log.With().Str("component", "catalog").Logger(),
	}
}

func (r *JSONRepository) Load() ([]Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", r.path, err)
	}
	return products, nil
}

func (r *JSONRepository) Save(products []Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".products-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace catalog %s: %w", r.path, err)
	}
	return nil
}
