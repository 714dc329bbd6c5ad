// Package brand holds the static brand dictionary and the resolver that
// matches submitted words against it, exactly or fuzzily.
package brand

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed brands.json
var embeddedBrands []byte

var ErrEmptyDictionary = errors.New("brand dictionary is empty")

// Dictionary - a fixed, ordered collection of brands loaded once at startup.
// It is never mutated afterwards, so concurrent reads need no locking.
type Dictionary struct {
	brands []Brand
}

// Load - loads the dictionary from path, or from the embedded default list
// when path is empty.
func Load(path string) (*Dictionary, error) {
	raw := embeddedBrands

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary file: %w", err)
		}
		raw = data
	}

	var brands []Brand
	if err := json.Unmarshal(raw, &brands); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}

	if len(brands) == 0 {
		return nil, ErrEmptyDictionary
	}

	return &Dictionary{brands: brands}, nil
}

// NewDictionary - builds a dictionary directly from names, keeping order.
func NewDictionary(names ...string) *Dictionary {
	brands := make([]Brand, 0, len(names))
	for _, name := range names {
		brands = append(brands, Brand{Name: name})
	}

	return &Dictionary{brands: brands}
}

// Brands - the entries in load order.
func (that *Dictionary) Brands() []Brand {
	return that.brands
}

// Len - number of entries.
func (that *Dictionary) Len() int {
	return len(that.brands)
}
