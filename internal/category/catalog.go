package category

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog      = errors.New("category catalog is empty")
	ErrBlankCategory     = errors.New("category name is blank")
	ErrDuplicateCategory = errors.New("duplicate category name")
)

// DefaultNames is the catalog used when configuration provides none.
var DefaultNames = []string{
	"Comida",
	"Supermercado",
	"Transporte",
	"Combustible",
	"Compras",
	"Salud",
	"Hogar",
	"Servicios",
	"Entretenimiento",
	"Educación",
	"Viajes",
	"Otros",
}

// Catalog is the fixed, ordered set of canonical categories. It is built once
// at startup and never mutated, so a value can be shared freely between goroutines.
type Catalog struct {
	names []string
	lower []string
}

// NewCatalog validates names and returns an immutable catalog preserving their order.
func NewCatalog(names []string) (Catalog, error) {
	if len(names) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(names))
	c := Catalog{
		names: make([]string, 0, len(names)),
		lower: make([]string, 0, len(names)),
	}
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return Catalog{}, fmt.Errorf("entry %d: %w", i, ErrBlankCategory)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return Catalog{}, fmt.Errorf("%q: %w", name, ErrDuplicateCategory)
		}
		seen[key] = struct{}{}
		c.names = append(c.names, name)
		c.lower = append(c.lower, key)
	}
	return c, nil
}

// MustCatalog is NewCatalog for static lists; it panics on invalid input.
func MustCatalog(names []string) Catalog {
	c, err := NewCatalog(names)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns a copy of the catalog entries in order.
func (c Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c Catalog) Len() int {
	return len(c.names)
}

// Contains reports whether name is a catalog entry (exact, case-sensitive).
func (c Catalog) Contains(name string) bool {
	return c.Index(name) >= 0
}

// Index returns the position of name in the catalog, or -1.
func (c Catalog) Index(name string) int {
	for i, n := range c.names {
		if n == name {
			return i
		}
	}
	return -1
}
