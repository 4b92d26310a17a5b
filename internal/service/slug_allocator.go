package service

import (
	"fmt"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/pkg/slug"
)

// maxSlugProbes bounds the suffix search. Hitting it means close to a
// thousand collisions on one base token, which only happens when titles
// normalize to something degenerate like "n-a".
const maxSlugProbes = 1000

// SlugIndex answers whether a candidate slug is already taken within
// one namespace (articles and categories each hold their own).
// excludeID lets a rename skip the row being renamed.
type SlugIndex interface {
	SlugTaken(candidate string, excludeID uint64) (bool, error)
}

// SlugAllocator turns display titles into unique URL slugs.
type SlugAllocator interface {
	Allocate(title string, index SlugIndex, excludeID uint64) (string, error)
}

type slugAllocator struct{}

// NewSlugAllocator creates a new SlugAllocator.
func NewSlugAllocator() SlugAllocator {
	return &slugAllocator{}
}

// Allocate normalizes title and probes base, base-2, base-3, ... until
// the index reports a free slug. A title that normalizes to nothing
// falls back to "n-a", so every article gets an addressable URL.
//
// The index check is advisory: two concurrent allocations can both see
// base as free. The database unique constraint stays authoritative, and
// callers retry allocation on a duplicate-key insert.
func (a *slugAllocator) Allocate(title string, index SlugIndex, excludeID uint64) (string, error) {
	base := slug.Normalize(title)
	if base == "" {
		base = "n-a"
	}

	candidate := base
	for i := 2; i <= maxSlugProbes; i++ {
		taken, err := index.SlugTaken(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", common.ErrAllocationExhausted
}
