package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-press/inkwell-backend/internal/common"
)

// fakeSlugIndex backs SlugIndex with a set, standing in for the unique
// column.
type fakeSlugIndex struct {
	taken map[string]bool
}

func newFakeSlugIndex(slugs ...string) *fakeSlugIndex {
	idx := &fakeSlugIndex{taken: make(map[string]bool)}
	for _, s := range slugs {
		idx.taken[s] = true
	}
	return idx
}

func (f *fakeSlugIndex) SlugTaken(candidate string, _ uint64) (bool, error) {
	return f.taken[candidate], nil
}

func TestAllocate_FreeBase(t *testing.T) {
	alloc := NewSlugAllocator()
	idx := newFakeSlugIndex()

	got, err := alloc.Allocate("Going to the Park", idx, 0)

	assert.NoError(t, err)
	assert.Equal(t, "going-to-the-park", got)
}

func TestAllocate_SuffixOnCollision(t *testing.T) {
	alloc := NewSlugAllocator()
	idx := newFakeSlugIndex("news")

	got, err := alloc.Allocate("News", idx, 0)

	assert.NoError(t, err)
	assert.Equal(t, "news-2", got)
}

func TestAllocate_SkipsSequentialSuffixes(t *testing.T) {
	alloc := NewSlugAllocator()
	idx := newFakeSlugIndex("news", "news-2", "news-3")

	got, err := alloc.Allocate("News", idx, 0)

	assert.NoError(t, err)
	assert.Equal(t, "news-4", got)
}

func TestAllocate_SameTitleTwiceDistinct(t *testing.T) {
	alloc := NewSlugAllocator()
	idx := newFakeSlugIndex()

	first, err := alloc.Allocate("Launch Day", idx, 0)
	assert.NoError(t, err)
	idx.taken[first] = true

	second, err := alloc.Allocate("Launch Day", idx, 0)
	assert.NoError(t, err)

	assert.Equal(t, "launch-day", first)
	assert.Equal(t, "launch-day-2", second)
	assert.NotEqual(t, first, second)
}

func TestAllocate_EmptyNormalization(t *testing.T) {
	alloc := NewSlugAllocator()
	idx := newFakeSlugIndex()

	got, err := alloc.Allocate("???", idx, 0)

	assert.NoError(t, err)
	assert.Equal(t, "n-a", got)
}

func TestAllocate_Exhausted(t *testing.T) {
	alloc := NewSlugAllocator()
	idx := newFakeSlugIndex("n-a")
	for i := 2; i <= maxSlugProbes; i++ {
		idx.taken[fmt.Sprintf("n-a-%d", i)] = true
	}

	_, err := alloc.Allocate("???", idx, 0)

	assert.ErrorIs(t, err, common.ErrAllocationExhausted)
}

func TestAllocate_CyrillicTitle(t *testing.T) {
	alloc := NewSlugAllocator()
	idx := newFakeSlugIndex()

	got, err := alloc.Allocate("Запуск, день первый", idx, 0)

	assert.NoError(t, err)
	assert.Equal(t, "zapusk-den-pervyj", got)
}
