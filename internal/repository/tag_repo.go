package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-press/inkwell-backend/internal/domain"
	"github.com/inkwell-press/inkwell-backend/pkg/slug"
)

// replaceTags links an article to the named tags, creating missing tag
// rows on the way. Callers clear stale links first when replacing.
func replaceTags(tx *gorm.DB, articleID uint64, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		tag, err := findOrCreateTag(tx, name)
		if err != nil {
			return fmt.Errorf("resolve tag %q: %w", name, err)
		}

		link := &domain.ArticleTag{ArticleID: articleID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(link).Error; err != nil {
			return err
		}
	}
	return nil
}

// findOrCreateTag resolves a tag by name, creating it if needed. Tag
// slugs are derived from the name; a slug collision between distinct
// names gets a numeric suffix. A concurrent create of the same name is
// resolved by re-reading after the duplicate-key error.
func findOrCreateTag(tx *gorm.DB, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	base := slug.Normalize(name)
	if base == "" {
		base = "tag"
	}

	for n := 1; n <= 10; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		tag = domain.Tag{Name: name, Slug: candidate}
		err := tx.Create(&tag).Error
		if err == nil {
			return &tag, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Either the name was created concurrently or the slug is held
		// by another tag; a re-read settles which.
		if rerr := tx.Where("name = ?", name).First(&tag).Error; rerr == nil {
			return &tag, nil
		}
	}
	return nil, fmt.Errorf("could not allocate slug for tag %q", name)
}
