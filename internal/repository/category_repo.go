package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

// CategoryRepository defines data access for the category tree.
type CategoryRepository interface {
	// Create inserts a new category under its parent and materializes
	// its path. A missing parent yields common.ErrCategoryNotFound.
	Create(category *domain.Category) error

	// FindByID retrieves a category by id.
	FindByID(id uint64) (*domain.Category, error)

	// FindBySlug retrieves a category by slug.
	FindBySlug(slug string) (*domain.Category, error)

	// ListAll returns every category ordered by title.
	ListAll() ([]*domain.Category, error)

	// Subtree returns a category and all its descendants in one query.
	Subtree(id uint64) ([]*domain.Category, error)

	// Update rewrites title and description. The slug stays as
	// allocated at creation time.
	Update(id uint64, title, description string) error

	// Move re-parents a category, re-validating the no-cycle invariant
	// against transaction-local state and rewriting descendant paths.
	Move(id uint64, newParentID *uint64) error

	// DeleteSubtree removes a category and its descendants, rejecting
	// with common.ErrCategoryInUse while any article references any
	// category in the subtree.
	DeleteSubtree(id uint64) error

	// SlugTaken reports whether a slug is used by a category other
	// than excludeID.
	SlugTaken(slug string, excludeID uint64) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *domain.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		parentPath := ""
		if category.ParentID != nil {
			var parent domain.Category
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&parent, *category.ParentID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrCategoryNotFound
			}
			if err != nil {
				return fmt.Errorf("load parent category: %w", err)
			}
			parentPath = parent.Path
		}

		if err := tx.Create(category).Error; err != nil {
			return err
		}

		// The path needs the generated id, so it is written in a
		// second statement inside the same transaction.
		category.Path = domain.ChildPath(parentPath, category.ID)
		return tx.Model(&domain.Category{}).
			Where("id = ?", category.ID).
			UpdateColumn("path", category.Path).Error
	})
}

func (r *categoryRepository) FindByID(id uint64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListAll() ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.Order("title ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Subtree(id uint64) ([]*domain.Category, error) {
	root, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	var categories []*domain.Category
	err = r.db.Where("path LIKE ?", likePrefix(root.Path)).
		Order("title ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(id uint64, title, description string) error {
	result := r.db.Model(&domain.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrCategoryNotFound
	}
	return nil
}

// Move re-parents a category. Both endpoints are locked for the length
// of the transaction, so of two concurrent moves that would together
// form a cycle exactly one sees the other's write and fails.
func (r *categoryRepository) Move(id uint64, newParentID *uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var node domain.Category
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&node, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCategoryNotFound
		}
		if err != nil {
			return err
		}

		parentPath := ""
		if newParentID != nil {
			if *newParentID == id {
				return common.ErrCycle
			}
			var parent domain.Category
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&parent, *newParentID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrCategoryNotFound
			}
			if err != nil {
				return err
			}
			// The new parent living inside the node's own subtree
			// would close a cycle.
			if strings.HasPrefix(parent.Path, node.Path) {
				return common.ErrCycle
			}
			parentPath = parent.Path
		}

		oldPrefix := node.Path
		newPrefix := domain.ChildPath(parentPath, node.ID)
		if oldPrefix == newPrefix && equalParent(node.ParentID, newParentID) {
			return nil
		}

		if err := tx.Model(&domain.Category{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"parent_id": newParentID,
				"path":      newPrefix,
			}).Error; err != nil {
			return err
		}

		// One statement rewrites every descendant path.
		return tx.Model(&domain.Category{}).
			Where("path LIKE ? AND id <> ?", likePrefix(oldPrefix), id).
			UpdateColumn("path", gorm.Expr(
				"CONCAT(?, SUBSTRING(path, ?))",
				newPrefix, len(oldPrefix)+1,
			)).Error
	})
}

func (r *categoryRepository) DeleteSubtree(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var node domain.Category
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&node, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCategoryNotFound
		}
		if err != nil {
			return err
		}

		// Lock every category row in the subtree before counting. An
		// in-flight article insert holds its category's row lock, so
		// this read waits for that insert to commit and then sees its
		// article; without the lock the count could read a stale
		// snapshot and delete a category the insert still references.
		var subtreeIDs []uint64
		err = tx.Model(&domain.Category{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("path LIKE ?", likePrefix(node.Path)).
			Pluck("id", &subtreeIDs).Error
		if err != nil {
			return err
		}

		// Reject while any article references the subtree; the admin
		// layer decides how to proceed. This count is a locking read
		// too: a locking read sees the latest committed rows rather
		// than the transaction snapshot, and its index-range locks on
		// category_id block new article inserts into the subtree until
		// the delete commits.
		var referencing int64
		err = tx.Model(&domain.Article{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("category_id IN ?", subtreeIDs).
			Count(&referencing).Error
		if err != nil {
			return err
		}
		if referencing > 0 {
			return common.ErrCategoryInUse
		}

		return tx.Where("path LIKE ?", likePrefix(node.Path)).
			Delete(&domain.Category{}).Error
	})
}

func (r *categoryRepository) SlugTaken(slug string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&domain.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// likePrefix escapes a materialized path for use as a LIKE prefix.
func likePrefix(path string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(path)
	return escaped + "%"
}

func equalParent(a, b *uint64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
