package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

// ArticleRepository defines data access for articles and their tag set.
type ArticleRepository interface {
	// Create inserts an article with its tag set in one transaction.
	// The referenced category is locked inside that transaction, so a
	// concurrent subtree delete cannot leave the reference dangling; a
	// missing category yields common.ErrCategoryNotFound. A slug
	// collision surfaces as gorm.ErrDuplicatedKey so the caller can
	// re-allocate and retry.
	Create(article *domain.Article) error

	// Update rewrites the given columns and, when tags is non-nil,
	// replaces the tag set, all in one transaction. A category_id
	// column change locks the new category the way Create does.
	Update(id uint64, fields map[string]interface{}, tags []string) error

	// FindByID retrieves an article with its tags.
	FindByID(id uint64) (*domain.Article, error)

	// FindBySlug retrieves an article with its tags.
	FindBySlug(slug string) (*domain.Article, error)

	// ListPublished returns published articles matching the query plus
	// the total match count. Category filtering includes descendant
	// categories via the materialized path prefix, in one statement.
	ListPublished(q domain.ArticleQuery) ([]*domain.Article, int64, error)

	// Delete removes the article and everything it owns: comments,
	// ratings and tag links, in one transaction.
	Delete(id uint64) error

	// ReassignAuthor rewrites authorship from one identity to a
	// designated placeholder, returning the number of rows touched.
	ReassignAuthor(oldAuthorID, placeholderID uint64) (int64, error)

	// SlugTaken reports whether a slug is used by an article other
	// than excludeID.
	SlugTaken(slug string, excludeID uint64) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *domain.Article) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockCategory(tx, article.CategoryID); err != nil {
			return err
		}
		tags := article.Tags
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return replaceTags(tx, article.ID, tags)
	})
}

func (r *articleRepository) Update(id uint64, fields map[string]interface{}, tags []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if categoryID, ok := fields["category_id"].(uint64); ok {
			if err := lockCategory(tx, categoryID); err != nil {
				return err
			}
		}
		if len(fields) > 0 {
			result := tx.Model(&domain.Article{}).
				Where("id = ?", id).
				Updates(fields)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return common.ErrArticleNotFound
			}
		}
		if tags != nil {
			if err := tx.Where("article_id = ?", id).
				Delete(&domain.ArticleTag{}).Error; err != nil {
				return err
			}
			return replaceTags(tx, id, tags)
		}
		return nil
	})
}

func (r *articleRepository) FindByID(id uint64) (*domain.Article, error) {
	var article domain.Article
	err := r.db.First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(&article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindBySlug(slug string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.Where("slug = ?", slug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(&article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListPublished(q domain.ArticleQuery) ([]*domain.Article, int64, error) {
	// The service clamps to the configured content policy; this guard
	// only covers callers that reach the repository directly.
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > domain.MaxPageSize {
		limit = domain.DefaultPageSize
	}

	query := r.db.Model(&domain.Article{}).
		Where("articles.status = ?", domain.StatusPublished)

	if q.CategoryPath != "" {
		query = query.
			Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.path LIKE ?", likePrefix(q.CategoryPath))
	}
	if q.Tag != "" {
		query = query.
			Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", q.Tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Order {
	case domain.OrderNewest:
		query = query.Order("articles.created_at DESC, articles.id DESC")
	case domain.OrderOldest:
		query = query.Order("articles.created_at ASC, articles.id ASC")
	case domain.OrderUpdated:
		query = query.Order("articles.updated_at DESC, articles.id DESC")
	default:
		// Pinned articles float above recency.
		query = query.Order("articles.pinned DESC, articles.created_at DESC, articles.id DESC")
	}

	var articles []*domain.Article
	err := query.Offset((page - 1) * limit).Limit(limit).Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	for _, a := range articles {
		if err := r.loadTags(a); err != nil {
			return nil, 0, err
		}
	}
	return articles, total, nil
}

func (r *articleRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Article{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrArticleNotFound
		}
		if err := tx.Where("article_id = ?", id).
			Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).
			Delete(&domain.Rating{}).Error; err != nil {
			return err
		}
		return tx.Where("article_id = ?", id).
			Delete(&domain.ArticleTag{}).Error
	})
}

func (r *articleRepository) ReassignAuthor(oldAuthorID, placeholderID uint64) (int64, error) {
	result := r.db.Model(&domain.Article{}).
		Where("author_id = ?", oldAuthorID).
		UpdateColumn("author_id", placeholderID)
	return result.RowsAffected, result.Error
}

func (r *articleRepository) SlugTaken(slug string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&domain.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// lockCategory reads the category row FOR UPDATE and holds the lock
// for the rest of the transaction. A concurrent subtree delete needs
// the same locks, so one side always observes the other side's commit:
// the insert fails with ErrCategoryNotFound, or the delete sees the
// committed article and fails with ErrCategoryInUse.
func lockCategory(tx *gorm.DB, categoryID uint64) error {
	var category domain.Category
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&category, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrCategoryNotFound
	}
	return err
}

// loadTags fills the virtual Tags field from the join table.
func (r *articleRepository) loadTags(article *domain.Article) error {
	var names []string
	err := r.db.Model(&domain.Tag{}).
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("article_tags.article_id = ?", article.ID).
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return fmt.Errorf("load tags for article %d: %w", article.ID, err)
	}
	article.Tags = names
	return nil
}
