package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

// CommentRepository defines data access for threaded comments.
type CommentRepository interface {
	// Create inserts a comment.
	Create(comment *domain.Comment) error

	// FindByID retrieves a comment by id.
	FindByID(id uint64) (*domain.Comment, error)

	// ListByArticle returns every comment of an article in one query,
	// newest first. Tree assembly happens in memory; there is no
	// per-node query.
	ListByArticle(articleID uint64) ([]*domain.Comment, error)

	// DeleteIDs removes the given comments of an article.
	DeleteIDs(articleID uint64, ids []uint64) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(id uint64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByArticle(articleID uint64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Where("article_id = ?", articleID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) DeleteIDs(articleID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("article_id = ? AND id IN ?", articleID, ids).
		Delete(&domain.Comment{}).Error
}
