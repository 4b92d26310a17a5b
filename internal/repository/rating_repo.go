package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

// RatingRepository defines data access for the vote ledger. The unique
// (article_id, voter) index does the concurrency control: conflicting
// casts are serialized by the constraint, not by application locks.
type RatingRepository interface {
	// Cast appends a vote. A second vote by the same identity for the
	// same article surfaces as gorm.ErrDuplicatedKey.
	Cast(rating *domain.Rating) error

	// Upsert appends a vote or replaces the identity's prior vote for
	// the article in one atomic statement.
	Upsert(rating *domain.Rating) error

	// Find returns the identity's vote for an article, if any.
	Find(articleID uint64, voter string) (*domain.Rating, error)

	// SumByArticle aggregates the ledger for an article.
	SumByArticle(articleID uint64) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Cast(rating *domain.Rating) error {
	return r.db.Create(rating).Error
}

func (r *ratingRepository) Upsert(rating *domain.Rating) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "voter"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "created_at"}),
	}).Create(rating).Error
}

func (r *ratingRepository) Find(articleID uint64, voter string) (*domain.Rating, error) {
	var rating domain.Rating
	err := r.db.Where("article_id = ? AND voter = ?", articleID, voter).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) SumByArticle(articleID uint64) (int64, error) {
	var sum *int64
	err := r.db.Model(&domain.Rating{}).
		Where("article_id = ?", articleID).
		Select("SUM(value)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
