package repository

import (
	"gorm.io/gorm"

	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

// RevisionRepository defines data access for article edit history.
type RevisionRepository interface {
	Create(revision *domain.ArticleRevision) error
	ListByArticle(articleID uint64) ([]*domain.ArticleRevision, error)
	NextVersion(articleID uint64) (uint, error)
}

type revisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a new RevisionRepository.
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Create(revision *domain.ArticleRevision) error {
	return r.db.Create(revision).Error
}

func (r *revisionRepository) ListByArticle(articleID uint64) ([]*domain.ArticleRevision, error) {
	var revisions []*domain.ArticleRevision
	err := r.db.Where("article_id = ?", articleID).
		Order("version DESC").
		Find(&revisions).Error
	return revisions, err
}

func (r *revisionRepository) NextVersion(articleID uint64) (uint, error) {
	var maxVersion *uint
	err := r.db.Model(&domain.ArticleRevision{}).
		Where("article_id = ?", articleID).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 1, err
	}
	if maxVersion == nil {
		return 1, nil
	}
	return *maxVersion + 1, nil
}
