package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
	"github.com/inkwell-press/inkwell-backend/internal/repository"
	"github.com/inkwell-press/inkwell-backend/pkg/cache"
	"github.com/inkwell-press/inkwell-backend/pkg/logger"
)

// RatingService defines the interface for the vote ledger business logic
type RatingService interface {
	// Cast records one vote. With upsert false a repeat vote by the
	// same voter is rejected; with upsert true it replaces the earlier
	// one.
	Cast(articleID uint64, voter string, value int, upsert bool) error
	Aggregate(articleID uint64) (int64, error)
	Find(articleID uint64, voter string) (*domain.Rating, error)
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	articleRepo repository.ArticleRepository
	cache       cache.Service
}

// NewRatingService creates a new RatingService
func NewRatingService(ratingRepo repository.RatingRepository, articleRepo repository.ArticleRepository, cacheService cache.Service) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		articleRepo: articleRepo,
		cache:       cacheService,
	}
}

func (s *ratingService) Cast(articleID uint64, voter string, value int, upsert bool) error {
	if value != domain.RatingUp && value != domain.RatingDown {
		return common.ErrInvalidValue
	}
	if voter == "" {
		return common.ErrInvalidInput
	}

	article, err := s.articleRepo.FindByID(articleID)
	if err != nil {
		return err
	}
	if !article.IsPublished() {
		return common.ErrArticleNotPublished
	}

	rating := &domain.Rating{
		ArticleID: articleID,
		Voter:     voter,
		Value:     value,
	}

	if upsert {
		err = s.ratingRepo.Upsert(rating)
	} else {
		err = s.ratingRepo.Cast(rating)
		// The unique index on (article_id, voter) is the arbiter: of
		// two concurrent casts exactly one inserts, the other lands
		// here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrVoteConflict
		}
	}
	if err != nil {
		return err
	}

	s.invalidateScore(articleID)
	return nil
}

// Aggregate returns the article's score, the signed sum over the whole
// ledger. Zero distinguishes nothing: no votes and perfectly split
// votes both sum to zero.
func (s *ratingService) Aggregate(articleID uint64) (int64, error) {
	if s.cache != nil {
		if score, err := s.cache.GetScore(context.Background(), articleID); err == nil {
			return score, nil
		}
	}

	if _, err := s.articleRepo.FindByID(articleID); err != nil {
		return 0, err
	}
	score, err := s.ratingRepo.SumByArticle(articleID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetScore(context.Background(), articleID, score); err != nil {
			logger.Warn("score cache write failed for article %d: %v", articleID, err)
		}
	}
	return score, nil
}

func (s *ratingService) Find(articleID uint64, voter string) (*domain.Rating, error) {
	return s.ratingRepo.Find(articleID, voter)
}

func (s *ratingService) invalidateScore(articleID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateScore(context.Background(), articleID); err != nil {
		logger.Warn("score cache invalidation failed for article %d: %v", articleID, err)
	}
}
