package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

func createTestArticle(t *testing.T, db *gorm.DB) *domain.Article {
	t.Helper()
	categoryRepo := NewCategoryRepository(db)
	articleRepo := NewArticleRepository(db)

	category := createTestCategory(t, categoryRepo, "Votes", nil)
	article := &domain.Article{
		Title:      "Voted on",
		Slug:       testSlug("art"),
		Status:     domain.StatusPublished,
		AuthorID:   1,
		CategoryID: category.ID,
	}
	require.NoError(t, articleRepo.Create(article))

	t.Cleanup(func() {
		cleanArticles(t, db, article.Slug)
		cleanCategories(t, db, category.Slug)
	})
	return article
}

func TestRatingCast_DuplicateVoterRejected(t *testing.T) {
	db := testDB(t)
	repo := NewRatingRepository(db)
	article := createTestArticle(t, db)

	first := &domain.Rating{ArticleID: article.ID, Voter: "user:1", Value: domain.RatingUp}
	require.NoError(t, repo.Cast(first))

	second := &domain.Rating{ArticleID: article.ID, Voter: "user:1", Value: domain.RatingDown}
	err := repo.Cast(second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The ledger still holds the first vote.
	got, err := repo.Find(article.ID, "user:1")
	require.NoError(t, err)
	assert.Equal(t, domain.RatingUp, got.Value)
}

func TestRatingCast_ConcurrentSameVoter(t *testing.T) {
	db := testDB(t)
	repo := NewRatingRepository(db)
	article := createTestArticle(t, db)

	// Many concurrent casts by one voter: the unique index admits
	// exactly one.
	const casters = 8
	var wg sync.WaitGroup
	errs := make([]error, casters)
	for i := 0; i < casters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Cast(&domain.Rating{
				ArticleID: article.ID,
				Voter:     "user:99",
				Value:     domain.RatingUp,
			})
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, accepted)

	sum, err := repo.SumByArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum)
}

func TestRatingSum_DistinctVoters(t *testing.T) {
	db := testDB(t)
	repo := NewRatingRepository(db)
	article := createTestArticle(t, db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Cast(&domain.Rating{
			ArticleID: article.ID,
			Voter:     fmt.Sprintf("user:%d", i),
			Value:     domain.RatingUp,
		}))
	}
	require.NoError(t, repo.Cast(&domain.Rating{
		ArticleID: article.ID,
		Voter:     "addr:10.0.0.1",
		Value:     domain.RatingDown,
	}))

	sum, err := repo.SumByArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sum)
}

func TestRatingSum_EmptyLedgerIsZero(t *testing.T) {
	db := testDB(t)
	repo := NewRatingRepository(db)
	article := createTestArticle(t, db)

	sum, err := repo.SumByArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestRatingUpsert_ReplacesVote(t *testing.T) {
	db := testDB(t)
	repo := NewRatingRepository(db)
	article := createTestArticle(t, db)

	require.NoError(t, repo.Upsert(&domain.Rating{
		ArticleID: article.ID, Voter: "user:1", Value: domain.RatingUp,
	}))
	require.NoError(t, repo.Upsert(&domain.Rating{
		ArticleID: article.ID, Voter: "user:1", Value: domain.RatingDown,
	}))

	got, err := repo.Find(article.ID, "user:1")
	require.NoError(t, err)
	assert.Equal(t, domain.RatingDown, got.Value)

	sum, err := repo.SumByArticle(article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), sum)
}
