package service

import (
	"github.com/stretchr/testify/mock"

	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

// --- Mock CategoryRepository ---

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(category *domain.Category) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryRepo) FindByID(id uint64) (*domain.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindBySlug(slug string) (*domain.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListAll() ([]*domain.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Subtree(id uint64) ([]*domain.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(id uint64, title, description string) error {
	return m.Called(id, title, description).Error(0)
}

func (m *mockCategoryRepo) Move(id uint64, newParentID *uint64) error {
	return m.Called(id, newParentID).Error(0)
}

func (m *mockCategoryRepo) DeleteSubtree(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockCategoryRepo) SlugTaken(slug string, excludeID uint64) (bool, error) {
	args := m.Called(slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ArticleRepository ---

type mockArticleRepo struct {
	mock.Mock
}

func (m *mockArticleRepo) Create(article *domain.Article) error {
	return m.Called(article).Error(0)
}

func (m *mockArticleRepo) Update(id uint64, fields map[string]interface{}, tags []string) error {
	return m.Called(id, fields, tags).Error(0)
}

func (m *mockArticleRepo) FindByID(id uint64) (*domain.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) FindBySlug(slug string) (*domain.Article, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *mockArticleRepo) ListPublished(q domain.ArticleQuery) ([]*domain.Article, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *mockArticleRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockArticleRepo) ReassignAuthor(oldAuthorID, placeholderID uint64) (int64, error) {
	args := m.Called(oldAuthorID, placeholderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockArticleRepo) SlugTaken(slug string, excludeID uint64) (bool, error) {
	args := m.Called(slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CommentRepository ---

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(comment *domain.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentRepo) FindByID(id uint64) (*domain.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) ListByArticle(articleID uint64) ([]*domain.Comment, error) {
	args := m.Called(articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) DeleteIDs(articleID uint64, ids []uint64) error {
	return m.Called(articleID, ids).Error(0)
}

// --- Mock RatingRepository ---

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) Cast(rating *domain.Rating) error {
	return m.Called(rating).Error(0)
}

func (m *mockRatingRepo) Upsert(rating *domain.Rating) error {
	return m.Called(rating).Error(0)
}

func (m *mockRatingRepo) Find(articleID uint64, voter string) (*domain.Rating, error) {
	args := m.Called(articleID, voter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *mockRatingRepo) SumByArticle(articleID uint64) (int64, error) {
	args := m.Called(articleID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RevisionRepository ---

type mockRevisionRepo struct {
	mock.Mock
}

func (m *mockRevisionRepo) Create(revision *domain.ArticleRevision) error {
	return m.Called(revision).Error(0)
}

func (m *mockRevisionRepo) ListByArticle(articleID uint64) ([]*domain.ArticleRevision, error) {
	args := m.Called(articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArticleRevision), args.Error(1)
}

func (m *mockRevisionRepo) NextVersion(articleID uint64) (uint, error) {
	args := m.Called(articleID)
	return args.Get(0).(uint), args.Error(1)
}
