package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/config"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
	"github.com/inkwell-press/inkwell-backend/internal/repository"
	"github.com/inkwell-press/inkwell-backend/pkg/logger"
)

// ArticleService defines the interface for article business logic
type ArticleService interface {
	Create(req *domain.CreateArticleRequest) (*domain.Article, error)
	Update(id uint64, req *domain.UpdateArticleRequest) (*domain.Article, error)
	Delete(id uint64) error
	GetByID(id uint64) (*domain.Article, error)
	GetBySlug(slug string) (*domain.Article, error)
	ListPublished(q domain.ArticleQuery) ([]*domain.Article, int64, error)
	ListRevisions(articleID uint64) ([]*domain.ArticleRevision, error)
	ReassignAuthor(oldAuthorID, placeholderID uint64) (int64, error)
}

type articleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	revisionRepo repository.RevisionRepository
	allocator    SlugAllocator
	policy       config.ContentConfig
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo repository.ArticleRepository, categoryRepo repository.CategoryRepository, revisionRepo repository.RevisionRepository, allocator SlugAllocator, policy config.ContentConfig) ArticleService {
	return &articleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		revisionRepo: revisionRepo,
		allocator:    allocator,
		policy:       policy,
	}
}

func validateStatus(status string) error {
	if status != domain.StatusPublished && status != domain.StatusDraft {
		return common.ErrInvalidInput
	}
	return nil
}

func (s *articleService) Create(req *domain.CreateArticleRequest) (*domain.Article, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, common.ErrEmptyTitle
	}
	if len(req.Description) > domain.MaxDescriptionLength {
		return nil, common.ErrDescriptionTooLong
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPublished
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, err
	}

	// The allocator's probe is advisory; the unique slug index is the
	// arbiter. A concurrent create that wins the same slug pushes the
	// loser back through allocation.
	var article *domain.Article
	for attempt := 0; attempt < 3; attempt++ {
		assigned, err := s.allocator.Allocate(title, s.articleRepo, 0)
		if err != nil {
			return nil, err
		}

		article = &domain.Article{
			Title:       title,
			Slug:        assigned,
			Description: req.Description,
			Body:        req.Body,
			Thumbnail:   req.Thumbnail,
			Status:      status,
			AuthorID:    req.AuthorID,
			CategoryID:  req.CategoryID,
			Tags:        req.Tags,
		}
		err = s.articleRepo.Create(article)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("slug %q lost a race, reallocating", assigned)
			article = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if article == nil {
		return nil, common.ErrAllocationExhausted
	}

	s.recordRevision(article, domain.ChangeCreate, req.AuthorID)
	return article, nil
}

func (s *articleService) Update(id uint64, req *domain.UpdateArticleRequest) (*domain.Article, error) {
	fields := map[string]interface{}{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, common.ErrEmptyTitle
		}
		fields["title"] = title
	}
	if req.Description != nil {
		if len(*req.Description) > domain.MaxDescriptionLength {
			return nil, common.ErrDescriptionTooLong
		}
		fields["description"] = *req.Description
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if req.Thumbnail != nil {
		fields["thumbnail"] = *req.Thumbnail
	}
	if req.Status != nil {
		if err := validateStatus(*req.Status); err != nil {
			return nil, err
		}
		fields["status"] = *req.Status
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Pinned != nil {
		fields["pinned"] = *req.Pinned
	}
	if len(fields) == 0 && req.Tags == nil {
		return nil, common.ErrInvalidInput
	}
	fields["editor_id"] = req.EditorID

	if err := s.articleRepo.Update(id, fields, req.Tags); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.recordRevision(article, domain.ChangeUpdate, req.EditorID)
	return article, nil
}

// Delete removes the article together with its comments, ratings and
// tag links.
func (s *articleService) Delete(id uint64) error {
	return s.articleRepo.Delete(id)
}

func (s *articleService) GetByID(id uint64) (*domain.Article, error) {
	return s.articleRepo.FindByID(id)
}

// GetBySlug resolves an article by its URL identity. Drafts resolve
// too; caller-facing layers decide whether the reader may see them.
func (s *articleService) GetBySlug(slug string) (*domain.Article, error) {
	return s.articleRepo.FindBySlug(slug)
}

// ListPublished lists published articles, optionally narrowed to a
// category subtree and a tag. A category filter covers the category
// and everything beneath it. Page sizes are clamped to the configured
// content policy.
func (s *articleService) ListPublished(q domain.ArticleQuery) ([]*domain.Article, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	pageSize := s.policy.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	maxPageSize := s.policy.MaxPageSize
	if maxPageSize < 1 {
		maxPageSize = domain.MaxPageSize
	}
	if q.Limit < 1 {
		q.Limit = pageSize
	} else if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.CategoryID != 0 {
		category, err := s.categoryRepo.FindByID(q.CategoryID)
		if err != nil {
			return nil, 0, err
		}
		q.CategoryPath = category.Path
	}
	return s.articleRepo.ListPublished(q)
}

func (s *articleService) ListRevisions(articleID uint64) ([]*domain.ArticleRevision, error) {
	if _, err := s.articleRepo.FindByID(articleID); err != nil {
		return nil, err
	}
	return s.revisionRepo.ListByArticle(articleID)
}

// ReassignAuthor moves every article owned by oldAuthorID to a
// placeholder identity, typically ahead of account deletion. Returns
// how many articles moved.
func (s *articleService) ReassignAuthor(oldAuthorID, placeholderID uint64) (int64, error) {
	if oldAuthorID == 0 || placeholderID == 0 || oldAuthorID == placeholderID {
		return 0, common.ErrInvalidInput
	}
	return s.articleRepo.ReassignAuthor(oldAuthorID, placeholderID)
}

// recordRevision appends a history snapshot after the content write has
// committed. History is advisory, so a failed snapshot logs and moves
// on rather than failing the mutation.
func (s *articleService) recordRevision(article *domain.Article, changeType string, editedBy uint64) {
	version, err := s.revisionRepo.NextVersion(article.ID)
	if err != nil {
		logger.Warn("revision version lookup failed for article %d: %v", article.ID, err)
		return
	}
	rev := &domain.ArticleRevision{
		ArticleID:  article.ID,
		Version:    version,
		ChangeType: changeType,
		Title:      article.Title,
		Body:       article.Body,
		EditedBy:   editedBy,
	}
	if err := s.revisionRepo.Create(rev); err != nil {
		logger.Warn("revision write failed for article %d: %v", article.ID, err)
	}
}
