package service

import (
	"strings"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
	"github.com/inkwell-press/inkwell-backend/internal/repository"
	"github.com/inkwell-press/inkwell-backend/pkg/tree"
)

// CommentService defines the interface for threaded comment business logic
type CommentService interface {
	Create(req *domain.CreateCommentRequest) (*domain.Comment, error)
	GetByID(id uint64) (*domain.Comment, error)
	Tree(articleID uint64) ([]*domain.Comment, error)
	Delete(articleID, commentID uint64) (int, error)
	Count(articleID uint64) (int, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

// newestFirst orders sibling comments newest first, id as tiebreaker
// for rows created within the same clock tick.
func newestFirst(a, b *domain.Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (s *commentService) Create(req *domain.CreateCommentRequest) (*domain.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, common.ErrEmptyContent
	}
	if len(content) > domain.MaxCommentLength {
		return nil, common.ErrContentTooLong
	}

	article, err := s.articleRepo.FindByID(req.ArticleID)
	if err != nil {
		return nil, err
	}
	if !article.IsPublished() {
		return nil, common.ErrArticleNotPublished
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.FindByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		// A reply must thread under a comment of the same article.
		if parent.ArticleID != req.ArticleID {
			return nil, common.ErrParentMismatch
		}
	}

	comment := &domain.Comment{
		ArticleID: req.ArticleID,
		ParentID:  req.ParentID,
		AuthorID:  req.AuthorID,
		Content:   content,
		Status:    domain.StatusPublished,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) GetByID(id uint64) (*domain.Comment, error) {
	return s.commentRepo.FindByID(id)
}

// Tree returns the article's comments as a forest of top-level threads,
// siblings newest first at every depth. One bulk read, assembly in
// memory.
func (s *commentService) Tree(articleID uint64) ([]*domain.Comment, error) {
	if _, err := s.articleRepo.FindByID(articleID); err != nil {
		return nil, err
	}

	flat, err := s.commentRepo.ListByArticle(articleID)
	if err != nil {
		return nil, err
	}
	return tree.Build(flat, newestFirst), nil
}

// Delete removes a comment and every reply beneath it, returning how
// many rows went away. Deleting a reply whose thread root survives
// leaves the rest of the thread intact.
func (s *commentService) Delete(articleID, commentID uint64) (int, error) {
	target, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return 0, err
	}
	if target.ArticleID != articleID {
		return 0, common.ErrParentMismatch
	}

	flat, err := s.commentRepo.ListByArticle(articleID)
	if err != nil {
		return 0, err
	}
	roots := tree.Build(flat, newestFirst)

	var doomed []uint64
	tree.Walk(roots, func(c *domain.Comment, _ int) bool {
		if c.ID == commentID {
			doomed = tree.DescendantIDs(c)
			return false
		}
		return true
	})
	if len(doomed) == 0 {
		return 0, common.ErrCommentNotFound
	}

	if err := s.commentRepo.DeleteIDs(articleID, doomed); err != nil {
		return 0, err
	}
	return len(doomed), nil
}

func (s *commentService) Count(articleID uint64) (int, error) {
	flat, err := s.commentRepo.ListByArticle(articleID)
	if err != nil {
		return 0, err
	}
	return len(flat), nil
}
