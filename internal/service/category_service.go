package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell-press/inkwell-backend/internal/common"
	"github.com/inkwell-press/inkwell-backend/internal/domain"
	"github.com/inkwell-press/inkwell-backend/internal/repository"
	"github.com/inkwell-press/inkwell-backend/pkg/cache"
	"github.com/inkwell-press/inkwell-backend/pkg/logger"
	"github.com/inkwell-press/inkwell-backend/pkg/tree"
)

// CategoryService defines the interface for category tree business logic
type CategoryService interface {
	Create(req *domain.CreateCategoryRequest) (*domain.Category, error)
	Rename(id uint64, title, description string) error
	Move(id uint64, newParentID *uint64) error
	Delete(id uint64) error
	GetByID(id uint64) (*domain.Category, error)
	GetBySlug(slug string) (*domain.Category, error)
	Tree() ([]*domain.Category, error)
	Subtree(id uint64) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	allocator    SlugAllocator
	cache        cache.Service
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, allocator SlugAllocator, cacheService cache.Service) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		allocator:    allocator,
		cache:        cacheService,
	}
}

// byTitle orders siblings case-insensitively, id as tiebreaker so the
// order is stable across equal titles.
func byTitle(a, b *domain.Category) bool {
	at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
	if at != bt {
		return at < bt
	}
	return a.ID < b.ID
}

func (s *categoryService) Create(req *domain.CreateCategoryRequest) (*domain.Category, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, common.ErrEmptyTitle
	}

	// Two creates can race the same title past the advisory probe; the
	// unique slug index decides, and the loser re-allocates.
	for attempt := 0; attempt < 3; attempt++ {
		assigned, err := s.allocator.Allocate(title, s.categoryRepo, 0)
		if err != nil {
			return nil, err
		}

		category := &domain.Category{
			ParentID:    req.ParentID,
			Title:       title,
			Slug:        assigned,
			Description: req.Description,
		}
		err = s.categoryRepo.Create(category)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("slug %q lost a race, reallocating", assigned)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.invalidateTree()
		return category, nil
	}

	return nil, common.ErrAllocationExhausted
}

func (s *categoryService) Rename(id uint64, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return common.ErrEmptyTitle
	}

	if err := s.categoryRepo.Update(id, title, description); err != nil {
		return err
	}
	s.invalidateTree()
	return nil
}

func (s *categoryService) Move(id uint64, newParentID *uint64) error {
	if err := s.categoryRepo.Move(id, newParentID); err != nil {
		return err
	}
	s.invalidateTree()
	return nil
}

func (s *categoryService) Delete(id uint64) error {
	if err := s.categoryRepo.DeleteSubtree(id); err != nil {
		return err
	}
	s.invalidateTree()
	return nil
}

func (s *categoryService) GetByID(id uint64) (*domain.Category, error) {
	return s.categoryRepo.FindByID(id)
}

func (s *categoryService) GetBySlug(slug string) (*domain.Category, error) {
	return s.categoryRepo.FindBySlug(slug)
}

// Tree returns the whole category forest, siblings ordered by title.
func (s *categoryService) Tree() ([]*domain.Category, error) {
	if s.cache != nil {
		var cached []*domain.Category
		if err := s.cache.GetTree(context.Background(), &cached); err == nil {
			return cached, nil
		}
	}

	all, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	roots := tree.Build(all, byTitle)

	if s.cache != nil {
		if err := s.cache.SetTree(context.Background(), roots); err != nil {
			logger.Warn("category tree cache write failed: %v", err)
		}
	}
	return roots, nil
}

// Subtree returns the node and its descendants as a tree, siblings
// ordered by title.
func (s *categoryService) Subtree(id uint64) (*domain.Category, error) {
	nodes, err := s.categoryRepo.Subtree(id)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, common.ErrCategoryNotFound
	}

	// The subtree root's parent sits outside the result set, so Build
	// promotes it to a root automatically.
	roots := tree.Build(nodes, byTitle)
	for _, root := range roots {
		if root.ID == id {
			return root, nil
		}
	}
	return nil, common.ErrCategoryNotFound
}

func (s *categoryService) invalidateTree() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTree(context.Background()); err != nil {
		logger.Warn("category tree cache invalidation failed: %v", err)
	}
}
