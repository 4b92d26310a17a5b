package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")

	// Article errors
	ErrArticleNotFound     = errors.New("article not found")
	ErrArticleNotPublished = errors.New("article is not published")
	ErrEmptyTitle          = errors.New("title must not be empty")
	ErrDescriptionTooLong  = errors.New("description exceeds the maximum length")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is still referenced by articles")
	ErrCycle            = errors.New("move would create a cycle")

	// Comment errors
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentMismatch  = errors.New("parent comment belongs to a different article")
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrContentTooLong  = errors.New("content exceeds the maximum length")

	// Rating errors
	ErrInvalidValue = errors.New("rating value must be +1 or -1")
	ErrVoteConflict = errors.New("a vote for this article was already cast by this identity")

	// Slug errors
	ErrAllocationExhausted = errors.New("slug allocation exhausted the probe budget")
)
