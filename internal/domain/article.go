package domain

import "time"

// Article statuses
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Maximum lengths for opaque text fields. Bodies are formatted blobs
// owned by the rich-text layer; this core only bounds their size.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 500
)

// Article represents a published or draft article. The slug is assigned
// once at creation and never changes afterwards.
type Article struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Slug        string    `gorm:"column:slug;type:varchar(255);uniqueIndex" json:"slug"`
	Description string    `gorm:"column:description;type:varchar(500)" json:"description"`
	Body        string    `gorm:"column:body;type:mediumtext" json:"body"`
	Thumbnail   string    `gorm:"column:thumbnail;type:varchar(500)" json:"thumbnail,omitempty"`
	Status      string    `gorm:"column:status;type:enum('published','draft');default:'published'" json:"status"`
	AuthorID    uint64    `gorm:"column:author_id;index" json:"author_id"`
	EditorID    *uint64   `gorm:"column:editor_id" json:"editor_id,omitempty"`
	CategoryID  uint64    `gorm:"column:category_id;index;not null" json:"category_id"`
	Pinned      bool      `gorm:"column:pinned;default:false" json:"pinned"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Tags is populated by repository reads; the rows live in
	// article_tags.
	Tags []string `gorm:"-" json:"tags"`
}

func (Article) TableName() string { return "articles" }

// IsPublished reports whether the article is visible to readers.
func (a *Article) IsPublished() bool { return a.Status == StatusPublished }

// Fallback listing page sizes, used when no policy is configured.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// List orders accepted by ListPublished.
const (
	OrderDefault = ""        // pinned first, then newest
	OrderNewest  = "newest"  // created_at DESC
	OrderOldest  = "oldest"  // created_at ASC
	OrderUpdated = "updated" // updated_at DESC
)

// ArticleQuery narrows a published-article listing. CategoryPath, when
// set, selects the category and its whole descendant subtree in one
// statement.
type ArticleQuery struct {
	CategoryID   uint64 `json:"category_id,omitempty"`
	CategoryPath string `json:"-"`
	Tag          string `json:"tag,omitempty"`
	Order        string `json:"order,omitempty"`
	Page         int    `json:"page,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// CreateArticleRequest carries caller input for article creation. The
// author identity comes from the excluded identity provider.
type CreateArticleRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Thumbnail   string   `json:"thumbnail"`
	Status      string   `json:"status"`
	CategoryID  uint64   `json:"category_id"`
	Tags        []string `json:"tags"`
	AuthorID    uint64   `json:"-"`
}

// UpdateArticleRequest carries caller input for article updates. Nil
// fields are left untouched; the slug is never part of an update.
type UpdateArticleRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Body        *string  `json:"body"`
	Thumbnail   *string  `json:"thumbnail"`
	Status      *string  `json:"status"`
	CategoryID  *uint64  `json:"category_id"`
	Pinned      *bool    `json:"pinned"`
	Tags        []string `json:"tags"`
	EditorID    uint64   `json:"-"`
}
