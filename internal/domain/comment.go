package domain

import "time"

// MaxCommentLength bounds comment content size.
const MaxCommentLength = 1000

// Comment is a threaded comment on an article. The parent, when set,
// must belong to the same article. Comments are append-only: once
// posted they never move to another parent.
type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ArticleID uint64    `gorm:"column:article_id;index:idx_article_parent" json:"article_id"`
	ParentID  *uint64   `gorm:"column:parent_id;index:idx_article_parent" json:"parent_id,omitempty"`
	AuthorID  uint64    `gorm:"column:author_id;index" json:"author_id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	Status    string    `gorm:"column:status;type:enum('published','draft');default:'published'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Children is populated by tree assembly, never stored.
	Children []*Comment `gorm:"-" json:"children,omitempty"`
}

func (Comment) TableName() string { return "comments" }

// tree.Node implementation

func (c *Comment) TreeID() uint64 { return c.ID }

func (c *Comment) TreeParentID() *uint64 { return c.ParentID }

func (c *Comment) AddChild(child *Comment) { c.Children = append(c.Children, child) }

func (c *Comment) TreeChildren() []*Comment { return c.Children }

// CreateCommentRequest carries caller input for posting a comment.
type CreateCommentRequest struct {
	ArticleID uint64  `json:"article_id"`
	ParentID  *uint64 `json:"parent_id"`
	Content   string  `json:"content"`
	AuthorID  uint64  `json:"-"`
}
