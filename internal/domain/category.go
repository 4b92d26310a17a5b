package domain

import (
	"fmt"
	"time"
)

// Category is a node in the navigation tree. Path materializes the
// ancestry (dot-terminated, zero-padded id segments, self included), so
// subtree reads and cycle checks are single prefix comparisons instead
// of recursive parent walks. Sibling order is not stored: siblings sort
// by title at read time, which makes renames reorder naturally.
type Category struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ParentID    *uint64   `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Title       string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Slug        string    `gorm:"column:slug;type:varchar(255);uniqueIndex" json:"slug"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Path        string    `gorm:"column:path;type:varchar(255);index" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Children is populated by tree assembly, never stored.
	Children []*Category `gorm:"-" json:"children,omitempty"`
}

func (Category) TableName() string { return "categories" }

// PathSegment renders one materialized-path segment for an id.
// Fixed-width segments keep LIKE-prefix matches unambiguous
// ("000012." can never prefix-collide with "000120.").
func PathSegment(id uint64) string { return fmt.Sprintf("%06d.", id) }

// ChildPath derives a node's path from its parent's. Roots pass "".
func ChildPath(parentPath string, id uint64) string {
	return parentPath + PathSegment(id)
}

// tree.Node implementation

func (c *Category) TreeID() uint64 { return c.ID }

func (c *Category) TreeParentID() *uint64 { return c.ParentID }

func (c *Category) AddChild(child *Category) { c.Children = append(c.Children, child) }

func (c *Category) TreeChildren() []*Category { return c.Children }

// CreateCategoryRequest carries caller input for category creation.
type CreateCategoryRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ParentID    *uint64 `json:"parent_id"`
}
