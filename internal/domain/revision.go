package domain

import "time"

// Revision change types
const (
	ChangeCreate = "create"
	ChangeUpdate = "update"
)

// ArticleRevision snapshots an article at each mutation. History is
// advisory: readers reconstruct edits from it, but the live row stays
// authoritative.
type ArticleRevision struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ArticleID  uint64    `gorm:"column:article_id;index" json:"article_id"`
	Version    uint      `gorm:"column:version" json:"version"`
	ChangeType string    `gorm:"column:change_type;type:varchar(20)" json:"change_type"`
	Title      string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Body       string    `gorm:"column:body;type:mediumtext" json:"body"`
	EditedBy   uint64    `gorm:"column:edited_by" json:"edited_by"`
	EditedAt   time.Time `gorm:"column:edited_at;autoCreateTime" json:"edited_at"`
}

func (ArticleRevision) TableName() string { return "article_revisions" }
