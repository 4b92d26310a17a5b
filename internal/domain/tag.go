package domain

import "time"

// Tag is a normalized tag name shared across articles.
type Tag struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(50);uniqueIndex" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(50);uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// ArticleTag links an article to a tag.
type ArticleTag struct {
	ArticleID uint64 `gorm:"column:article_id;primaryKey" json:"article_id"`
	TagID     uint64 `gorm:"column:tag_id;primaryKey" json:"tag_id"`
}

func (ArticleTag) TableName() string { return "article_tags" }
