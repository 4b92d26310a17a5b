package migration

import (
	"gorm.io/gorm"

	"github.com/inkwell-press/inkwell-backend/internal/domain"
)

// Run executes AutoMigrate for every content table. AutoMigrate creates
// missing tables and indexes and leaves existing ones alone, so Run is
// safe to call on every boot.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Category{},
		&domain.Article{},
		&domain.ArticleRevision{},
		&domain.Tag{},
		&domain.ArticleTag{},
		&domain.Comment{},
		&domain.Rating{},
	)
}

// Seed inserts a root category when the table is empty, so a fresh
// install has somewhere to publish.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	root := &domain.Category{
		Title:       "General",
		Slug:        "general",
		Description: "Default publishing category",
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(root).Error; err != nil {
			return err
		}
		return tx.Model(root).
			UpdateColumn("path", domain.ChildPath("", root.ID)).Error
	})
}
