// repo_test.go provides a shared test database helper for the
// repository integration tests. Tests are skipped if MySQL is not
// available.
package repository

import (
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell-press/inkwell-backend/internal/domain"
	"github.com/inkwell-press/inkwell-backend/internal/migration"
)

// testDSN returns the MySQL connection string for testing. Uses
// environment variables with local defaults.
func testDSN() string {
	host := envOr("MYSQL_HOST", "127.0.0.1")
	port := envOr("MYSQL_PORT", "3306")
	user := envOr("MYSQL_USER", "inkwell")
	pass := envOr("MYSQL_PASSWORD", "")
	name := envOr("MYSQL_DB", "inkwell_test")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens the test database and runs migrations. If the database
// is unavailable the test is skipped. TranslateError is on, matching
// production: the slug and vote paths rely on gorm.ErrDuplicatedKey.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.Open(testDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := migration.Run(db); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *gorm.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Where("slug = ?", s).Delete(&domain.Category{})
	}
}

// cleanArticles removes a test article and its dependents by slug.
// Call in t.Cleanup().
func cleanArticles(t *testing.T, db *gorm.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		var article domain.Article
		if err := db.Where("slug = ?", s).First(&article).Error; err != nil {
			continue
		}
		db.Where("article_id = ?", article.ID).Delete(&domain.Comment{})
		db.Where("article_id = ?", article.ID).Delete(&domain.Rating{})
		db.Where("article_id = ?", article.ID).Delete(&domain.ArticleTag{})
		db.Where("article_id = ?", article.ID).Delete(&domain.ArticleRevision{})
		db.Delete(&article)
	}
}
