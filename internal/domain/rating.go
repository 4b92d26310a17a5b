package domain

import (
	"fmt"
	"time"
)

// Rating values
const (
	RatingUp   = 1
	RatingDown = -1
)

// Rating is one vote in the append-only ledger. The composite unique
// index on (article_id, voter) is the only concurrency control votes
// need: a losing concurrent cast surfaces as a duplicate-key error.
// Rows are immutable; an opted-in upsert replaces the row atomically
// rather than mutating it in place.
type Rating struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ArticleID uint64    `gorm:"column:article_id;uniqueIndex:idx_article_voter" json:"article_id"`
	Voter     string    `gorm:"column:voter;type:varchar(64);uniqueIndex:idx_article_voter" json:"voter"`
	Value     int       `gorm:"column:value" json:"value"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Rating) TableName() string { return "ratings" }

// VoterFromUser builds a voter identity for an authenticated user.
func VoterFromUser(userID uint64) string {
	return fmt.Sprintf("user:%d", userID)
}

// VoterFromAddr builds a voter identity for an anonymous request from
// its source address. Distinct anonymous users behind one address share
// this identity and therefore collide; that is an accepted limitation
// of anonymous voting, not a defect.
func VoterFromAddr(addr string) string {
	return "addr:" + addr
}
