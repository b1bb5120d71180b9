package models

import (
	"time"

	"github.com/lib/pq"
)

// Creation types. The set is closed for now; new capabilities add to it.
const (
	TypeArticle      = "article"
	TypeBlogTitle    = "blog-title"
	TypeImage        = "image"
	TypeResumeReview = "resume-review"
)

// Creation is one persisted generation result. Rows are written exactly
// once per successful upstream call and never deleted; only publish and
// likes change afterwards.
type Creation struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Prompt    string         `json:"prompt"`
	Content   string         `json:"content"`
	Type      string         `json:"type"`
	Publish   bool           `json:"publish"`
	Likes     pq.StringArray `json:"likes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
