package types

import "time"

// Ad.Status is false while the ad awaits moderation and true once approved.
type Ad struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	BusinessID  string    `db:"business_id" json:"business_id"`
	CategoryID  string    `db:"category_id" json:"category_id"`
	Description *string   `db:"description" json:"description"`
	PostDate    string    `db:"post_date" json:"post_date"`
	DueDate     string    `db:"due_date" json:"due_date"`
	Status      bool      `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// UpdateAd deliberately has no status field; the only status transition
// is the approve endpoint.
type UpdateAd struct {
	Title       *string `db:"title" json:"title"`
	BusinessID  *string `db:"business_id" json:"business_id"`
	CategoryID  *string `db:"category_id" json:"category_id"`
	Description *string `db:"description" json:"description"`
	PostDate    *string `db:"post_date" json:"post_date"`
	DueDate     *string `db:"due_date" json:"due_date"`
}

// AdFilter is decoded from the list query string. Both filters combine
// with AND semantics when supplied together.
type AdFilter struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
}
