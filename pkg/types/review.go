package types

import "time"

type Review struct {
	ID        string    `db:"id" json:"id"`
	AdID      string    `db:"ad_id" json:"ad_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   *string   `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateReview struct {
	Rating  *int    `db:"rating" json:"rating"`
	Comment *string `db:"comment" json:"comment"`
}

type ReviewSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
