package types

import "time"

type Category struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateCategory struct {
	Name *string `db:"name" json:"name"`
}

// AdCategory links one ad to one category. The pair is the primary key.
type AdCategory struct {
	AdID       string    `db:"ad_id" json:"ad_id"`
	CategoryID string    `db:"category_id" json:"category_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// UpdateAdCategory re-points a link; nil fields keep their side of the
// pair.
type UpdateAdCategory struct {
	AdID       *string `db:"ad_id" json:"ad_id"`
	CategoryID *string `db:"category_id" json:"category_id"`
}
