package types

import "time"

type BusinessProfile struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Address     string    `db:"address" json:"address"`
	Phone       string    `db:"phone" json:"phone"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type UpdateBusinessProfile struct {
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Address     *string `db:"address" json:"address"`
	Phone       *string `db:"phone" json:"phone"`
}
