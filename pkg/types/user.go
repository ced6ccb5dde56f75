package types

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID             string    `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Role           UserRole  `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// CreateUser is the admin-style create payload; the password arrives in
// plain text and is hashed at the boundary.
type CreateUser struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Role      UserRole `json:"role"`
}

// UpdateUser carries a partial update; nil fields are left untouched.
// Password is hashed at the boundary and lands in hashed_password.
type UpdateUser struct {
	FirstName *string   `db:"first_name" json:"first_name"`
	LastName  *string   `db:"last_name" json:"last_name"`
	Email     *string   `db:"email" json:"email"`
	Role      *UserRole `db:"role" json:"role"`
	Password  *string   `db:"-" json:"password"`

	HashedPassword *string `db:"hashed_password" json:"-"`
}
