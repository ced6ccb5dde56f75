package seed

import (
	"context"
	"errors"
	"fmt"

	"paczusie/internal/auth"
	"paczusie/internal/store"
	"paczusie/pkg/types"
)

type seedUser struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      types.UserRole
}

var seedUsers = []seedUser{
	{Email: "admin@paczusie.local", FirstName: "Admin", LastName: "User", Password: "admin-change-me", Role: types.UserRoleAdmin},
	{Email: "ava.williams+seed@example.com", FirstName: "Ava", LastName: "Williams", Password: "seed-password", Role: types.UserRoleUser},
	{Email: "liam.johnson+seed@example.com", FirstName: "Liam", LastName: "Johnson", Password: "seed-password", Role: types.UserRoleUser},
	{Email: "mia.davis+seed@example.com", FirstName: "Mia", LastName: "Davis", Password: "seed-password", Role: types.UserRoleUser},
}

// SeedUsers creates the demo accounts that do not exist yet, keyed by
// email. Existing accounts are left alone so reseeding never clobbers a
// changed password.
func SeedUsers(ctx context.Context, repo *store.UserRepository) error {
	seeded := 0
	for _, su := range seedUsers {
		_, err := repo.UserByEmail(ctx, su.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrUserNotFound) {
			return fmt.Errorf("failed to fetch seed user %s: %w", su.Email, err)
		}

		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", su.Email, err)
		}

		newUser := &types.User{
			FirstName:      su.FirstName,
			LastName:       su.LastName,
			Email:          su.Email,
			HashedPassword: hash,
			Role:           su.Role,
		}

		if err := repo.Create(ctx, newUser); err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", su.Email, err)
		}
		seeded++
	}

	fmt.Printf("Users seeded: %d created\n", seeded)
	return nil
}
