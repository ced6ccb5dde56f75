package seed

import (
	"context"
	"fmt"

	"paczusie/internal/store"
	"paczusie/pkg/types"
)

var seedCategoryNames = []string{
	"Food & Drink",
	"Home Services",
	"Beauty & Wellness",
	"Automotive",
	"Electronics",
	"Events",
	"Pets",
	"Education",
}

// SeedCategories inserts any category from the list above that does not
// exist yet. Matching is by name; existing categories are left alone.
func SeedCategories(ctx context.Context, repo *store.CategoryRepository) error {
	existing, err := repo.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch existing categories: %w", err)
	}

	existingNames := make(map[string]bool, len(existing))
	for _, category := range existing {
		existingNames[category.Name] = true
	}

	seeded := 0
	for _, name := range seedCategoryNames {
		if existingNames[name] {
			continue
		}

		if err := repo.Create(ctx, &types.Category{Name: name}); err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}
		seeded++
	}

	fmt.Printf("Categories seeded: %d created, %d already present\n", seeded, len(seedCategoryNames)-seeded)
	return nil
}
