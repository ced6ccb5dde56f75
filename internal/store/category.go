package store

import (
	"context"
	"fmt"
	"time"

	"paczusie/internal/utils"
	"paczusie/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryTableName = "paczusie.categories"

var categoryColumns = utils.StructTagValues(types.Category{})

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Category(ctx context.Context, categoryID string) (*types.Category, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		Where(sq.Eq{"id": categoryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category query: %w", err)
	}

	var category types.Category
	err = pgxscan.Get(ctx, r.pool, &category, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) Categories(ctx context.Context) ([]*types.Category, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate categories query: %w", err)
	}

	var categories []*types.Category
	err = pgxscan.Select(ctx, r.pool, &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *types.Category) error {
	category.ID = utils.NanoID()
	category.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(categoryTableName).
		SetMap(utils.StructToMap(category)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert category query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, categoryID string, upd types.UpdateCategory) error {
	fields := utils.SparseStructToMap(upd)
	if len(fields) == 0 {
		return nil
	}

	query, args, err := psql().
		Update(categoryTableName).
		SetMap(fields).
		Where(sq.Eq{"id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update category query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to update category")
}

// Delete removes the category row only. Ad_category rows referencing the
// category are left behind; the cascade policy deliberately does not
// cover category deletion.
func (r *CategoryRepository) Delete(ctx context.Context, categoryID string) error {
	query, args, err := psql().
		Delete(categoryTableName).
		Where(sq.Eq{"id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete category query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCategoryNotFound
	}

	return nil
}
