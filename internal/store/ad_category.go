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

const adCategoryTableName = "paczusie.ad_categories"

var adCategoryColumns = utils.StructTagValues(types.AdCategory{})

type AdCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewAdCategoryRepository(pool *pgxpool.Pool) *AdCategoryRepository {
	return &AdCategoryRepository{pool: pool}
}

func (r *AdCategoryRepository) Links(ctx context.Context) ([]*types.AdCategory, error) {
	query, args, err := psql().
		Select(adCategoryColumns...).
		From(adCategoryTableName).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ad category links query: %w", err)
	}

	var links []*types.AdCategory
	err = pgxscan.Select(ctx, r.pool, &links, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ad category links: %w", err)
	}

	return links, nil
}

func (r *AdCategoryRepository) Link(ctx context.Context, adID, categoryID string) (*types.AdCategory, error) {
	query, args, err := psql().
		Select(adCategoryColumns...).
		From(adCategoryTableName).
		Where(sq.Eq{"ad_id": adID, "category_id": categoryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate link query: %w", err)
	}

	var link types.AdCategory
	err = pgxscan.Get(ctx, r.pool, &link, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAdCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch link: %w", err)
	}

	return &link, nil
}

// LinksByAd returns all category links for an ad.
func (r *AdCategoryRepository) LinksByAd(ctx context.Context, adID string) ([]*types.AdCategory, error) {
	query, args, err := psql().
		Select(adCategoryColumns...).
		From(adCategoryTableName).
		Where(sq.Eq{"ad_id": adID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate links-by-ad query: %w", err)
	}

	var links []*types.AdCategory
	err = pgxscan.Select(ctx, r.pool, &links, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch links by ad: %w", err)
	}

	return links, nil
}

// Create inserts a link. The (ad_id, category_id) pair is the primary
// key, so a duplicate link surfaces as ErrAdCategoryExists.
func (r *AdCategoryRepository) Create(ctx context.Context, link *types.AdCategory) error {
	link.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(adCategoryTableName).
		SetMap(utils.StructToMap(link)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert link query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return types.ErrAdCategoryExists
		}
		return fmt.Errorf("failed to insert link: %w", err)
	}

	return nil
}

// Update re-points a link row, keyed by the current pair. Moving a link
// onto a pair that already exists surfaces as ErrAdCategoryExists.
func (r *AdCategoryRepository) Update(ctx context.Context, adID, categoryID string, upd types.UpdateAdCategory) error {
	fields := utils.SparseStructToMap(upd)
	if len(fields) == 0 {
		return nil
	}

	query, args, err := psql().
		Update(adCategoryTableName).
		SetMap(fields).
		Where(sq.Eq{"ad_id": adID, "category_id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update link query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return types.ErrAdCategoryExists
		}
		return fmt.Errorf("failed to update link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrAdCategoryNotFound
	}

	return nil
}

func (r *AdCategoryRepository) Delete(ctx context.Context, adID, categoryID string) error {
	query, args, err := psql().
		Delete(adCategoryTableName).
		Where(sq.Eq{"ad_id": adID, "category_id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete link query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrAdCategoryNotFound
	}

	return nil
}
