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

const adTableName = "paczusie.ads"

var (
	adColumns          = utils.StructTagValues(types.Ad{})
	adColumnsQualified = utils.PrefixSliceOfStrings("a", adColumns)
)

type AdRepository struct {
	pool *pgxpool.Pool
}

func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

func (r *AdRepository) Ad(ctx context.Context, adID string) (*types.Ad, error) {
	query, args, err := psql().
		Select(adColumns...).
		From(adTableName).
		Where(sq.Eq{"id": adID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ad query: %w", err)
	}

	var ad types.Ad
	err = pgxscan.Get(ctx, r.pool, &ad, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to fetch ad: %w", err)
	}

	return &ad, nil
}

// Ads lists ads with the optional search and category filters applied
// with AND semantics. Search is a case-insensitive substring match
// against title or description; the category filter joins ad_categories
// and keeps ads with at least one matching link.
func (r *AdRepository) Ads(ctx context.Context, filter types.AdFilter) ([]*types.Ad, error) {
	builder := psql().
		Select(adColumnsQualified...).
		From(adTableName + " a").
		OrderBy("a.created_at DESC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"a.title": pattern},
			sq.ILike{"a.description": pattern},
		})
	}

	if filter.CategoryID != "" {
		builder = builder.
			Join("paczusie.ad_categories ac ON ac.ad_id = a.id").
			Where(sq.Eq{"ac.category_id": filter.CategoryID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ads query: %w", err)
	}

	var ads []*types.Ad
	err = pgxscan.Select(ctx, r.pool, &ads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ads: %w", err)
	}

	return ads, nil
}

func (r *AdRepository) AdsByBusiness(ctx context.Context, businessID string) ([]*types.Ad, error) {
	query, args, err := psql().
		Select(adColumns...).
		From(adTableName).
		Where(sq.Eq{"business_id": businessID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ads-by-business query: %w", err)
	}

	var ads []*types.Ad
	err = pgxscan.Select(ctx, r.pool, &ads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ads by business: %w", err)
	}

	return ads, nil
}

// AdsByUser unions the ads across every business profile the user owns.
// An ad belongs to exactly one business, so no deduplication is needed.
func (r *AdRepository) AdsByUser(ctx context.Context, userID string) ([]*types.Ad, error) {
	query, args, err := psql().
		Select(adColumns...).
		From(adTableName).
		Where(sq.Expr("business_id IN (SELECT id FROM "+businessTableName+" WHERE user_id = ?)", userID)).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ads-by-user query: %w", err)
	}

	var ads []*types.Ad
	err = pgxscan.Select(ctx, r.pool, &ads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ads by user: %w", err)
	}

	return ads, nil
}

func (r *AdRepository) AdsByStatus(ctx context.Context, approved bool) ([]*types.Ad, error) {
	query, args, err := psql().
		Select(adColumns...).
		From(adTableName).
		Where(sq.Eq{"status": approved}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ads-by-status query: %w", err)
	}

	var ads []*types.Ad
	err = pgxscan.Select(ctx, r.pool, &ads, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ads by status: %w", err)
	}

	return ads, nil
}

func (r *AdRepository) Create(ctx context.Context, ad *types.Ad) error {
	ad.ID = utils.NanoID()
	ad.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(adTableName).
		SetMap(utils.StructToMap(ad)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create ad query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create ad: %w", err)
	}

	return nil
}

func (r *AdRepository) Update(ctx context.Context, adID string, upd types.UpdateAd) error {
	fields := utils.SparseStructToMap(upd)
	if len(fields) == 0 {
		return nil
	}

	query, args, err := psql().
		Update(adTableName).
		SetMap(fields).
		Where(sq.Eq{"id": adID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update ad query for ad %s: %w", adID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to update ad")
}

// Approve flips a pending ad to approved. Approving an already approved
// ad is a no-op, so the transition is idempotent.
func (r *AdRepository) Approve(ctx context.Context, adID string) error {
	query, args, err := psql().
		Update(adTableName).
		Set("status", true).
		Where(sq.Eq{"id": adID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approve ad query for ad %s: %w", adID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to approve ad: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrAdNotFound
	}

	return nil
}
