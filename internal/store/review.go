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

const reviewTableName = "paczusie.reviews"

var reviewColumns = utils.StructTagValues(types.Review{})

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Review(ctx context.Context, reviewID string) (*types.Review, error) {
	query, args, err := psql().
		Select(reviewColumns...).
		From(reviewTableName).
		Where(sq.Eq{"id": reviewID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate review query: %w", err)
	}

	var review types.Review
	err = pgxscan.Get(ctx, r.pool, &review, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}

	return &review, nil
}

func (r *ReviewRepository) Reviews(ctx context.Context) ([]*types.Review, error) {
	query, args, err := psql().
		Select(reviewColumns...).
		From(reviewTableName).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reviews query: %w", err)
	}

	var reviews []*types.Review
	err = pgxscan.Select(ctx, r.pool, &reviews, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) ReviewsByAd(ctx context.Context, adID string) ([]*types.Review, error) {
	query, args, err := psql().
		Select(reviewColumns...).
		From(reviewTableName).
		Where(sq.Eq{"ad_id": adID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reviews-by-ad query: %w", err)
	}

	var reviews []*types.Review
	err = pgxscan.Select(ctx, r.pool, &reviews, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews by ad: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *types.Review) error {
	review.ID = utils.NanoID()
	review.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(reviewTableName).
		SetMap(utils.StructToMap(review)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert review query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, reviewID string, upd types.UpdateReview) error {
	fields := utils.SparseStructToMap(upd)
	if len(fields) == 0 {
		return nil
	}

	query, args, err := psql().
		Update(reviewTableName).
		SetMap(fields).
		Where(sq.Eq{"id": reviewID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update review query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to update review")
}

func (r *ReviewRepository) Delete(ctx context.Context, reviewID string) error {
	query, args, err := psql().
		Delete(reviewTableName).
		Where(sq.Eq{"id": reviewID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete review query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrReviewNotFound
	}

	return nil
}
