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

const businessTableName = "paczusie.business_profiles"

var businessColumns = utils.StructTagValues(types.BusinessProfile{})

type BusinessRepository struct {
	pool *pgxpool.Pool
}

func NewBusinessRepository(pool *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{pool: pool}
}

func (r *BusinessRepository) Business(ctx context.Context, businessID string) (*types.BusinessProfile, error) {
	query, args, err := psql().
		Select(businessColumns...).
		From(businessTableName).
		Where(sq.Eq{"id": businessID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate business query: %w", err)
	}

	var business types.BusinessProfile
	err = pgxscan.Get(ctx, r.pool, &business, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to fetch business: %w", err)
	}

	return &business, nil
}

func (r *BusinessRepository) Businesses(ctx context.Context) ([]*types.BusinessProfile, error) {
	query, args, err := psql().
		Select(businessColumns...).
		From(businessTableName).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate businesses query: %w", err)
	}

	var businesses []*types.BusinessProfile
	err = pgxscan.Select(ctx, r.pool, &businesses, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch businesses: %w", err)
	}

	return businesses, nil
}

func (r *BusinessRepository) BusinessesByUser(ctx context.Context, userID string) ([]*types.BusinessProfile, error) {
	query, args, err := psql().
		Select(businessColumns...).
		From(businessTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate businesses-by-user query: %w", err)
	}

	var businesses []*types.BusinessProfile
	err = pgxscan.Select(ctx, r.pool, &businesses, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch businesses by user: %w", err)
	}

	return businesses, nil
}

func (r *BusinessRepository) Create(ctx context.Context, business *types.BusinessProfile) error {
	business.ID = utils.NanoID()
	business.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(businessTableName).
		SetMap(utils.StructToMap(business)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create business query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

func (r *BusinessRepository) Update(ctx context.Context, businessID string, upd types.UpdateBusinessProfile) error {
	fields := utils.SparseStructToMap(upd)
	if len(fields) == 0 {
		return nil
	}

	query, args, err := psql().
		Update(businessTableName).
		SetMap(fields).
		Where(sq.Eq{"id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update business query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	return nil
}
