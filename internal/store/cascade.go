package store

import (
	"context"
	"errors"
	"fmt"

	"paczusie/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CascadeEngine removes a parent row together with every row that
// references it, bottom-up (ad_categories -> reviews -> ads ->
// business_profiles -> users), inside a single transaction per deletion
// call. The schema declares no cascades, so this is the only place the
// ordering lives.
type CascadeEngine struct {
	pool *pgxpool.Pool
}

func NewCascadeEngine(pool *pgxpool.Pool) *CascadeEngine {
	return &CascadeEngine{pool: pool}
}

// DeleteUser removes the user and, transitively, every business profile
// the user owns, every ad under those profiles, and the ads' category
// links and reviews. Returns ErrUserNotFound without touching anything
// if the user does not exist.
func (e *CascadeEngine) DeleteUser(ctx context.Context, userID string) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	exists, err := rowExists(ctx, tx, userTableName, sq.Eq{"id": userID})
	if err != nil {
		return err
	}
	if !exists {
		return types.ErrUserNotFound
	}

	businessIDs, err := selectIDs(ctx, tx, businessTableName, sq.Eq{"user_id": userID})
	if err != nil {
		return err
	}

	for _, businessID := range businessIDs {
		if err := deleteAdsOfBusiness(ctx, tx, businessID); err != nil {
			return err
		}
		if err := deleteRows(ctx, tx, businessTableName, sq.Eq{"id": businessID}); err != nil {
			return err
		}
	}

	if err := deleteRows(ctx, tx, userTableName, sq.Eq{"id": userID}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user cascade: %w", err)
	}

	return nil
}

// DeleteBusiness removes the profile, its ads, and the ads' category
// links and reviews.
func (e *CascadeEngine) DeleteBusiness(ctx context.Context, businessID string) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	exists, err := rowExists(ctx, tx, businessTableName, sq.Eq{"id": businessID})
	if err != nil {
		return err
	}
	if !exists {
		return types.ErrBusinessNotFound
	}

	if err := deleteAdsOfBusiness(ctx, tx, businessID); err != nil {
		return err
	}

	if err := deleteRows(ctx, tx, businessTableName, sq.Eq{"id": businessID}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit business cascade: %w", err)
	}

	return nil
}

// DeleteAd removes exactly the ad's own category links and reviews, then
// the ad row. Sibling ads are untouched.
func (e *CascadeEngine) DeleteAd(ctx context.Context, adID string) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	exists, err := rowExists(ctx, tx, adTableName, sq.Eq{"id": adID})
	if err != nil {
		return err
	}
	if !exists {
		return types.ErrAdNotFound
	}

	if err := deleteAdRows(ctx, tx, adID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ad cascade: %w", err)
	}

	return nil
}

func deleteAdsOfBusiness(ctx context.Context, q Querier, businessID string) error {
	adIDs, err := selectIDs(ctx, q, adTableName, sq.Eq{"business_id": businessID})
	if err != nil {
		return err
	}

	for _, adID := range adIDs {
		if err := deleteAdRows(ctx, q, adID); err != nil {
			return err
		}
	}

	return nil
}

// deleteAdRows is the leaf of every cascade: links first, then reviews,
// then the ad row itself.
func deleteAdRows(ctx context.Context, q Querier, adID string) error {
	if err := deleteRows(ctx, q, adCategoryTableName, sq.Eq{"ad_id": adID}); err != nil {
		return err
	}
	if err := deleteRows(ctx, q, reviewTableName, sq.Eq{"ad_id": adID}); err != nil {
		return err
	}
	return deleteRows(ctx, q, adTableName, sq.Eq{"id": adID})
}

func rowExists(ctx context.Context, q Querier, table string, pred sq.Eq) (bool, error) {
	query, args, err := psql().
		Select("1").
		From(table).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate exists query for %s: %w", table, err)
	}

	var one int
	err = q.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existence in %s: %w", table, err)
	}

	return true, nil
}

func selectIDs(ctx context.Context, q Querier, table string, pred sq.Eq) ([]string, error) {
	query, args, err := psql().
		Select("id").
		From(table).
		Where(pred).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id query for %s: %w", table, err)
	}

	var ids []string
	err = pgxscan.Select(ctx, q, &ids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ids from %s: %w", table, err)
	}

	return ids, nil
}

func deleteRows(ctx context.Context, q Querier, table string, pred sq.Eq) error {
	query, args, err := psql().
		Delete(table).
		Where(pred).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete query for %s: %w", table, err)
	}

	_, err = q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	return nil
}
