package shops

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tinashem/dukabook/internal/common"
	"github.com/tinashem/dukabook/internal/dbx"
	"github.com/tinashem/dukabook/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const shopColumns = `id, user_id, name, currency, timezone, is_active, is_primary, created_at, updated_at`

func shopArgs(s *models.Shop) []any {
	return []any{
		s.ID, s.UserID, s.Name, s.Currency, s.Timezone,
		s.IsActive, s.IsPrimary, s.CreatedAt.UnixMilli(), s.UpdatedAt.UnixMilli(),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *models.Shop) error {
	query := `INSERT INTO shops (` + shopColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, shopArgs(s)...); err != nil {
		return fmt.Errorf("failed to insert shop: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.Shop) error {
	query := `INSERT INTO shops (` + shopColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			currency = excluded.currency,
			timezone = excluded.timezone,
			is_active = excluded.is_active,
			is_primary = excluded.is_primary,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, shopArgs(s)...); err != nil {
		return fmt.Errorf("failed to upsert shop: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = ?`
	s, err := scanShop(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("shop %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select shop: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) GetPrimary(ctx context.Context, userID string) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops
		WHERE user_id = ? AND is_primary = 1 AND is_active = 1 LIMIT 1`
	s, err := scanShop(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("primary shop for user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select primary shop: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("shop %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanShop(row *sql.Row) (*models.Shop, error) {
	s := &models.Shop{}
	var createdAt, updatedAt int64
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Currency, &s.Timezone,
		&s.IsActive, &s.IsPrimary, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = time.UnixMilli(createdAt).UTC()
	s.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return s, nil
}
