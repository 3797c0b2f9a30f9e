package outbox

import (
	"context"
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

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.OutboxEntry) error {
	query := `INSERT INTO sync_queue (table_name, record_id, action, payload, retry_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.TableName, e.RecordID, string(e.Action), []byte(e.Payload), e.RetryCount, e.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert outbox entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get outbox entry id: %w", err)
	}
	e.ID = id
	return nil
}

// Oldest orders by id, not created_at: ids are monotonic and unambiguous
// even when two entries share a timestamp.
func (r *SQLiteRepository) Oldest(ctx context.Context, limit int) ([]models.OutboxEntry, error) {
	query := `SELECT id, table_name, record_id, action, payload, retry_count, created_at
		FROM sync_queue ORDER BY id ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select outbox entries: %w", err)
	}
	defer rows.Close()

	var result []models.OutboxEntry
	for rows.Next() {
		var e models.OutboxEntry
		var action string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.TableName, &e.RecordID, &action, (*[]byte)(&e.Payload), &e.RetryCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox entry: %w", err)
		}
		e.Action = models.Action(action)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox entries: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete outbox entry: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("outbox entry %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) IncrementRetry(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sync_queue SET retry_count = retry_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment retry count: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("outbox entry %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) HasLaterDelete(ctx context.Context, tableName, recordID string, afterID int64) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM sync_queue WHERE table_name = ? AND record_id = ? AND action = ? AND id > ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, tableName, recordID, string(models.ActionDelete), afterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for superseding delete: %w", err)
	}
	return exists, nil
}

func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_queue`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count outbox entries: %w", err)
	}
	return n, nil
}
