package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tinashem/dukabook/internal/dbx"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/repositories/customers"
	"github.com/tinashem/dukabook/internal/repositories/expenses"
	"github.com/tinashem/dukabook/internal/repositories/products"
	"github.com/tinashem/dukabook/internal/repositories/sales"
	"github.com/tinashem/dukabook/internal/repositories/shops"
)

// RemoteApplier writes remote-winning record versions into the local store.
// It deliberately bypasses the sync queue: rows applied here came FROM the
// remote, so shadowing them would bounce the same change back and forth.
type RemoteApplier interface {
	// Upsert replaces the local record with the remote snapshot.
	Upsert(ctx context.Context, tableName string, payload json.RawMessage) error

	// Delete removes the local record. Missing rows are not an error; the
	// remote delete may race a local one.
	Delete(ctx context.Context, tableName, recordID string) error
}

type remoteApplier struct {
	db *sql.DB
}

func NewRemoteApplier(db *sql.DB) RemoteApplier {
	return &remoteApplier{db: db}
}

func (a *remoteApplier) Upsert(ctx context.Context, tableName string, payload json.RawMessage) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		switch tableName {
		case models.TableShops:
			var sh models.Shop
			if err := json.Unmarshal(payload, &sh); err != nil {
				return fmt.Errorf("failed to decode remote shop: %w", err)
			}
			return shops.NewSQLiteRepository(tx).Upsert(ctx, &sh)
		case models.TableProducts:
			var p models.Product
			if err := json.Unmarshal(payload, &p); err != nil {
				return fmt.Errorf("failed to decode remote product: %w", err)
			}
			return products.NewSQLiteRepository(tx).Upsert(ctx, &p)
		case models.TableCustomers:
			var c models.Customer
			if err := json.Unmarshal(payload, &c); err != nil {
				return fmt.Errorf("failed to decode remote customer: %w", err)
			}
			return customers.NewSQLiteRepository(tx).Upsert(ctx, &c)
		case models.TableSales:
			var sl models.Sale
			if err := json.Unmarshal(payload, &sl); err != nil {
				return fmt.Errorf("failed to decode remote sale: %w", err)
			}
			return sales.NewSQLiteRepository(tx).Upsert(ctx, &sl)
		case models.TableExpenses:
			var e models.Expense
			if err := json.Unmarshal(payload, &e); err != nil {
				return fmt.Errorf("failed to decode remote expense: %w", err)
			}
			return expenses.NewSQLiteRepository(tx).Upsert(ctx, &e)
		default:
			return fmt.Errorf("unknown table %q in remote payload", tableName)
		}
	})
}

func (a *remoteApplier) Delete(ctx context.Context, tableName, recordID string) error {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		switch tableName {
		case models.TableShops:
			return shops.NewSQLiteRepository(tx).Delete(ctx, recordID)
		case models.TableProducts:
			return products.NewSQLiteRepository(tx).Delete(ctx, recordID)
		case models.TableCustomers:
			return customers.NewSQLiteRepository(tx).Delete(ctx, recordID)
		case models.TableSales:
			return sales.NewSQLiteRepository(tx).Delete(ctx, recordID)
		case models.TableExpenses:
			return expenses.NewSQLiteRepository(tx).Delete(ctx, recordID)
		default:
			return fmt.Errorf("unknown table %q in remote delete", tableName)
		}
	})
	if isNotFound(err) {
		return nil
	}
	return err
}
