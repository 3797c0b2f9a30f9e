package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tinashem/dukabook/internal/dbx"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/repositories/products"
	"github.com/tinashem/dukabook/internal/repositories/sales"
)

// SaleService records sales. Recording a sale is the widest transaction in
// the app: the sale row, its line items, the stock decrement of every sold
// product and one sync-queue entry per touched record all commit together.
type SaleService interface {
	Record(ctx context.Context, sale *models.Sale) error
	Void(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Sale, error)
	List(ctx context.Context, shopID string) ([]models.Sale, error)
}

type saleService struct {
	db  *sql.DB
	now func() time.Time
}

func NewSaleService(db *sql.DB) SaleService {
	return &saleService{db: db, now: time.Now}
}

func (s *saleService) Record(ctx context.Context, sale *models.Sale) error {
	if len(sale.Items) == 0 {
		return fmt.Errorf("%w: a sale needs at least one item", ErrValidation)
	}
	for _, item := range sale.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = models.PaymentCash
	}

	now := s.now().UTC()
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = now
	}
	sale.CreatedAt = now
	sale.UpdatedAt = now

	sale.Subtotal = 0
	for i := range sale.Items {
		item := &sale.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.SaleID = sale.ID
		item.Total = item.Quantity * item.UnitPrice
		item.CreatedAt = now
		sale.Subtotal += item.Total
	}
	sale.Total = sale.Subtotal + sale.Tax - sale.Discount

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		productRepo := products.NewSQLiteRepository(tx)

		for _, item := range sale.Items {
			p, err := productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
			}
			if p.Stock < item.Quantity {
				return fmt.Errorf("%w: %s has %.2f left, sale needs %.2f",
					ErrInsufficientStock, p.Name, p.Stock, item.Quantity)
			}
			if err := productRepo.AddStock(ctx, p.ID, -item.Quantity, now.UnixMilli()); err != nil {
				return fmt.Errorf("failed to decrement stock for %s: %w", p.ID, err)
			}

			// re-read so the outbox snapshot carries the post-sale stock
			updated, err := productRepo.GetByID(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("failed to reload product %s: %w", p.ID, err)
			}
			if err := enqueue(ctx, tx, models.TableProducts, p.ID, models.ActionUpdate, updated, now); err != nil {
				return err
			}
		}

		if err := sales.NewSQLiteRepository(tx).Create(ctx, sale); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		return enqueue(ctx, tx, models.TableSales, sale.ID, models.ActionCreate, sale, now)
	})
}

// Void removes a sale and puts the sold quantities back in stock.
func (s *saleService) Void(ctx context.Context, id string) error {
	now := s.now().UTC()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		saleRepo := sales.NewSQLiteRepository(tx)
		productRepo := products.NewSQLiteRepository(tx)

		sale, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load sale: %w", err)
		}

		for _, item := range sale.Items {
			if err := productRepo.AddStock(ctx, item.ProductID, item.Quantity, now.UnixMilli()); err != nil {
				return fmt.Errorf("failed to restore stock for %s: %w", item.ProductID, err)
			}
			restored, err := productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to reload product %s: %w", item.ProductID, err)
			}
			if err := enqueue(ctx, tx, models.TableProducts, item.ProductID, models.ActionUpdate, restored, now); err != nil {
				return err
			}
		}

		if err := saleRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		return enqueue(ctx, tx, models.TableSales, id, models.ActionDelete, nil, now)
	})
}

func (s *saleService) Get(ctx context.Context, id string) (*models.Sale, error) {
	return sales.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

func (s *saleService) List(ctx context.Context, shopID string) ([]models.Sale, error) {
	return sales.NewSQLiteRepository(s.db).List(ctx, shopID)
}
