package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinashem/dukabook/internal/dbx"
	"github.com/tinashem/dukabook/internal/models"
	"github.com/tinashem/dukabook/internal/repositories/products"
)

// ProductService manages inventory records.
type ProductService interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, shopID string) ([]models.Product, error)
}

type productService struct {
	db  *sql.DB
	now func() time.Time
}

func NewProductService(db *sql.DB) ProductService {
	return &productService{db: db, now: time.Now}
}

func (s *productService) Create(ctx context.Context, p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.SellingPrice < 0 || p.BuyingPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrValidation)
	}

	now := s.now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := products.NewSQLiteRepository(tx).Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return enqueue(ctx, tx, models.TableProducts, p.ID, models.ActionCreate, p, now)
	})
}

func (s *productService) Update(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: product id is required", ErrValidation)
	}

	p.UpdatedAt = s.now().UTC()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := products.NewSQLiteRepository(tx).Update(ctx, p); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return enqueue(ctx, tx, models.TableProducts, p.ID, models.ActionUpdate, p, p.UpdatedAt)
	})
}

func (s *productService) Delete(ctx context.Context, id string) error {
	now := s.now().UTC()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := products.NewSQLiteRepository(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return enqueue(ctx, tx, models.TableProducts, id, models.ActionDelete, nil, now)
	})
}

func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	return products.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, shopID string) ([]models.Product, error) {
	return products.NewSQLiteRepository(s.db).List(ctx, shopID)
}
