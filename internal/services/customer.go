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
	"github.com/tinashem/dukabook/internal/repositories/customers"
)

// CustomerService manages customer records.
type CustomerService interface {
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context, shopID string) ([]models.Customer, error)
}

type customerService struct {
	db  *sql.DB
	now func() time.Time
}

func NewCustomerService(db *sql.DB) CustomerService {
	return &customerService{db: db, now: time.Now}
}

func (s *customerService) Create(ctx context.Context, c *models.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	now := s.now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.IsActive = true
	c.CreatedAt = now
	c.UpdatedAt = now

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := customers.NewSQLiteRepository(tx).Create(ctx, c); err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		return enqueue(ctx, tx, models.TableCustomers, c.ID, models.ActionCreate, c, now)
	})
}

func (s *customerService) Update(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		return fmt.Errorf("%w: customer id is required", ErrValidation)
	}

	c.UpdatedAt = s.now().UTC()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := customers.NewSQLiteRepository(tx).Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		return enqueue(ctx, tx, models.TableCustomers, c.ID, models.ActionUpdate, c, c.UpdatedAt)
	})
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	now := s.now().UTC()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := customers.NewSQLiteRepository(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("failed to load customer: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		return enqueue(ctx, tx, models.TableCustomers, id, models.ActionDelete, nil, now)
	})
}

func (s *customerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	return customers.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, shopID string) ([]models.Customer, error) {
	return customers.NewSQLiteRepository(s.db).List(ctx, shopID)
}
