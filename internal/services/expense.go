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
	"github.com/tinashem/dukabook/internal/repositories/expenses"
)

// ExpenseService manages expense records.
type ExpenseService interface {
	Create(ctx context.Context, e *models.Expense) error
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Expense, error)
	List(ctx context.Context, shopID string) ([]models.Expense, error)
}

type expenseService struct {
	db  *sql.DB
	now func() time.Time
}

func NewExpenseService(db *sql.DB) ExpenseService {
	return &expenseService{db: db, now: time.Now}
}

func (s *expenseService) Create(ctx context.Context, e *models.Expense) error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: expense amount must be positive", ErrValidation)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: expense category is required", ErrValidation)
	}

	now := s.now().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = now
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := expenses.NewSQLiteRepository(tx).Create(ctx, e); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}
		return enqueue(ctx, tx, models.TableExpenses, e.ID, models.ActionCreate, e, now)
	})
}

func (s *expenseService) Update(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		return fmt.Errorf("%w: expense id is required", ErrValidation)
	}

	e.UpdatedAt = s.now().UTC()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := expenses.NewSQLiteRepository(tx).Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		return enqueue(ctx, tx, models.TableExpenses, e.ID, models.ActionUpdate, e, e.UpdatedAt)
	})
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	now := s.now().UTC()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := expenses.NewSQLiteRepository(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("failed to load expense: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return enqueue(ctx, tx, models.TableExpenses, id, models.ActionDelete, nil, now)
	})
}

func (s *expenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	return expenses.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

func (s *expenseService) List(ctx context.Context, shopID string) ([]models.Expense, error) {
	return expenses.NewSQLiteRepository(s.db).List(ctx, shopID)
}
