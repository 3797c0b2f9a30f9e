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
	"github.com/tinashem/dukabook/internal/repositories/shops"
)

// ShopService manages shop records. The first shop created for a user
// becomes the primary shop.
type ShopService interface {
	Create(ctx context.Context, sh *models.Shop) error
	Get(ctx context.Context, id string) (*models.Shop, error)
	GetPrimary(ctx context.Context, userID string) (*models.Shop, error)
}

type shopService struct {
	db  *sql.DB
	now func() time.Time
}

func NewShopService(db *sql.DB) ShopService {
	return &shopService{db: db, now: time.Now}
}

func (s *shopService) Create(ctx context.Context, sh *models.Shop) error {
	if strings.TrimSpace(sh.Name) == "" {
		return fmt.Errorf("%w: shop name is required", ErrValidation)
	}
	if sh.UserID == "" {
		return fmt.Errorf("%w: shop owner is required", ErrValidation)
	}

	now := s.now().UTC()
	if sh.ID == "" {
		sh.ID = uuid.NewString()
	}
	if sh.Currency == "" {
		sh.Currency = "KES"
	}
	sh.IsActive = true
	sh.CreatedAt = now
	sh.UpdatedAt = now

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := shops.NewSQLiteRepository(tx)
		if !sh.IsPrimary {
			_, err := repo.GetPrimary(ctx, sh.UserID)
			if isNotFound(err) {
				sh.IsPrimary = true
			} else if err != nil {
				return fmt.Errorf("failed to look up primary shop: %w", err)
			}
		}
		if err := repo.Create(ctx, sh); err != nil {
			return fmt.Errorf("failed to create shop: %w", err)
		}
		return enqueue(ctx, tx, models.TableShops, sh.ID, models.ActionCreate, sh, now)
	})
}

func (s *shopService) Get(ctx context.Context, id string) (*models.Shop, error) {
	return shops.NewSQLiteRepository(s.db).GetByID(ctx, id)
}

func (s *shopService) GetPrimary(ctx context.Context, userID string) (*models.Shop, error) {
	return shops.NewSQLiteRepository(s.db).GetPrimary(ctx, userID)
}
