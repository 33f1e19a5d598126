package repo

import (
	"context"

	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
)

type AddressRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)

	// GetByID returns apperrors.ErrNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (model.Address, error)

	Create(ctx context.Context, a model.Address) (int64, error)

	Update(ctx context.Context, a model.Address) error

	Delete(ctx context.Context, id int64) error
}
