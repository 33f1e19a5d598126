package repo

import (
	"context"
	"time"

	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
)

type UserRepo interface {
	// CreateUser inserts a user and returns the store-assigned id. A
	// duplicate email surfaces as apperrors.ErrAlreadyExists.
	CreateUser(ctx context.Context, u model.User) (int64, error)

	// GetUserByEmail returns apperrors.ErrNotFound when no row matches.
	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id int64) (model.User, error)

	ListUsers(ctx context.Context) ([]model.User, error)

	// The field updates return apperrors.ErrUpdateFailed when zero rows
	// were affected. UpdateEmail additionally surfaces
	// apperrors.ErrAlreadyExists on a unique violation.
	UpdateUsername(ctx context.Context, id int64, username string) error

	UpdateEmail(ctx context.Context, id int64, email string) error

	UpdatePasswordHash(ctx context.Context, id int64, hash string) error

	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}
