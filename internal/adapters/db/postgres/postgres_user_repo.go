package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (int64, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyExists
		}
		return 0, apperrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, apperrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, apperrors.WrapInternal(err, "GetUserByEmail")
	}

	return u, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, apperrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, apperrors.WrapInternal(err, "GetUserByID")
	}

	return u, nil
}

func (p *PostgresUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := p.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperrors.WrapInternal(err, "ListUsers")
	}
	return users, nil
}

func (p *PostgresUserRepo) UpdateUsername(ctx context.Context, id int64, username string) error {
	return p.updateColumn(ctx, id, "username", username, "UpdateUsername")
}

func (p *PostgresUserRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	return p.updateColumn(ctx, id, "email", email, "UpdateEmail")
}

func (p *PostgresUserRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return p.updateColumn(ctx, id, "password_hash", hash, "UpdatePasswordHash")
}

func (p *PostgresUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return p.updateColumn(ctx, id, "logged_at", at, "UpdateLastLogin")
}

func (p *PostgresUserRepo) updateColumn(ctx context.Context, id int64, column string, value interface{}, op string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		return apperrors.WrapInternal(err, op)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUpdateFailed
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
