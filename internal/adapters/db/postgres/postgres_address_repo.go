package postgres

import (
	"context"
	"errors"

	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
	"gorm.io/gorm"
)

type PostgresAddressRepo struct {
	db *gorm.DB
}

func NewPostgresAddressRepo(db *gorm.DB) *PostgresAddressRepo {
	return &PostgresAddressRepo{db: db}
}

func (p *PostgresAddressRepo) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	var addrs []model.Address
	res := p.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&addrs)
	if err := res.Error; err != nil {
		return nil, apperrors.WrapInternal(err, "ListByUser")
	}
	return addrs, nil
}

func (p *PostgresAddressRepo) GetByID(ctx context.Context, id int64) (model.Address, error) {
	var a model.Address
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&a)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Address{}, apperrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Address{}, apperrors.WrapInternal(err, "GetByID")
	}

	return a, nil
}

func (p *PostgresAddressRepo) Create(ctx context.Context, a model.Address) (int64, error) {
	res := p.db.WithContext(ctx).Create(&a)
	if err := res.Error; err != nil {
		return 0, apperrors.WrapInternal(err, "Create")
	}
	return a.ID, nil
}

func (p *PostgresAddressRepo) Update(ctx context.Context, a model.Address) error {
	res := p.db.WithContext(ctx).Model(&model.Address{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"street":     a.Street,
		"number":     a.Number,
		"complement": a.Complement,
		"district":   a.District,
		"city":       a.City,
		"state":      a.State,
		"zip_code":   a.ZipCode,
	})
	if err := res.Error; err != nil {
		return apperrors.WrapInternal(err, "Update")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUpdateFailed
	}

	return nil
}

func (p *PostgresAddressRepo) Delete(ctx context.Context, id int64) error {
	res := p.db.WithContext(ctx).Delete(&model.Address{}, id)
	if err := res.Error; err != nil {
		return apperrors.WrapInternal(err, "Delete")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
