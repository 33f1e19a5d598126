package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/dto"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/code"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/repo"
	"github.com/pedrohqb/ecommerce-backend/internal/notify"
)

type Service interface {
	GetByID(ctx context.Context, id int64) (model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	UpdateName(ctx context.Context, userID int64, d dto.UpdateNameDTO) error
	UpdatePassword(ctx context.Context, userID int64, d dto.UpdatePasswordDTO) error

	// Email change is a two-step flow: a code is mailed to the candidate
	// address and the switch happens only on a matching confirm.
	RequestEmailChange(ctx context.Context, userID int64, d dto.EmailChangeRequestDTO) error
	ConfirmEmailChange(ctx context.Context, userID int64, d dto.EmailChangeConfirmDTO) error

	ListAddresses(ctx context.Context, userID int64) ([]model.Address, error)
	GetAddress(ctx context.Context, userID, addressID int64) (model.Address, error)
	CreateAddress(ctx context.Context, userID int64, d dto.AddressDTO) (int64, error)
	UpdateAddress(ctx context.Context, userID, addressID int64, d dto.AddressDTO) error
	DeleteAddress(ctx context.Context, userID, addressID int64) error
}

func New(
	ur repo.UserRepo,
	ar repo.AddressRepo,
	cr repo.CodeRepo,
	gen code.Generator,
	n notify.Notifier,
	v *validator.Validate,
) Service {
	return &userService{
		userRepo: ur, addrRepo: ar, codeRepo: cr, codes: gen, notifier: n, v: v,
	}
}
