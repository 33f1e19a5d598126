package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/dto"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/code"
	authsvc "github.com/pedrohqb/ecommerce-backend/internal/app/auth/service"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/repo"
	"github.com/pedrohqb/ecommerce-backend/internal/notify"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type userService struct {
	userRepo repo.UserRepo
	addrRepo repo.AddressRepo
	codeRepo repo.CodeRepo
	codes    code.Generator
	notifier notify.Notifier
	v        *validator.Validate
}

func (u *userService) GetByID(ctx context.Context, id int64) (model.Profile, error) {
	user, err := u.userRepo.GetUserByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return model.Profile{}, apperrors.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, apperrors.WrapInternal(err, "GetByID")
	}
	return user.Profile(), nil
}

func (u *userService) List(ctx context.Context) ([]model.Profile, error) {
	users, err := u.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "List")
	}
	profiles := make([]model.Profile, 0, len(users))
	for _, usr := range users {
		profiles = append(profiles, usr.Profile())
	}
	return profiles, nil
}

func (u *userService) UpdateName(ctx context.Context, userID int64, d dto.UpdateNameDTO) error {
	if err := u.v.Struct(d); err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}
	if err := u.userRepo.UpdateUsername(ctx, userID, d.Username); err != nil {
		if errors.Is(err, apperrors.ErrUpdateFailed) {
			return apperrors.ErrUpdateFailed
		}
		return apperrors.WrapInternal(err, "UpdateName")
	}
	return nil
}

func (u *userService) UpdatePassword(ctx context.Context, userID int64, d dto.UpdatePasswordDTO) error {
	if err := u.v.Struct(d); err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}
	if d.Password != d.PasswordConfirm {
		return apperrors.NewInvalidArgument("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcryptCost)
	if err != nil {
		return apperrors.WrapInternal(err, "UpdatePassword")
	}
	if err := u.userRepo.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, apperrors.ErrUpdateFailed) {
			return apperrors.ErrUpdateFailed
		}
		return apperrors.WrapInternal(err, "UpdatePassword")
	}
	return nil
}

func (u *userService) RequestEmailChange(ctx context.Context, userID int64, d dto.EmailChangeRequestDTO) error {
	if err := u.v.Struct(d); err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}

	// Advisory pre-check for a friendlier answer; the unique index still
	// decides at confirm time.
	_, err := u.userRepo.GetUserByEmail(ctx, d.NewEmail)
	if err == nil {
		return apperrors.ErrAlreadyExists
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.WrapInternal(err, "RequestEmailChange")
	}

	generated, err := u.codes.Generate()
	if err != nil {
		return apperrors.WrapInternal(err, "RequestEmailChange")
	}

	// Keyed per target address: requests for different candidates stay
	// independent.
	key := model.EmailChangeKey(userID, d.NewEmail)
	if err := u.codeRepo.Set(ctx, key, generated, authsvc.CodeTTL); err != nil {
		return apperrors.WrapInternal(err, "RequestEmailChange")
	}

	// The code goes to the candidate address: confirming proves control
	// of the inbox being claimed.
	if err := u.notifier.SendCode(ctx, d.NewEmail, generated); err != nil {
		return apperrors.WrapInternal(err, "RequestEmailChange")
	}

	return nil
}

func (u *userService) ConfirmEmailChange(ctx context.Context, userID int64, d dto.EmailChangeConfirmDTO) error {
	if err := u.v.Struct(d); err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}

	key := model.EmailChangeKey(userID, d.NewEmail)
	consumed, err := u.codeRepo.DeleteIfMatch(ctx, key, d.Code)
	if err != nil {
		return apperrors.WrapInternal(err, "ConfirmEmailChange")
	}
	if !consumed {
		return apperrors.ErrCodeInvalidOrExpired
	}

	if err := u.userRepo.UpdateEmail(ctx, userID, d.NewEmail); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return apperrors.ErrAlreadyExists
		}
		if errors.Is(err, apperrors.ErrUpdateFailed) {
			return apperrors.ErrUpdateFailed
		}
		return apperrors.WrapInternal(err, "ConfirmEmailChange")
	}

	return nil
}

func (u *userService) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	addrs, err := u.addrRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "ListAddresses")
	}
	return addrs, nil
}

func (u *userService) GetAddress(ctx context.Context, userID, addressID int64) (model.Address, error) {
	addr, err := u.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return model.Address{}, err
	}
	return addr, nil
}

func (u *userService) CreateAddress(ctx context.Context, userID int64, d dto.AddressDTO) (int64, error) {
	if err := u.v.Struct(d); err != nil {
		return 0, apperrors.NewInvalidArgument(err.Error())
	}

	id, err := u.addrRepo.Create(ctx, model.Address{
		UserID:     userID,
		Street:     d.Street,
		Number:     d.Number,
		Complement: d.Complement,
		District:   d.District,
		City:       d.City,
		State:      d.State,
		ZipCode:    d.ZipCode,
	})
	if err != nil {
		return 0, apperrors.WrapInternal(err, "CreateAddress")
	}
	return id, nil
}

func (u *userService) UpdateAddress(ctx context.Context, userID, addressID int64, d dto.AddressDTO) error {
	if err := u.v.Struct(d); err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}

	if _, err := u.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}

	err := u.addrRepo.Update(ctx, model.Address{
		ID:         addressID,
		UserID:     userID,
		Street:     d.Street,
		Number:     d.Number,
		Complement: d.Complement,
		District:   d.District,
		City:       d.City,
		State:      d.State,
		ZipCode:    d.ZipCode,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUpdateFailed) {
			return apperrors.ErrUpdateFailed
		}
		return apperrors.WrapInternal(err, "UpdateAddress")
	}
	return nil
}

func (u *userService) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	if _, err := u.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	if err := u.addrRepo.Delete(ctx, addressID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.WrapInternal(err, "DeleteAddress")
	}
	return nil
}

// ownedAddress loads an address and hides other users' rows behind the same
// not-found answer as a missing row.
func (u *userService) ownedAddress(ctx context.Context, userID, addressID int64) (model.Address, error) {
	addr, err := u.addrRepo.GetByID(ctx, addressID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return model.Address{}, apperrors.ErrNotFound
	}
	if err != nil {
		return model.Address{}, apperrors.WrapInternal(err, "GetAddress")
	}
	if addr.UserID != userID {
		return model.Address{}, apperrors.ErrNotFound
	}
	return addr, nil
}
