package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/dto"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/code"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/token"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/repo"
	"github.com/pedrohqb/ecommerce-backend/internal/notify"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type authService struct {
	userRepo repo.UserRepo
	codeRepo repo.CodeRepo
	tokens   token.Issuer
	codes    code.Generator
	notifier notify.Notifier
	v        *validator.Validate
}

func (a *authService) Register(ctx context.Context, d dto.RegisterDTO) (int64, error) {
	if err := a.v.Struct(d); err != nil {
		return 0, apperrors.NewInvalidArgument(err.Error())
	}
	if d.Password != d.PasswordConfirm {
		return 0, apperrors.NewInvalidArgument("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcryptCost)
	if err != nil {
		return 0, apperrors.WrapInternal(err, "Register")
	}

	// The unique index on email is the single authority on duplicates;
	// no read-before-write check.
	id, err := a.userRepo.CreateUser(ctx, model.User{
		Username:     d.Username,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return 0, apperrors.ErrAlreadyExists
		}
		return 0, apperrors.WrapInternal(err, "Register")
	}

	return id, nil
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO) (model.Session, error) {
	if err := a.v.Struct(d); err != nil {
		return model.Session{}, apperrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Indistinguishable from a wrong password.
		return model.Session{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, apperrors.WrapInternal(err, "Login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(d.Password)); err != nil {
		return model.Session{}, apperrors.ErrInvalidCredentials
	}

	if err := a.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return model.Session{}, apperrors.WrapInternal(err, "Login")
	}

	signed, exp, err := a.tokens.Generate(user.ID)
	if err != nil {
		return model.Session{}, apperrors.WrapInternal(err, "Login")
	}

	return model.Session{
		Token:     signed,
		UserID:    user.ID,
		ExpiresAt: exp,
	}, nil
}

func (a *authService) RequestCode(ctx context.Context, d dto.RequestCodeDTO) error {
	if err := a.v.Struct(d); err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.WrapInternal(err, "RequestCode")
	}

	generated, err := a.codes.Generate()
	if err != nil {
		return apperrors.WrapInternal(err, "RequestCode")
	}

	// Overwrites any earlier code for the same (user, purpose).
	key := model.CodeKey(user.ID, d.Purpose)
	if err := a.codeRepo.Set(ctx, key, generated, CodeTTL); err != nil {
		return apperrors.WrapInternal(err, "RequestCode")
	}

	if err := a.notifier.SendCode(ctx, user.Email, generated); err != nil {
		return apperrors.WrapInternal(err, "RequestCode")
	}

	return nil
}

func (a *authService) ConfirmCode(ctx context.Context, d dto.ConfirmCodeDTO) error {
	if err := a.v.Struct(d); err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.WrapInternal(err, "ConfirmCode")
	}

	// Consume before mutating: absent, mismatched, expired and already
	// used codes all answer the same way, and a racing confirm can win
	// at most once.
	key := model.CodeKey(user.ID, d.Purpose)
	consumed, err := a.codeRepo.DeleteIfMatch(ctx, key, d.Code)
	if err != nil {
		return apperrors.WrapInternal(err, "ConfirmCode")
	}
	if !consumed {
		return apperrors.ErrCodeInvalidOrExpired
	}

	switch d.Purpose {
	case model.PurposePassword:
		hash, err := bcrypt.GenerateFromPassword([]byte(d.NewValue), bcryptCost)
		if err != nil {
			return apperrors.WrapInternal(err, "ConfirmCode")
		}
		err = a.userRepo.UpdatePasswordHash(ctx, user.ID, string(hash))
		if err != nil {
			// One-shot policy: the code stays consumed.
			if errors.Is(err, apperrors.ErrUpdateFailed) {
				return apperrors.ErrUpdateFailed
			}
			return apperrors.WrapInternal(err, "ConfirmCode")
		}
	case model.PurposeEmail:
		err := a.userRepo.UpdateEmail(ctx, user.ID, d.NewValue)
		if err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				return apperrors.ErrAlreadyExists
			}
			if errors.Is(err, apperrors.ErrUpdateFailed) {
				return apperrors.ErrUpdateFailed
			}
			return apperrors.WrapInternal(err, "ConfirmCode")
		}
	default:
		return apperrors.NewInvalidArgument("unknown purpose")
	}

	return nil
}
