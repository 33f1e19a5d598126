package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pedrohqb/ecommerce-backend/internal/adapters/transport/http/dto"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/code"
	"github.com/pedrohqb/ecommerce-backend/internal/app/auth/token"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/repo"
	"github.com/pedrohqb/ecommerce-backend/internal/notify"
)

// CodeTTL is the validity window of a verification code.
const CodeTTL = 600 * time.Second

type Service interface {
	Register(ctx context.Context, d dto.RegisterDTO) (int64, error)
	Login(ctx context.Context, d dto.LoginDTO) (model.Session, error)
	RequestCode(ctx context.Context, d dto.RequestCodeDTO) error
	ConfirmCode(ctx context.Context, d dto.ConfirmCodeDTO) error
}

func New(
	ur repo.UserRepo,
	cr repo.CodeRepo,
	ti token.Issuer,
	gen code.Generator,
	n notify.Notifier,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, codeRepo: cr, tokens: ti, codes: gen, notifier: n, v: v,
	}
}
