package dto

import "github.com/pedrohqb/ecommerce-backend/internal/domain/model"

type RegisterDTO struct {
	Username        string `json:"username"         validate:"required,min=3,max=30"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"required"`
	Password        string `json:"password"         validate:"required,strongpwd"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RequestCodeDTO struct {
	Email   string                    `json:"email"   validate:"required,email"`
	Purpose model.VerificationPurpose `json:"purpose" validate:"required,oneof=senha email"`
}

type ConfirmCodeDTO struct {
	Email    string                    `json:"email"     validate:"required,email"`
	Purpose  model.VerificationPurpose `json:"purpose"   validate:"required,oneof=senha email"`
	Code     string                    `json:"code"      validate:"required"`
	NewValue string                    `json:"new_value" validate:"required"`
}

type UpdateNameDTO struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
}

type UpdatePasswordDTO struct {
	Password        string `json:"password"         validate:"required,strongpwd"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type EmailChangeRequestDTO struct {
	NewEmail string `json:"new_email" validate:"required,email"`
}

type EmailChangeConfirmDTO struct {
	NewEmail string `json:"new_email" validate:"required,email"`
	Code     string `json:"code"      validate:"required"`
}

type AddressDTO struct {
	Street     string `json:"street"     validate:"required"`
	Number     string `json:"number"     validate:"required"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"       validate:"required"`
	State      string `json:"state"      validate:"required"`
	ZipCode    string `json:"zip_code"   validate:"required"`
}
