package handler

import "github.com/storefront/shop-api/internal/core/domain"

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"required"`
	Address  string `json:"address"  validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Answer      string `json:"answer"      validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type registerResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type profileResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	UpdatedUser *domain.User `json:"updatedUser"`
}

type usersResponse struct {
	Success bool           `json:"success"`
	Users   []*domain.User `json:"users"`
}

type okResponse struct {
	OK bool `json:"ok"`
}
