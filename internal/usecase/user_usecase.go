// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the sanitized user shape returned to clients.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthOutput returns the bearer token and user after registration or login.
type AuthOutput struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// NewUserView maps a user entity to its client-facing shape.
func NewUserView(user *entity.User) UserView {
	return UserView{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}

// UserUsecase defines the interface for identity operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
}
