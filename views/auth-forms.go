package views

import (
	"context"
	"strings"

	"github.com/ruth8415/TeamTasks/models"
	"github.com/ruth8415/TeamTasks/services"
)

const minPasswordLength = 6

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	var v validator
	v.required("email", f.Email)
	v.email("email", strings.TrimSpace(f.Email))
	v.required("password", f.Password)
	v.minLength("password", f.Password, minPasswordLength)
	return v.err()
}

func (f LoginForm) Submit(ctx context.Context, auth *services.AuthService) (*models.User, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return auth.Login(ctx, models.LoginRequest{Email: strings.TrimSpace(f.Email), Password: f.Password})
}

type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

func (f RegisterForm) Validate() error {
	var v validator
	v.required("name", f.Name)
	v.minLength("name", strings.TrimSpace(f.Name), 2)
	v.required("email", f.Email)
	v.email("email", strings.TrimSpace(f.Email))
	v.required("password", f.Password)
	v.minLength("password", f.Password, minPasswordLength)
	return v.err()
}

func (f RegisterForm) Submit(ctx context.Context, auth *services.AuthService) (*models.User, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return auth.Register(ctx, models.RegisterRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	})
}
