package handler

import "github.com/menumesa/pos-system/internal/core/domain"

type registerRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=100,password"`
	Name           string `json:"name" validate:"required,min=2,max=50"`
	RestaurantName string `json:"restaurantName"`
	Phone          string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	User   *domain.User `json:"user"`
	Tokens tokenPair    `json:"tokens"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}
