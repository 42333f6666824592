// Package dto содержит тела запросов и ответов HTTP API.
package dto

import (
	"noteful/internal/auth/domain/entities"
	"noteful/internal/auth/domain/services"
)

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse содержит выданный токен.
type TokenResponse struct {
	AuthToken string `json:"authToken"`
}

// UserResponse - публичное представление пользователя, без хеша пароля.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// NewUserResponse формирует ответ по пользователю.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
	}
}

// NewTokenResponse формирует ответ с токеном.
func NewTokenResponse(token *services.IssuedToken) TokenResponse {
	return TokenResponse{AuthToken: token.Token}
}
