package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameDuplicate  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Username     string
	Fullname     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Registration содержит проверенные данные для создания пользователя.
type Registration struct {
	Username string
	Password string
	Fullname string
}
