package services

import "errors"

// Ошибки паролей.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// Ограничения пароля в байтах. Верхняя граница совпадает с пределом bcrypt.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)
