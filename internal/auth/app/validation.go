package app

import (
	"fmt"
	"strings"

	"noteful/internal/auth/domain/entities"
	"noteful/internal/auth/domain/services"
	"noteful/internal/errs"
)

// Сообщения ошибок регистрации.
const (
	MsgMissingField     = "Missing field"
	MsgIncorrectType    = "Incorrect field type: expected string"
	MsgUntrimmed        = "Cannot start or end with whitespace"
	MsgUsernameTaken    = "Username already taken"
	msgTooShortTemplate = "Must be at least %d characters long"
	msgTooLongTemplate  = "Must be at most %d characters long"
)

const (
	fieldUsername     = "username"
	fieldPassword     = "password"
	fieldFullname     = "fullname"
	minUsernameLength = 1
)

type sizeLimit struct {
	field string
	min   int
	max   int
}

var (
	requiredFields = []string{fieldUsername, fieldPassword}
	stringFields   = []string{fieldUsername, fieldPassword, fieldFullname}
	trimmedFields  = []string{fieldUsername, fieldPassword}
	sizedFields    = []sizeLimit{
		{field: fieldUsername, min: minUsernameLength},
		{field: fieldPassword, min: services.MinPasswordLength, max: services.MaxPasswordLength},
	}
)

// ValidateRegistration проверяет JSON-тело регистрации и возвращает первую ошибку
// в порядке: отсутствие поля, тип, пробелы по краям, длина.
// Длина измеряется в байтах, верхняя граница пароля совпадает с пределом bcrypt.
func ValidateRegistration(fields map[string]any) (*entities.Registration, error) {
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, errs.Unprocessable(name, MsgMissingField)
		}
	}

	values := make(map[string]string, len(stringFields))
	for _, name := range stringFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		value, isString := raw.(string)
		if !isString {
			return nil, errs.Unprocessable(name, MsgIncorrectType)
		}
		values[name] = value
	}

	for _, name := range trimmedFields {
		if strings.TrimSpace(values[name]) != values[name] {
			return nil, errs.Unprocessable(name, MsgUntrimmed)
		}
	}

	for _, limit := range sizedFields {
		if len(values[limit.field]) < limit.min {
			return nil, errs.Unprocessable(limit.field, fmt.Sprintf(msgTooShortTemplate, limit.min))
		}
	}
	for _, limit := range sizedFields {
		if limit.max > 0 && len(values[limit.field]) > limit.max {
			return nil, errs.Unprocessable(limit.field, fmt.Sprintf(msgTooLongTemplate, limit.max))
		}
	}

	return &entities.Registration{
		Username: values[fieldUsername],
		Password: values[fieldPassword],
		Fullname: strings.TrimSpace(values[fieldFullname]),
	}, nil
}
