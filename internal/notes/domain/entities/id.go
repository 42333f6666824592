package entities

import "github.com/google/uuid"

// CanonicalID проверяет, что raw - UUID, и возвращает его каноническую запись.
func CanonicalID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
