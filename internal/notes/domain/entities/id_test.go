package entities_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"noteful/internal/notes/domain/entities"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"каноническая запись", "7b0f6c9e-9d53-4c6f-8b8e-0c1d2e3f4a5b", "7b0f6c9e-9d53-4c6f-8b8e-0c1d2e3f4a5b", true},
		{"верхний регистр", "7B0F6C9E-9D53-4C6F-8B8E-0C1D2E3F4A5B", "7b0f6c9e-9d53-4c6f-8b8e-0c1d2e3f4a5b", true},
		{"пустая строка", "", "", false},
		{"object id", "5b1f4f2e8d9a3c0012345678", "", false},
		{"мусор", "not-an-id", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := entities.CanonicalID(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalIDProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var raw [16]byte
		copy(raw[:], rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "bytes"))
		id := uuid.UUID(raw).String()

		got, ok := entities.CanonicalID(strings.ToUpper(id))
		if !ok || got != id {
			t.Fatalf("CanonicalID(%q) = %q, %v; want %q", strings.ToUpper(id), got, ok, id)
		}
	})
}
