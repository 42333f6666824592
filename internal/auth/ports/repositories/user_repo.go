package repositories

import (
	"context"
	"time"

	"noteful/internal/auth/domain/entities"
)

// UserRepository определяет операции хранения пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// LoginAttemptRepository считает неудачные попытки входа.
type LoginAttemptRepository interface {
	// Blocked сообщает, исчерпан ли лимит попыток, и когда он сбросится.
	Blocked(ctx context.Context, username string) (bool, time.Duration, error)

	RecordFailure(ctx context.Context, username string) error

	Reset(ctx context.Context, username string) error
}
