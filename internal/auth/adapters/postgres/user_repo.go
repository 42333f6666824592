// Package postgres содержит хранилище пользователей на Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"noteful/internal/auth/domain/entities"
	"noteful/internal/auth/ports/repositories"
	"noteful/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которое можно подменить pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const (
	queryCreateUser = `
        INSERT INTO users (username, password_hash, fullname)
        VALUES ($1, $2, $3)
        RETURNING id, username, password_hash, fullname, created_at, updated_at
    `

	queryFindByUsername = `
        SELECT id, username, password_hash, fullname, created_at, updated_at
        FROM users
        WHERE username = $1
    `

	queryExistsByUsername = `
        SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)
    `
)

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет пользователя. Занятое имя возвращает entities.ErrUsernameDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	var created entities.User
	err := r.pool.QueryRow(ctx, queryCreateUser,
		user.Username,
		user.PasswordHash,
		user.Fullname,
	).Scan(
		&created.ID,
		&created.Username,
		&created.PasswordHash,
		&created.Fullname,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			log.Debug(ctx, "username already exists", zap.String("username", user.Username))
			return nil, fmt.Errorf("error creating user: %w", entities.ErrUsernameDuplicate)
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &created, nil
}

// FindByUsername находит пользователя по имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	var user entities.User
	err := r.pool.QueryRow(ctx, queryFindByUsername, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Fullname,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by username", zap.Error(err))
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}

	return &user, nil
}

// ExistsByUsername проверяет, занято ли имя.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, queryExistsByUsername, username).Scan(&exists); err != nil {
		logger.Log(ctx).Error(ctx, "error checking username", zap.String("method", "ExistsByUsername"), zap.Error(err))
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}
