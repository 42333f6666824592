// Package app содержит сценарии регистрации и аутентификации.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"noteful/internal/auth/domain/entities"
	"noteful/internal/auth/domain/services"
	"noteful/internal/auth/ports/api"
	"noteful/internal/auth/ports/repositories"
	svc "noteful/internal/auth/ports/services"
	"noteful/internal/errs"
	"noteful/pkg/logger"
)

const (
	methodRegister     = "Register"
	methodLogin        = "Login"
	methodRefresh      = "Refresh"
	methodAuthenticate = "Authenticate"

	msgStartRegistration = "starting user registration"
	msgRegistrationError = "registration rejected"
	msgUsernameTaken     = "username already taken"
	msgUserRegistered    = "user registered successfully"
	msgLoginAttempt      = "login attempt"
	msgMissingCreds      = "login without credentials"
	msgLoginBlocked      = "login blocked by attempt limit"
	msgLoginNonExistent  = "login attempt with non-existent username"
	msgInvalidPassword   = "invalid password provided"
	msgUserLoggedIn      = "user logged in successfully"
	msgTokenRefreshed    = "token refreshed successfully"
	msgTokenRejected     = "token rejected"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrIssueToken        = "failed to issue token"
	msgErrLoginGuard        = "login guard unavailable"

	errCtxCheckingUser      = "checking existing user"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxIssuingToken      = "issuing token"
	errCtxRefreshingToken   = "refreshing token"
	errCtxVerifyingToken    = "verifying token"
)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	attempts    repositories.LoginAttemptRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает сервис аутентификации. attempts может быть nil,
// тогда число неудачных входов не ограничивается.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	attempts repositories.LoginAttemptRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		attempts:    attempts,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register проверяет поля, хеширует пароль и сохраняет пользователя.
func (a *AuthUseCaseImpl) Register(ctx context.Context, fields map[string]any) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))
	log.Debug(ctx, msgStartRegistration)

	reg, err := ValidateRegistration(fields)
	if err != nil {
		log.Debug(ctx, msgRegistrationError, zap.Error(err))
		return nil, err
	}

	exists, err := a.userRepo.ExistsByUsername(ctx, reg.Username)
	if err != nil {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxCheckingUser, err))
	}
	if exists {
		log.Debug(ctx, msgUsernameTaken, zap.String("username", reg.Username))
		return nil, errs.Unprocessable(fieldUsername, MsgUsernameTaken)
	}

	hash, err := a.passwordSvc.Hash(ctx, reg.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxHashingPassword, err))
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		Username:     reg.Username,
		Fullname:     reg.Fullname,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, entities.ErrUsernameDuplicate) {
			log.Debug(ctx, msgUsernameTaken, zap.String("username", reg.Username))
			return nil, errs.Conflict("user", err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxCreatingUser, err))
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID))
	return created, nil
}

// Login проверяет имя и пароль и выпускает токен.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*services.IssuedToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	if username == "" || password == "" {
		log.Debug(ctx, msgMissingCreds)
		return nil, errs.Unauthenticated(errs.AuthMissing, nil)
	}

	if a.attempts != nil {
		blocked, retryAfter, err := a.attempts.Blocked(ctx, username)
		if err != nil {
			log.Warn(ctx, msgErrLoginGuard, zap.Error(err))
		}
		if blocked {
			log.Info(ctx, msgLoginBlocked, zap.Duration("retryAfter", retryAfter))
			return nil, &errs.TooManyRequestsError{RetryAfter: retryAfter}
		}
	}

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			a.recordFailure(ctx, log, username)
			return nil, errs.Unauthenticated(errs.AuthInvalid, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxFindingUser, err))
	}

	ok, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxVerifyingPassword, err))
	}
	if !ok {
		log.Debug(ctx, msgInvalidPassword)
		a.recordFailure(ctx, log, username)
		return nil, errs.Unauthenticated(errs.AuthInvalid, entities.ErrInvalidCredentials)
	}

	if a.attempts != nil {
		if err := a.attempts.Reset(ctx, username); err != nil {
			log.Warn(ctx, msgErrLoginGuard, zap.Error(err))
		}
	}

	token, err := a.tokenSvc.Issue(ctx, payloadFor(user))
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, errs.Internal(fmt.Errorf("%s: %w", errCtxIssuingToken, err))
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return token, nil
}

func (a *AuthUseCaseImpl) recordFailure(ctx context.Context, log *logger.Logger, username string) {
	if a.attempts == nil {
		return
	}
	if err := a.attempts.RecordFailure(ctx, username); err != nil {
		log.Warn(ctx, msgErrLoginGuard, zap.Error(err))
	}
}

// Refresh выпускает новый токен по действующему.
func (a *AuthUseCaseImpl) Refresh(ctx context.Context, token string) (*services.IssuedToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))

	issued, err := a.tokenSvc.Refresh(ctx, token)
	if err != nil {
		mapped := tokenError(err, errCtxRefreshingToken)
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, mapped
	}

	log.Debug(ctx, msgTokenRefreshed, zap.Time("expiresAt", issued.ExpiresAt))
	return issued, nil
}

// Authenticate проверяет токен и возвращает данные пользователя из него.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, token string) (*services.TokenPayload, error) {
	claims, err := a.tokenSvc.Verify(ctx, token)
	if err != nil {
		logger.Log(ctx).Debug(ctx, msgTokenRejected, zap.String("method", methodAuthenticate), zap.Error(err))
		return nil, tokenError(err, errCtxVerifyingToken)
	}

	payload := claims.User
	return &payload, nil
}

func tokenError(err error, errCtx string) error {
	switch {
	case errors.Is(err, services.ErrMissingToken):
		return errs.Unauthenticated(errs.AuthMissing, err)
	case errors.Is(err, services.ErrExpiredJWTToken):
		return errs.Unauthenticated(errs.AuthExpired, err)
	case errors.Is(err, services.ErrInvalidJWTToken):
		return errs.Unauthenticated(errs.AuthInvalid, err)
	default:
		return errs.Internal(fmt.Errorf("%s: %w", errCtx, err))
	}
}

func payloadFor(user *entities.User) services.TokenPayload {
	return services.TokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
	}
}
