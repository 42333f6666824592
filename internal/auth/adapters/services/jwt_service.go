package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"noteful/internal/auth/domain/services"
	svc "noteful/internal/auth/ports/services"
	"noteful/pkg/logger"
)

// DefaultTokenTTL - время жизни токена по умолчанию.
const DefaultTokenTTL = 7 * 24 * time.Hour

const (
	methodIssue   = "Issue"
	methodVerify  = "Verify"
	methodRefresh = "Refresh"

	msgIssuingToken    = "issuing token"
	msgTokenIssued     = "token issued successfully"
	msgValidatingToken = "validating token"
	msgTokenValidated  = "token validated successfully"
	msgTokenExpired    = "token has expired"
	msgRefreshingToken = "refreshing token"
	msgEmptySecret     = "empty secret key provided"

	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken = "error parsing token"

	errCtxIssuingToken    = "issuing token"
	errCtxValidatingToken = "validating token"
	errCtxRefreshingToken = "refreshing token"
)

// ClaimsUser - данные пользователя в поле user токена.
type ClaimsUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// Claims связывает доменную модель с библиотекой JWT.
type Claims struct {
	User ClaimsUser `json:"user"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует TokenService с подписью HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает сервис JWT.
func NewJWT(secretKey string, ttl time.Duration) svc.TokenService {
	return NewJWTWithClock(secretKey, ttl, time.Now)
}

// NewJWTWithClock создает сервис JWT с заданным источником времени.
func NewJWTWithClock(secretKey string, ttl time.Duration, now func() time.Time) svc.TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ServiceJWT{
		config: services.JWTConfig{SecretKey: []byte(secretKey), TTL: ttl},
		now:    now,
	}
}

func domainToJWTClaims(payload services.TokenPayload, issuedAt, expiresAt time.Time) Claims {
	return Claims{
		User: ClaimsUser{
			ID:       payload.UserID,
			Username: payload.Username,
			Fullname: payload.Fullname,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}

func jwtToDomainClaims(claims *Claims) *services.JWTClaims {
	var issuedAt, expiresAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &services.JWTClaims{
		User: services.TokenPayload{
			UserID:   claims.User.ID,
			Username: claims.User.Username,
			Fullname: claims.User.Fullname,
		},
		Subject:   claims.Subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

// Issue подписывает токен для пользователя со сроком now + TTL.
func (s *ServiceJWT) Issue(ctx context.Context, payload services.TokenPayload) (*services.IssuedToken, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssue),
		zap.String("userID", payload.UserID),
	)
	log.Debug(ctx, msgIssuingToken)

	now := s.now()
	return s.sign(ctx, log, payload, now, now.Add(s.config.TTL))
}

func (s *ServiceJWT) sign(
	ctx context.Context,
	log *logger.Logger,
	payload services.TokenPayload,
	issuedAt, expiresAt time.Time,
) (*services.IssuedToken, error) {
	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return nil, fmt.Errorf("%s: %w: empty secret key", errCtxIssuingToken, services.ErrGeneratingJWTToken)
	}

	claims := domainToJWTClaims(payload, issuedAt, expiresAt)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrGeneratingJWTToken, err)
	}

	issued := &services.IssuedToken{Token: signed, ExpiresAt: claims.ExpiresAt.Time}
	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", issued.ExpiresAt))
	return issued, nil
}

// Verify проверяет подпись, алгоритм и срок действия токена.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgValidatingToken)

	if tokenString == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrMissingToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return s.config.SecretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrInvalidJWTToken, err)
	}

	if !token.Valid || claims.User.ID == "" {
		return nil, fmt.Errorf("%s: %w: empty user id", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.User.ID))
	return jwtToDomainClaims(claims), nil
}

// Refresh проверяет токен и выпускает новый с теми же данными пользователя.
// Срок действия нового токена всегда позже срока предъявленного.
func (s *ServiceJWT) Refresh(ctx context.Context, tokenString string) (*services.IssuedToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))
	log.Debug(ctx, msgRefreshingToken)

	claims, err := s.Verify(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRefreshingToken, err)
	}

	now := s.now()
	expiresAt := now.Add(s.config.TTL)
	// exp хранится с точностью до секунды.
	if !expiresAt.Truncate(time.Second).After(claims.ExpiresAt) {
		expiresAt = claims.ExpiresAt.Add(time.Second)
	}

	return s.sign(ctx, log, claims.User, now, expiresAt)
}
