package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nlebedev/discotek/internal/apperrors"
	"github.com/nlebedev/discotek/internal/models"
)

const (
	defaultSigningMethod   = "HS256"
	defaultAccessTokenTTL  = 24 * time.Hour
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
}

type RefreshTokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"uid"`
}

// Token manager config with sensible defaults
type Config struct {
	// Secrets to sign access and refresh tokens
	// Required to be set and to be different
	AccessSecret  string
	RefreshSecret string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set then default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set then default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenManager mints and verifies signed access and refresh tokens.
// It holds no state besides the signing config: persistence of the
// refresh token on the user record is the caller's responsibility.
type TokenManager struct {
	accessKey  string
	refreshKey string

	alg jwt.SigningMethod

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh secrets must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	return &TokenManager{
		accessKey:  cfg.AccessSecret,
		refreshKey: cfg.RefreshSecret,
		alg:        jwt.GetSigningMethod(cfg.Alg),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// Mint an access and refresh token pair for the user
// Tokens are signed with distinct secrets so one can't stand in for the other
func (m *TokenManager) IssuePair(user models.User) (models.TokenPair, error) {
	var pair models.TokenPair
	now := time.Now().Truncate(time.Second)
	accessExpiresAt := now.Add(m.accessTTL)
	refreshExpiresAt := now.Add(m.refreshTTL)

	accessToken := jwt.NewWithClaims(
		m.alg,
		AccessTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(accessExpiresAt),
			},
			UserID: user.ID,
			Email:  user.Email,
		},
	)
	access, err := accessToken.SignedString([]byte(m.accessKey))
	if err != nil {
		return pair, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	refreshToken := jwt.NewWithClaims(
		m.alg,
		RefreshTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(refreshExpiresAt),
			},
			UserID: user.ID,
		},
	)
	refresh, err := refreshToken.SignedString([]byte(m.refreshKey))
	if err != nil {
		return pair, fmt.Errorf("error while signing refresh token. Err: %w", err)
	}

	return models.TokenPair{
		Access:  models.IssuedToken{Value: access, ExpiresAt: accessExpiresAt},
		Refresh: models.IssuedToken{Value: refresh, ExpiresAt: refreshExpiresAt},
	}, nil
}

// Mint a fresh access token only, leaving the refresh token untouched
func (m *TokenManager) IssueAccess(user models.User) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(m.accessTTL)

	token := jwt.NewWithClaims(
		m.alg,
		AccessTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserID: user.ID,
			Email:  user.Email,
		},
	)
	access, err := token.SignedString([]byte(m.accessKey))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return models.IssuedToken{Value: access, ExpiresAt: expiresAt}, nil
}

// Parse and validate access token: signature, expiry and signing method
// Malformed, tampered and expired tokens all fail the same way
func (m *TokenManager) ParseAccess(access string) (AccessTokenClaims, error) {
	claims := AccessTokenClaims{}

	_, err := jwt.ParseWithClaims(
		access,
		&claims,
		func(t *jwt.Token) (any, error) { return []byte(m.accessKey), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)
	if err != nil {
		return AccessTokenClaims{}, fmt.Errorf("%w: %w", apperrors.ErrAccessTokenInvalid, err)
	}

	return claims, nil
}

// Parse and validate refresh token with the refresh secret
func (m *TokenManager) ParseRefresh(refresh string) (RefreshTokenClaims, error) {
	claims := RefreshTokenClaims{}

	_, err := jwt.ParseWithClaims(
		refresh,
		&claims,
		func(t *jwt.Token) (any, error) { return []byte(m.refreshKey), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)
	if err != nil {
		return RefreshTokenClaims{}, fmt.Errorf("%w: %w", apperrors.ErrRefreshTokenInvalid, err)
	}

	return claims, nil
}
