package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nlebedev/discotek/internal/apperrors"
	"github.com/nlebedev/discotek/internal/models"
	"github.com/nlebedev/discotek/internal/repository"
	"github.com/nlebedev/discotek/internal/service/auth/tokenmanager"
)

// Name of the cookie that carries the refresh token
const RefreshCookieName = "refreshToken"

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to use during registration and login
	// Defaults to bcrypt if not set
	Hasher PasswordHasher

	// Mark the refresh cookie Secure (production only)
	SecureCookie bool
}

// AuthService orchestrates the credential store and the token manager.
//
// Session state lives entirely in the user record: a user has at most one
// valid refresh token at any time. A second login overwrites the stored
// token and silently invalidates the previous session. Concurrent logins
// are not serialized, the later write wins.
type AuthService struct {
	token        *tokenmanager.TokenManager
	hasher       PasswordHasher
	userRepo     repository.UserRepo
	secureCookie bool
}

func NewService(cfg Config, token *tokenmanager.TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	if token == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	return &AuthService{
		token:        token,
		hasher:       hasher,
		userRepo:     userRepo,
		secureCookie: cfg.SecureCookie,
	}, nil
}

// Register creates a user with a hashed password
// Does not log the user in: no tokens are issued
func (s *AuthService) Register(ctx context.Context, name string, email string, password string) (models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, repository.CreateUserParams{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies credentials and issues a token pair
// The refresh token is persisted on the user record before the pair is
// returned: if persisting fails the session is not established
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.TokenPair{}, apperrors.ErrInvalidCredentials
		}
		return models.TokenPair{}, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.token.IssuePair(user)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &pair.Refresh.Value); err != nil {
		return models.TokenPair{}, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token
// The refresh token itself is not rotated: the stored one stays valid
// until logout, natural expiry or the next login
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.IssuedToken, error) {
	claims, err := s.token.ParseRefresh(refresh)
	if err != nil {
		return models.IssuedToken{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.IssuedToken{}, apperrors.ErrRefreshTokenInvalid
		}
		return models.IssuedToken{}, err
	}

	// Signature validity alone is not enough: the presented token must
	// match the single stored one exactly, otherwise it was superseded
	// by a later login or revoked by logout
	if user.RefreshToken == nil || *user.RefreshToken != refresh {
		return models.IssuedToken{}, apperrors.ErrRefreshTokenInvalid
	}

	access, err := s.token.IssueAccess(user)
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return access, nil
}

// Logout revokes the session the refresh token belongs to
// A token that fails verification means there is no session to revoke,
// so it is not an error. Clearing an already empty slot is a no-op too
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	claims, err := s.token.ParseRefresh(refresh)
	if err != nil {
		return nil
	}

	err = s.userRepo.SetRefreshToken(ctx, claims.UserID, nil)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("error while revoking refresh token. Err: %w", err)
	}

	return nil
}

// UserFromRequest authenticates the request by its bearer access token
func (s *AuthService) UserFromRequest(ctx context.Context, r *http.Request) (models.User, error) {
	header := r.Header.Get("Authorization")
	access, found := strings.CutPrefix(header, "Bearer ")
	if !found || access == "" {
		return models.User{}, apperrors.ErrAccessTokenInvalid
	}

	claims, err := s.token.ParseAccess(access)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.User{}, apperrors.ErrAccessTokenInvalid
		}
		return models.User{}, err
	}

	return user, nil
}

// RefreshFromRequest reads the refresh token from the request cookie
func (s *AuthService) RefreshFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return "", apperrors.ErrRefreshTokenMissing
	}

	return cookie.Value, nil
}

// SetRefreshCookie sets the refresh token cookie on the response
func (s *AuthService) SetRefreshCookie(w http.ResponseWriter, refresh models.IssuedToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refresh.Value,
		Path:     "/",
		MaxAge:   int(s.token.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearRefreshCookie expires the refresh token cookie on the client
func (s *AuthService) ClearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

// Emails are unique case-insensitively: normalize on every path that
// stores or looks one up
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
