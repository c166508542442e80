package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/nlebedev/discotek/internal/apperrors"
	"github.com/nlebedev/discotek/internal/handlers/render"
	"github.com/nlebedev/discotek/internal/models"
)

type authService interface {
	// Register user, has to return apperrors.ErrEmailTaken on duplicate email
	Register(ctx context.Context, name string, email string, password string) (models.User, error)

	// Login user, has to return apperrors.ErrInvalidCredentials if email or
	// password don't match
	Login(ctx context.Context, email string, password string) (models.TokenPair, error)

	// Exchange refresh token for a new access token
	// Has to return apperrors.ErrRefreshTokenInvalid on any token failure
	Refresh(ctx context.Context, refresh string) (models.IssuedToken, error)

	// Revoke the session, tolerant to unverifiable tokens
	Logout(ctx context.Context, refresh string) error

	// Refresh token cookie plumbing
	RefreshFromRequest(r *http.Request) (string, error)
	SetRefreshCookie(w http.ResponseWriter, refresh models.IssuedToken)
	ClearRefreshCookie(w http.ResponseWriter)
}

type AuthHandler struct {
	authService authService
}

func NewAuth(auth authService) *AuthHandler {
	return &AuthHandler{authService: auth}
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	type RegisterRequest struct {
		Name                 string `json:"name" validate:"required,min=2,max=50"`
		Email                string `json:"email" validate:"required,email"`
		Password             string `json:"password" validate:"required,min=8"`
		PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
	}
	type RegisterSuccessResponse struct {
		Message string `json:"message"`
	}

	data, err := render.BindAndValidate[RegisterRequest](w, r)
	if err != nil {
		return
	}

	_, err = h.authService.Register(r.Context(), data.Name, data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailTaken):
			render.Error(w, "Email is already registered", http.StatusBadRequest)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSONWithStatus(w, RegisterSuccessResponse{Message: "User registered successfully"}, http.StatusCreated)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type LoginSuccessResponse struct {
		Message     string `json:"message"`
		AccessToken string `json:"accessToken"`
	}

	data, err := render.BindAndValidate[LoginRequest](w, r)
	if err != nil {
		return
	}

	pair, err := h.authService.Login(r.Context(), data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			render.Error(w, "Invalid email or password", http.StatusBadRequest)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.authService.SetRefreshCookie(w, pair.Refresh)
	render.JSON(w, LoginSuccessResponse{
		Message:     "Login successful",
		AccessToken: pair.Access.Value,
	})
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	type RefreshSuccessResponse struct {
		Message     string `json:"message"`
		AccessToken string `json:"accessToken"`
	}

	refresh, err := h.authService.RefreshFromRequest(r)
	if err != nil {
		render.Error(w, "Refresh token is missing", http.StatusUnauthorized)
		return
	}

	access, err := h.authService.Refresh(r.Context(), refresh)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRefreshTokenInvalid):
			render.Error(w, "Invalid or expired refresh token", http.StatusForbidden)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, RefreshSuccessResponse{
		Message:     "Access token refreshed",
		AccessToken: access.Value,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	type LogoutSuccessResponse struct {
		Message string `json:"message"`
	}

	// No cookie means no session: nothing to clear
	refresh, err := h.authService.RefreshFromRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.authService.Logout(r.Context(), refresh); err != nil {
		render.Error(w, "Logout failed", http.StatusInternalServerError)
		return
	}

	h.authService.ClearRefreshCookie(w)
	render.JSON(w, LogoutSuccessResponse{Message: "Logged out successfully"})
}
