package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/service/auth"
	"github.com/youchat/youchat-api/internal/store"
)

// AuthHandler handles user registration, login, and token refresh.
type AuthHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore:  userStore,
		jwtService: jwtService,
		verifier:   verifier,
		logger:     log.With("component", "auth_handler"),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.userStore.Create(ctx, user); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp, err := h.tokenResponse(r, user.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user registered", "user_id", user.ID)
	shared.RespondWithJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	user, err := h.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, auth.ErrPasswordMismatch)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp, err := h.tokenResponse(r, user.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user logged in", "user_id", user.ID)
	shared.RespondWithJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh. It validates the refresh token and
// issues a new access/refresh token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()

	claims, err := h.jwtService.ValidateRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	// The user must still exist.
	user, err := h.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	resp, err := h.tokenResponse(r, user.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) tokenResponse(r *http.Request, userID uuid.UUID) (*AuthResponse, error) {
	ctx := r.Context()

	accessToken, err := h.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       userID.String(),
	}, nil
}
