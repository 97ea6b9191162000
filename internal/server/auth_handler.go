package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/types"
	"go.uber.org/zap"
)

// AuthHandler issues bearer tokens to the configured HR account.
type AuthHandler struct {
	username     string
	passwordHash string
	passwords    *config.PasswordConfig
	jwtService   *JWTService
	logger       *zap.Logger
}

// NewAuthHandler creates a new AuthHandler for the HR credentials in cfg.
func NewAuthHandler(cfg *config.Config, passwords *config.PasswordConfig, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		username:     cfg.HRUsername,
		passwordHash: cfg.HRPasswordHash,
		passwords:    passwords,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Authenticate checks HR credentials.
func (h *AuthHandler) Authenticate(req *types.TokenRequest) error {
	if h.passwordHash == "" || h.passwords == nil || h.jwtService == nil {
		return &ErrUnavailable{Feature: "HR authentication"}
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passOK := h.passwords.VerifyPassword(req.Password, h.passwordHash)
	if !userOK || !passOK {
		return &ErrInvalidCredentials{}
	}
	return nil
}

// Token handles POST /v1/auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req types.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := h.Authenticate(&req); err != nil {
		h.logger.Warn("token request rejected", zap.String("username", req.Username), zap.Error(err))
		writeError(w, h.logger, HTTPStatus(err), err.Error())
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, types.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	})
}
