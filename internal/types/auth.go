package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TokenRequest carries the HR credentials exchanged for a bearer token.
type TokenRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse is the issued bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate validates the TokenRequest using the validator.
func (r *TokenRequest) Validate() error {
	return validate.Struct(r)
}
