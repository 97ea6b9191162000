package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request TokenRequest
		wantErr string
	}{
		{name: "valid request", request: TokenRequest{Username: "hr", Password: "secret"}},
		{name: "missing username", request: TokenRequest{Password: "secret"}, wantErr: "Username"},
		{name: "missing password", request: TokenRequest{Username: "hr"}, wantErr: "Password"},
		{name: "password too long", request: TokenRequest{Username: "hr", Password: strings.Repeat("x", 73)}, wantErr: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTokenResponse_JSON(t *testing.T) {
	resp := TokenResponse{
		Token:     "abc",
		TokenType: "Bearer",
		ExpiresAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc","token_type":"Bearer","expires_at":"2024-01-02T03:04:05Z"}`, string(data))
}
