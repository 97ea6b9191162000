package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator.
type testTokenValidator struct {
	validTokens map[string]string
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	subject, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(subject), nil
}

type testClaims string

func (c testClaims) GetSubject() (string, error) {
	return string(c), nil
}

func newValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: map[string]string{
		"valid-token": "hr",
		"no-subject":  "",
	}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	var subject string
	handler := AuthMiddleware(newValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		subject, err = GetSubject(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/x", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hr", subject)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "no token", header: "Bearer"},
		{name: "extra parts", header: "Bearer a b"},
		{name: "unknown token", header: "Bearer nope"},
		{name: "empty subject", header: "Bearer no-subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(newValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/hr/batch", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		})
	}
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	handler := AuthMiddleware(newValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer valid-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetSubject(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)

	req = req.WithContext(WithSubject(context.Background(), "recruiter"))
	subject, err := GetSubject(req)
	require.NoError(t, err)
	assert.Equal(t, "recruiter", subject)
}
