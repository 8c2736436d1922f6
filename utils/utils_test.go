package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := Claims{UserID: 7, Email: "ana@example.com"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	claims, err := ParseClaims(signedToken(t, &exp))
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)

	_, err = ParseClaims("not-a-token")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.False(t, TokenExpired(signedToken(t, &future), now))
	assert.True(t, TokenExpired(signedToken(t, &past), now))
	assert.False(t, TokenExpired(signedToken(t, nil), now))
	assert.True(t, TokenExpired("garbage", now))
	assert.True(t, TokenExpired("", now))
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Project has tasks"}`, "Project has tasks"},
		{"error field", `{"error":"forbidden"}`, "forbidden"},
		{"plain body", "boom\n", "boom"},
		{"empty body", "", "Bad Request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.want, err.Message)
			assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		})
	}
}

func TestStatusHelpers(t *testing.T) {
	wrapped := fmt.Errorf("deleting project: %w", &APIError{StatusCode: 404, Message: "not found"})
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsUnauthorized(wrapped))
	assert.Equal(t, "not found", ErrorMessage(wrapped))
	assert.Equal(t, 0, StatusCode(errors.New("dial tcp: refused")))
	assert.Equal(t, "dial tcp: refused", ErrorMessage(errors.New("dial tcp: refused")))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "09/03/2024", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", FormatDate(&time.Time{}))
}
