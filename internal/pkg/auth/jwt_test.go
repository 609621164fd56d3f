package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelportal/internal/app/models"
)

func newTestService(ttl time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret-key-for-unit-testing",
		AccessTokenExp: ttl,
		TokenIssuer:    "hostelportal.test",
	})
}

var testStudent = models.Student{ID: "5b0e0a4e-8f53-4a7c-9d0b-6a1a3b2c1d00", StudentID: "U20CS1001"}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestService(15 * time.Minute)

	token, expiresIn, err := s.GenerateToken(testStudent)
	require.NoError(t, err)
	assert.Equal(t, 900, expiresIn)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, testStudent.ID, claims.StudentUUID)
	assert.Equal(t, testStudent.StudentID, claims.StudentID)
	assert.Equal(t, "hostelportal.test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestService(time.Minute).GenerateToken(testStudent)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Minute})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	token, _, err := newTestService(-time.Minute).GenerateToken(testStudent)
	require.NoError(t, err)

	_, err = newTestService(time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"abc.def.ghi", "abc.def.ghi", false},
		{"Bearer ", "", true},
		{"", "", true},
		{"Basic dXNlcjpwYXNz", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.wantErr {
			assert.Error(t, err, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}

func TestTokenExpiry(t *testing.T) {
	token, _, err := newTestService(time.Hour).GenerateToken(testStudent)
	require.NoError(t, err)

	exp, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	_, ok = TokenExpiry("opaque-session-token")
	assert.False(t, ok)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}
