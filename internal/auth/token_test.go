package auth

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamify-server/internal/domain"
)

func TestGenerateDemoToken(t *testing.T) {
	token := GenerateDemoToken("demo_user", time.Hour)

	payload, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)

	var claims DemoClaims
	require.NoError(t, json.Unmarshal(payload, &claims))
	assert.Equal(t, "demo_user", claims.UserID)
	assert.Greater(t, claims.Exp, claims.Iat)
}

func TestValidateToken_Success(t *testing.T) {
	token := GenerateDemoToken("user-42", time.Hour)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestValidateToken_Expired(t *testing.T) {
	token := GenerateDemoToken("user-42", -time.Minute)

	_, err := ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestValidateToken_MissingUserID(t *testing.T) {
	payload, _ := json.Marshal(DemoClaims{
		Iat: time.Now().Unix(),
		Exp: time.Now().Add(time.Hour).Unix(),
	})
	token := base64.StdEncoding.EncodeToString(payload)

	_, err := ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidateToken_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not json", base64.StdEncoding.EncodeToString([]byte("plain text"))},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateToken(tc.token)
			assert.ErrorIs(t, err, domain.ErrTokenMalformed)
		})
	}
}
