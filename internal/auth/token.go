// Package auth реализует демо-учетные данные: base64-кодированный JSON
// без криптографической подписи. Токен носит рекомендательный характер
// и пригоден только для демо-стенда.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"gamify-server/internal/domain"
)

// DefaultUserID - идентификатор пользователя демо-стенда.
const DefaultUserID = "demo_user"

// DemoClaims - полезная нагрузка демо-токена.
type DemoClaims struct {
	UserID string `json:"userId"`
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// GenerateDemoToken выдает токен для userID со сроком жизни ttl.
func GenerateDemoToken(userID string, ttl time.Duration) string {
	now := time.Now()
	claims := DemoClaims{
		UserID: userID,
		Iat:    now.Unix(),
		Exp:    now.Add(ttl).Unix(),
	}
	payload, _ := json.Marshal(claims)
	return base64.StdEncoding.EncodeToString(payload)
}

// ParseToken декодирует токен без проверки срока действия.
func ParseToken(token string) (*DemoClaims, error) {
	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	var claims DemoClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	return &claims, nil
}

// ValidateToken декодирует токен и проверяет его:
// exp должен быть в будущем, userId - непустым.
func ValidateToken(token string) (*DemoClaims, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Exp <= time.Now().Unix() {
		return nil, domain.ErrTokenExpired
	}
	if claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
