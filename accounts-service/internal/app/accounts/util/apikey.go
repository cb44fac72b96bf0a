package util

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const apiKeyPrefixLen = 11 // "bb_" + 8 символов

// GenerateAPIKey генерирует секрет вида bb_<hex> и его префикс.
// Префикс хранится открыто для поиска ключа, секрет только как хэш
func GenerateAPIKey() (secret string, prefix string) {
	raw := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	secret = fmt.Sprintf("bb_%s", raw)
	return secret, secret[:apiKeyPrefixLen]
}

// KeyPrefix возвращает префикс секрета для поиска в БД
func KeyPrefix(secret string) string {
	if len(secret) < apiKeyPrefixLen {
		return secret
	}
	return secret[:apiKeyPrefixLen]
}

// HashSecret хэширует секрет ключа с использованием bcrypt
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckSecret проверяет, соответствует ли секрет хэшу
func CheckSecret(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}
