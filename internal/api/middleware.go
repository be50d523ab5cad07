// Файл: internal/api/middleware.go
package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// UserContextKey - ключ для сохранения данных пользователя в контексте запроса.
var UserContextKey = &contextKey{"User"}

type contextKey struct {
	name string
}

// TelegramUser - пользователь из initData Telegram WebApp.
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// AuthMiddleware проверяет заголовок X-Telegram-Auth с initData.
func AuthMiddleware(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("X-Telegram-Auth")
			if authHeader == "" {
				http.Error(w, "Unauthorized: Missing X-Telegram-Auth header", http.StatusUnauthorized)
				return
			}

			isValid, userData, err := validateInitData(authHeader, secretKey)
			if err != nil || !isValid {
				log.Printf("AuthMiddleware: Invalid initData. Error: %v", err)
				http.Error(w, "Unauthorized: Invalid initData", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, userData)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorMiddleware пропускает только оператора.
func OperatorMiddleware(operatorID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(UserContextKey).(TelegramUser)
			if !ok {
				http.Error(w, "Forbidden: User data not found in context", http.StatusForbidden)
				return
			}
			if user.ID != operatorID {
				log.Printf("[ACCESS_DENIED] API: отказ в доступе для UserID=%d", user.ID)
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// validateInitData проверяет подпись данных Telegram WebApp.
func validateInitData(initData, secret string) (bool, TelegramUser, error) {
	var userData TelegramUser

	q, err := url.ParseQuery(initData)
	if err != nil {
		return false, userData, fmt.Errorf("failed to parse initData: %w", err)
	}

	hash := q.Get("hash")
	if hash == "" {
		return false, userData, fmt.Errorf("hash is not present in initData")
	}

	userJSON := q.Get("user")
	if userJSON == "" {
		return false, userData, fmt.Errorf("user data is not present in initData")
	}
	if err := json.Unmarshal([]byte(userJSON), &userData); err != nil {
		return false, userData, fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	calculatedHash := signInitData(q, secret)
	return hmac.Equal([]byte(calculatedHash), []byte(hash)), userData, nil
}

// signInitData вычисляет hash для набора полей initData (кроме самого hash).
func signInitData(q url.Values, secret string) string {
	var pairs []string
	for k, v := range q {
		if k != "hash" {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, v[0]))
		}
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(secret))

	h := hmac.New(sha256.New, secretKey.Sum(nil))
	h.Write([]byte(dataCheckString))
	return hex.EncodeToString(h.Sum(nil))
}
