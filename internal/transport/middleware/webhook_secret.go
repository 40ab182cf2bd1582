package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-bot/internal"
)

// TelegramSecretHeader carries the secret_token registered with setWebhook.
const TelegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookSecret rejects requests whose secret header does not match secret.
// An empty secret disables the check.
func WebhookSecret(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(TelegramSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Warn("webhook secret mismatch",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"header_present", got != "")
				writeError(w, http.StatusUnauthorized, &internal.AppError{
					Type:    internal.ErrorTypeUnauthorized,
					Code:    internal.ErrCodeInvalidSecret,
					Message: "invalid webhook secret",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
