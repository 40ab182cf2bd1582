package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/expense-bot/internal"
)

func writeError(w http.ResponseWriter, status int, appErr *internal.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(internal.Response{Error: appErr})
}
