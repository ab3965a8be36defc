// internal/adapters/in/http/mall/handler/helper_handler.go
package mallHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	mallquery "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall"
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	if allow != "" {
		w.Header().Set("Allow", allow)
	}
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": strings.TrimSpace(msg)})
}

func unprocessable(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": strings.TrimSpace(msg)})
}

func internalError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": strings.TrimSpace(msg)})
}

// writeQueryError maps query/domain sentinels to status codes.
// Internal errors are not echoed to the client.
func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, productdom.ErrNotFound):
		notFound(w)
	case errors.Is(err, productdom.ErrInvalidProduct):
		unprocessable(w, "invalid_product")
	case errors.Is(err, mallquery.ErrInvalidArgument):
		badRequest(w, err.Error())
	default:
		internalError(w, "internal_error")
	}
}
