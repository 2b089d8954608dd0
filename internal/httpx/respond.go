package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-storefront-api.git/internal/catalog"
	"github.com/ariefcatur/go-storefront-api.git/internal/orders"
	"github.com/ariefcatur/go-storefront-api.git/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes: validation -> 400,
// missing records -> 404, constraint conflicts -> 409, bad credentials
// -> 401, anything else -> opaque 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case orders.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, users.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case orders.IsConstraint(err),
		errors.Is(err, catalog.ErrDuplicateSKU),
		errors.Is(err, catalog.ErrDuplicateBrand),
		errors.Is(err, catalog.ErrBrandInUse),
		errors.Is(err, users.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, users.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func pathID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	return id, err == nil && id > 0
}
