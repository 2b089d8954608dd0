package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariefcatur/go-storefront-api.git/internal/catalog"
	"github.com/ariefcatur/go-storefront-api.git/internal/orders"
	"github.com/ariefcatur/go-storefront-api.git/internal/users"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", orders.ErrItemsRequired, http.StatusBadRequest},
		{"order not found", orders.ErrOrderNotFound, http.StatusNotFound},
		{"catalog not found", catalog.ErrNotFound, http.StatusNotFound},
		{"user not found", users.ErrNotFound, http.StatusNotFound},
		{"insufficient stock", orders.ErrInsufficientStock, http.StatusConflict},
		{"duplicate sku", catalog.ErrDuplicateSKU, http.StatusConflict},
		{"duplicate brand", catalog.ErrDuplicateBrand, http.StatusConflict},
		{"brand in use", catalog.ErrBrandInUse, http.StatusConflict},
		{"email taken", users.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", users.ErrInvalidCredentials, http.StatusUnauthorized},
		{"infrastructure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			if rec.Code != tc.want {
				t.Fatalf("want %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
