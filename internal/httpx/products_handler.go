package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/ariefcatur/go-storefront-api.git/internal/catalog"
	"github.com/ariefcatur/go-storefront-api.git/internal/redisx"
)

type ProductsHandler struct {
	Repo  *catalog.Repo
	Redis *redis.Client // optional
	Log   *log.Entry
}

type ProductReq struct {
	BrandID    *int64 `json:"brand_id,omitempty"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
	r.Post("/products", h.create)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.delete)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeyProductList).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	ps, err := h.Repo.ListProducts(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Redis != nil {
		if b, err := json.Marshal(ps); err == nil {
			_ = h.Redis.Set(ctx, redisx.KeyProductList, b, redisx.TTLProductList).Err()
		}
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req ProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.SKU == "" || req.Name == "" || req.PriceCents < 0 || req.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid fields"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id, err := h.Repo.CreateProduct(ctx, catalog.Product{
		BrandID: req.BrandID, SKU: req.SKU, Name: req.Name,
		PriceCents: req.PriceCents, Stock: req.Stock,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidateList(ctx)
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req ProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.SKU == "" || req.Name == "" || req.PriceCents < 0 || req.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid fields"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.Repo.UpdateProduct(ctx, catalog.Product{
		ID: id, BrandID: req.BrandID, SKU: req.SKU, Name: req.Name,
		PriceCents: req.PriceCents, Stock: req.Stock,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.invalidateList(ctx)
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	h.invalidateList(ctx)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductsHandler) invalidateList(ctx context.Context) {
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, redisx.KeyProductList).Err()
	}
}
