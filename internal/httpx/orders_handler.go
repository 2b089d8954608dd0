package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	kafkax "github.com/ariefcatur/go-storefront-api.git/internal/kafka"
	"github.com/ariefcatur/go-storefront-api.git/internal/metrics"
	"github.com/ariefcatur/go-storefront-api.git/internal/orders"
	"github.com/ariefcatur/go-storefront-api.git/internal/redisx"
)

// OrderSubmitter is what the handler needs from the engine.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, sub orders.Submission) (int64, error)
}

type OrderReader interface {
	GetOrder(ctx context.Context, id int64) (orders.Order, error)
	GetStatus(ctx context.Context, id int64) (string, error)
	ListByUser(ctx context.Context, userID int64) ([]orders.Order, error)
}

type OrdersHandler struct {
	Engine   OrderSubmitter
	Repo     OrderReader
	Producer *kafkax.Producer     // optional
	Redis    *redis.Client        // optional
	Metrics  *metrics.Submissions // optional
	Service  string
	Log      *log.Entry
}

type SubmitOrderResp struct {
	OrderID    int64  `json:"order_id"`
	TotalCents int64  `json:"total_cents"`
	Status     string `json:"status"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.submitOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders/{id}/status", h.getOrderStatus)
	r.Get("/users/{id}/orders", h.listUserOrders)
}

func (h *OrdersHandler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var sub orders.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	orderID, err := h.Engine.SubmitOrder(ctx, sub)
	if err != nil {
		h.observeFailure(err)
		if h.Log != nil && !orders.IsValidation(err) && !orders.IsConstraint(err) {
			h.Log.WithError(err).Error("order submission failed")
		}
		writeError(w, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.ObserveAccepted(time.Since(start))
	}

	status := sub.Status
	if status == "" {
		status = orders.StatusPending
	}

	// Cache status so GET /orders/{id} is cheap right after checkout.
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		_ = h.Redis.Set(ctx, key, fmt.Sprintf(`{"status":%q}`, status), redisx.TTLStatusCache).Err()
	}

	// Best-effort event, strictly after commit.
	if h.Producer != nil {
		ev := orders.Envelope{
			EventID:       uuid.NewString(),
			EventType:     orders.EventOrderPlaced,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       r.Header.Get("X-Request-Id"),
			CorrelationID: fmt.Sprintf("%d", orderID),
			Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
				OrderID:    orderID,
				UserID:     sub.UserID,
				Status:     status,
				Items:      sub.Items,
				TotalCents: sub.TotalCents,
			}),
		}
		h.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeJSON(w, http.StatusCreated, SubmitOrderResp{
		OrderID:    orderID,
		TotalCents: sub.TotalCents,
		Status:     status,
	})
}

func (h *OrdersHandler) observeFailure(err error) {
	if h.Metrics == nil {
		return
	}
	switch {
	case orders.IsValidation(err):
		h.Metrics.ObserveRejected("validation")
	case orders.IsConstraint(err):
		h.Metrics.ObserveRejected("conflict")
	default:
		h.Metrics.ObserveFailed()
	}
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.GetOrder(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// getOrderStatus serves the hot path right after checkout: try the cached
// status snapshot first, fall back to Postgres and re-prime the cache.
func (h *OrdersHandler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, id)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	status, err := h.Repo.GetStatus(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	body := fmt.Sprintf(`{"status":%q}`, status)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (h *OrdersHandler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.ListByUser(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
