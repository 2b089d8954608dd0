package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront-api.git/internal/httpx"
	"github.com/ariefcatur/go-storefront-api.git/internal/metrics"
	"github.com/ariefcatur/go-storefront-api.git/internal/orders"
)

type fakeSubmitter struct {
	id  int64
	err error
	got orders.Submission
}

func (f *fakeSubmitter) SubmitOrder(ctx context.Context, sub orders.Submission) (int64, error) {
	f.got = sub
	return f.id, f.err
}

type fakeReader struct {
	order       orders.Order
	status      string
	list        []orders.Order
	err         error
	statusCalls int
}

func (f *fakeReader) GetOrder(ctx context.Context, id int64) (orders.Order, error) {
	return f.order, f.err
}

func (f *fakeReader) GetStatus(ctx context.Context, id int64) (string, error) {
	f.statusCalls++
	return f.status, f.err
}

func (f *fakeReader) ListByUser(ctx context.Context, userID int64) ([]orders.Order, error) {
	return f.list, f.err
}

func newTestServer(sub *fakeSubmitter, rd *fakeReader) *httptest.Server {
	r := httpx.NewRouter()
	h := &httpx.OrdersHandler{
		Engine:  sub,
		Repo:    rd,
		Metrics: metrics.NewSubmissionsWith(prometheus.NewRegistry()),
		Service: "test",
	}
	h.Register(r)
	return httptest.NewServer(r)
}

const submitBody = `{"total_cents":3000,"shipping_address":{"street":"x"},"items":[{"product_id":7,"qty":2,"price_cents":1500}]}`

func TestSubmitOrderHandlerCreated(t *testing.T) {
	sub := &fakeSubmitter{id: 42}
	srv := newTestServer(sub, &fakeReader{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(submitBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body httpx.SubmitOrderResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(42), body.OrderID)
	require.Equal(t, int64(3000), body.TotalCents)
	require.Equal(t, orders.StatusPending, body.Status)

	require.Len(t, sub.got.Items, 1)
	require.Equal(t, int64(7), sub.got.Items[0].ProductID)
	require.Equal(t, 2, sub.got.Items[0].Qty)
}

func TestSubmitOrderHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", orders.ErrItemsRequired, http.StatusBadRequest},
		{"insufficient stock", orders.ErrInsufficientStock, http.StatusConflict},
		{"unknown product", orders.ErrProductNotFound, http.StatusConflict},
		{"infrastructure", &orders.TxError{Op: "commit", Err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(&fakeSubmitter{err: tc.err}, &fakeReader{})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(submitBody))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestSubmitOrderHandlerBadJSON(t *testing.T) {
	srv := newTestServer(&fakeSubmitter{}, &fakeReader{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetOrderHandler(t *testing.T) {
	rd := &fakeReader{order: orders.Order{ID: 9, TotalCents: 100, Status: "pending"}}
	srv := newTestServer(&fakeSubmitter{}, rd)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/9")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got orders.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, int64(9), got.ID)
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	srv := newTestServer(&fakeSubmitter{}, &fakeReader{err: orders.ErrOrderNotFound})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/9")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetOrderStatusHandler(t *testing.T) {
	rd := &fakeReader{status: "pending"}
	srv := newTestServer(&fakeSubmitter{}, rd)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/9/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "pending", got["status"])
	require.Equal(t, 1, rd.statusCalls)
}

func TestGetOrderStatusHandlerNotFound(t *testing.T) {
	srv := newTestServer(&fakeSubmitter{}, &fakeReader{err: orders.ErrOrderNotFound})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/9/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetOrderHandlerBadID(t *testing.T) {
	srv := newTestServer(&fakeSubmitter{}, &fakeReader{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/orders/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
