package reconcile

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/averson/marketpay/internal/accountmapping"
	"github.com/averson/marketpay/internal/marketplace"
	"github.com/averson/marketpay/internal/processor"
	"github.com/averson/marketpay/internal/reconcile"
	"github.com/averson/marketpay/internal/transfer"
)

func newTestHandler(t *testing.T) (http.Handler, *reconcile.MockMarketplace) {
	ctrl := gomock.NewController(t)

	gateway := reconcile.NewMockMarketplace(ctrl)
	factory := transfer.NewFactory(
		transfer.NewMockRepository(ctrl),
		accountmapping.NewMockRepository(ctrl),
		processor.NewMockClient(ctrl),
	)
	svc := reconcile.NewService(gateway, factory, transfer.NewMockRepository(ctrl))

	handler := NewHandler(svc, nil)

	router := chi.NewRouter()
	router.Route("/", handler.Routes)

	return router, gateway
}

func postJSON(router http.Handler, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestRun_RejectsMalformedSince(t *testing.T) {
	router, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "NotADate", body: `{"since":"not-a-date"}`},
		{name: "WrongLayout", body: `{"since":"2026-08-01 00:00:00"}`},
		{name: "MissingOffset", body: `{"since":"2026-08-01T00:00:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(router, strings.NewReader(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRun_RejectsMalformedJSON(t *testing.T) {
	router, _ := newTestHandler(t)

	rec := postJSON(router, strings.NewReader(`{"since":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRun_PassesSinceThrough(t *testing.T) {
	router, gateway := newTestHandler(t)

	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	gateway.EXPECT().
		ListOrdersByDate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, since time.Time) (map[string]marketplace.Order, error) {
			assert.True(t, since.Equal(want))
			return nil, nil
		})

	rec := postJSON(router, strings.NewReader(`{"since":"2026-08-01T00:00:00+0000"}`))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRun_EmptyBodyRunsFullPass(t *testing.T) {
	router, gateway := newTestHandler(t)

	gateway.EXPECT().ListOrders(gomock.Any()).Return(nil, nil)

	rec := postJSON(router, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Chunked requests carry no Content-Length; the body must still be read.
func TestRun_ReadsChunkedBody(t *testing.T) {
	router, gateway := newTestHandler(t)

	gateway.EXPECT().ListOrdersByDate(gomock.Any(), gomock.Any()).Return(nil, nil)

	body := struct{ io.Reader }{strings.NewReader(`{"since":"2026-08-01T00:00:00+0000"}`)}

	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, int64(-1), req.ContentLength)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
