package telemetry

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupWithoutExporterIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{ServiceName: "storefront-api"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStdoutExporterRecordsHandlerSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var out bytes.Buffer
	shutdown, err := Setup(context.Background(), Config{
		ServiceName:  "storefront-api",
		Stdout:       true,
		StdoutWriter: &out,
	})
	require.NoError(t, err)

	h := Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), "storefront-api")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, out.String(), "HTTP GET /products")
	assert.Contains(t, out.String(), "storefront-api")
}

func TestTracedClientRoundTrips(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
	}))
	defer srv.Close()

	resp, err := NewTracedHTTPClient(nil).Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotNil(t, got)
}
