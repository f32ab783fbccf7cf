package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(&config.APIConfig{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		RetryCount: 0,
	})
	require.NoError(t, err)
	return client
}

func TestCSRFCookieRoundTrip(t *testing.T) {
	var gotToken, gotRequestedWith string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/check/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok-123", Path: "/"})
		w.Write([]byte(`{"authenticated": false}`))
	})
	mux.HandleFunc("POST /auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-CSRFToken")
		gotRequestedWith = r.Header.Get("X-Requested-With")
		w.Write([]byte(`{"message": "ok"}`))
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	_, err := client.CheckAuth(ctx)
	require.NoError(t, err)

	require.NoError(t, client.Logout(ctx))
	assert.Equal(t, "tok-123", gotToken, "the cookie-issued token comes back as a header")
	assert.Equal(t, "XMLHttpRequest", gotRequestedWith)
}

func TestAPIErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error field", http.StatusForbidden, `{"error": "Authentication credentials were not provided."}`, "Authentication credentials were not provided."},
		{"message field", http.StatusBadRequest, `{"message": "Cart is empty."}`, "Cart is empty."},
		{"unstructured body", http.StatusInternalServerError, `<html>oops</html>`, "HTTP error 500"},
		{"non-string error field", http.StatusBadRequest, `{"error": {"quantity": ["too large"]}}`, "HTTP error 400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.GetCart(context.Background())
			require.Error(t, err)
			assert.True(t, IsAPIError(err))
			assert.False(t, IsNetworkError(err))

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestNetworkErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := New(&config.APIConfig{
		BaseURL:    srv.URL,
		Timeout:    time.Second,
		RetryCount: 0,
	})
	require.NoError(t, err)

	_, err = client.GetCart(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.False(t, IsAPIError(err))
}

func TestDecodeResultsPlainArray(t *testing.T) {
	results, err := DecodeResults[models.Product]([]byte(`[{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`))
	require.NoError(t, err)
	assert.Len(t, results.Items, 2)
	assert.Equal(t, 2, results.TotalCount)
	assert.Equal(t, models.ID("1"), results.Items[0].ID)
}

func TestDecodeResultsPaginatedEnvelope(t *testing.T) {
	results, err := DecodeResults[models.Product]([]byte(`{"results": [{"id": 1, "name": "a"}], "count": 42}`))
	require.NoError(t, err)
	assert.Len(t, results.Items, 1)
	assert.Equal(t, 42, results.TotalCount)
}

func TestDecodeResultsEnvelopeWithMissingCount(t *testing.T) {
	results, err := DecodeResults[models.Product]([]byte(`{"results": [{"id": 1}, {"id": 2}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, results.TotalCount, "count never reports fewer than the decoded items")
}

func TestDecodeResultsEmpty(t *testing.T) {
	results, err := DecodeResults[models.Product](nil)
	require.NoError(t, err)
	assert.Empty(t, results.Items)
	assert.Zero(t, results.TotalCount)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/cart/:id/update_quantity/", normalizePath("/cart/17/update_quantity/"))
	assert.Equal(t, "/products/:id/", normalizePath("/products/42/"))
	assert.Equal(t, "/cart/", normalizePath("/cart/"))
	assert.Equal(t, "/cart/abc123/", normalizePath("/cart/abc123/"))
}
