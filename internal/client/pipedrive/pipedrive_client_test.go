package pipedrive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseUrlForDomain(t *testing.T) {
	assert.Equal(t, "https://acme.pipedrive.com/api/v1", BaseUrlForDomain("acme"))
	assert.Equal(t, "https://nettbureaucase.pipedrive.com/api/v1", BaseUrlForDomain(""))
}

func TestPostSendsJSONWithTokenInQuery(t *testing.T) {
	var gotPath, gotToken, gotContentType, gotAccept, gotMethod string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("api_token")
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":42,"name":"Acme"}}`))
	}))
	defer srv.Close()

	c := NewPipedriveClient("t0k&en", "acme", WithBaseUrl(srv.URL+"/api/v1/"))
	resp, err := c.Post(context.Background(), EndpointOrganizations, map[string]any{"name": "Acme", "visible_to": 3})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/organizations", gotPath)
	assert.Equal(t, "t0k&en", gotToken)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "Acme", gotPayload["name"])

	id, ok := resp.CreatedId()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.True(t, resp.Success)
}

func TestPostReturnsBodyWithoutIdUnchecked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"something odd"}`))
	}))
	defer srv.Close()

	c := NewPipedriveClient("token", "", WithBaseUrl(srv.URL))
	resp, err := c.Post(context.Background(), EndpointPersons, map[string]any{})
	require.NoError(t, err)

	_, ok := resp.CreatedId()
	assert.False(t, ok)
	assert.Equal(t, "something odd", resp.ErrorMessage())
}

func TestPostSuccessStatusWithOddBody(t *testing.T) {
	for _, body := range []string{`{"success":false,"data":[]}`, `{"data":false}`, `<html>ok</html>`, ``} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c := NewPipedriveClient("token", "", WithBaseUrl(srv.URL))
		resp, err := c.Post(context.Background(), EndpointOrganizations, map[string]any{})
		srv.Close()

		require.NoError(t, err, body)
		_, ok := resp.CreatedId()
		assert.False(t, ok, body)
		assert.Equal(t, "Unknown error", resp.ErrorMessage(), body)
	}
}

func TestPostClassifiesErrorStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "error field", status: http.StatusUnprocessableEntity, body: `{"success":false,"error":"title is required"}`, wantMessage: "title is required"},
		{name: "no error field", status: http.StatusUnauthorized, body: `{"success":false}`, wantMessage: "Unknown error"},
		{name: "html body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMessage: "Unknown error"},
		{name: "empty body", status: http.StatusBadRequest, body: ``, wantMessage: "Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewPipedriveClient("token", "", WithBaseUrl(srv.URL))
			_, err := c.Post(context.Background(), EndpointDeals, map[string]any{})

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, EndpointDeals, apiErr.Endpoint)
		})
	}
}

func TestPostTransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseUrl := srv.URL
	srv.Close()

	c := NewPipedriveClient("very-secret", "", WithBaseUrl(baseUrl))
	_, err := c.Post(context.Background(), EndpointOrganizations, map[string]any{})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.NotContains(t, err.Error(), "very-secret")
	assert.Contains(t, err.Error(), "REDACTED")
}

func TestPostHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewPipedriveClient("token", "", WithBaseUrl(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := c.Post(context.Background(), EndpointOrganizations, map[string]any{})

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestPostCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewPipedriveClient("token", "", WithBaseUrl(srv.URL))
	_, err := c.Post(ctx, EndpointOrganizations, map[string]any{})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, context.Canceled)
}
