package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "top_test_token", time.Second, nil)
}

func TestClientSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotReqID string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	require.NoError(t, c.call(context.Background(), http.MethodGet, "/settings", nil, nil))
	assert.Equal(t, "Bearer top_test_token", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestClientErrorFromMessageField(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"layout not found"}`))
	})

	err := c.call(context.Background(), http.MethodGet, "/layouts/jobs/nope", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "layout not found", err.Error())
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusForbidden))
}

func TestClientErrorFromErrorField(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"forbidden"}`))
	})

	err := c.call(context.Background(), http.MethodGet, "/timesheets/pending", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "forbidden", err.Error())
	assert.True(t, IsStatus(err, http.StatusForbidden))
}

func TestClientErrorFallbackMessage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream says no`))
	})

	err := c.call(context.Background(), http.MethodGet, "/jobs", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Request failed with status 502", err.Error())
}

func TestClientUnsuccessfulEnvelope(t *testing.T) {
	// 2xx with success=false still surfaces as an error.
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"validation failed"}`))
	})

	err := c.call(context.Background(), http.MethodPost, "/clients", ClientInput{Name: "x"}, nil)
	require.Error(t, err)
	assert.Equal(t, "validation failed", err.Error())
}

func TestClientHasToken(t *testing.T) {
	assert.True(t, New("http://x", "tok", 0, nil).HasToken())
	assert.False(t, New("http://x", "", 0, nil).HasToken())
}
