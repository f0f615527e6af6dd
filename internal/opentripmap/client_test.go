package opentripmap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, body string, status int) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/autosuggest", r.URL.Path)
		assert.Equal(t, "tower", r.URL.Query().Get("name"))
		assert.Equal(t, "43.65", r.URL.Query().Get("lat"))
		assert.Equal(t, "-79.38", r.URL.Query().Get("lon"))
		assert.Equal(t, "otm-key", r.URL.Query().Get("apikey"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient("otm-key", srv.URL, time.Second)
}

func TestSuggestFeatureCollection(t *testing.T) {
	client := newTestClient(t, `{"type":"FeatureCollection","features":[
		{"properties":{"xid":"W1","name":"CN Tower","kinds":"towers,architecture"}},
		{"properties":{"xid":"W2","name":"","kinds":"other"}}
	]}`, http.StatusOK)

	got, err := client.Suggest(context.Background(), "tower", 43.65, -79.38)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "W1", got[0].ID)
	assert.Equal(t, "CN Tower", got[0].Name)
	assert.Equal(t, []string{"towers", "architecture"}, got[0].Kinds)
}

func TestSuggestPlainArray(t *testing.T) {
	client := newTestClient(t, `[{"xid":"N5","name":"Tower Park","kinds":""}]`, http.StatusOK)

	got, err := client.Suggest(context.Background(), "tower", 43.65, -79.38)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{}, got[0].Kinds)
}

func TestSuggestWithoutFeaturesIsEmpty(t *testing.T) {
	client := newTestClient(t, `{"error":"nothing"}`, http.StatusOK)

	got, err := client.Suggest(context.Background(), "tower", 43.65, -79.38)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggestUpstreamFailure(t *testing.T) {
	client := newTestClient(t, `oops`, http.StatusBadGateway)

	_, err := client.Suggest(context.Background(), "tower", 43.65, -79.38)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
