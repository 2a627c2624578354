package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/habitpet/internal/store"
)

func serve(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"1.1.0", "1.0.0", true},
		{"1.0.0", "1.0.0", false},
		{"1.10.0", "1.9.0", true},
		{"1.9.0", "1.10.0", false},
		{"v2.0.0", "1.9.9", true},
		{"0.9", "1.0.0", false},
		{"nightly-b", "nightly-a", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Newer(tt.latest, tt.current), "%s vs %s", tt.latest, tt.current)
	}
}

func TestCheck_NoticeForNewerVersion(t *testing.T) {
	srv := serve(t, `{"latestVersion":"1.2.0","message":"New pets!"}`, http.StatusOK)
	c := NewChecker(srv.URL, "1.0.0", store.NewMemoryKV(), time.Second, nil)

	n, ok := c.Check(context.Background())
	require.True(t, ok)
	assert.Equal(t, Notice{Version: "1.2.0", Message: "New pets!"}, n)
}

func TestCheck_NothingWhenCurrent(t *testing.T) {
	srv := serve(t, `{"latestVersion":"1.0.0","message":"hi"}`, http.StatusOK)
	c := NewChecker(srv.URL, "1.0.0", store.NewMemoryKV(), time.Second, nil)

	_, ok := c.Check(context.Background())
	assert.False(t, ok)
}

func TestAcknowledge_SuppressesOnlyThatVersion(t *testing.T) {
	kv := store.NewMemoryKV()
	srv := serve(t, `{"latestVersion":"1.2.0","message":"m"}`, http.StatusOK)
	c := NewChecker(srv.URL, "1.0.0", kv, time.Second, nil)

	require.NoError(t, c.Acknowledge("1.2.0"))
	_, ok := c.Check(context.Background())
	assert.False(t, ok)

	newer := serve(t, `{"latestVersion":"1.3.0","message":"m"}`, http.StatusOK)
	c.URL = newer.URL
	n, ok := c.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "1.3.0", n.Version)
}

func TestEvaluate(t *testing.T) {
	kv := store.NewMemoryKV()
	c := NewChecker("", "1.0.0", kv, time.Second, nil)

	_, ok := c.Evaluate(Descriptor{})
	assert.False(t, ok)

	n, ok := c.Evaluate(Descriptor{LatestVersion: " 2.0.0 ", Message: "big"})
	require.True(t, ok)
	assert.Equal(t, "2.0.0", n.Version)

	require.NoError(t, kv.Set(KeyLastSeen, "2.0.0"))
	_, ok = c.Evaluate(Descriptor{LatestVersion: "2.0.0"})
	assert.False(t, ok)
}

func TestFetch_NoURL(t *testing.T) {
	c := NewChecker("", "1.0.0", store.NewMemoryKV(), time.Second, nil)
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestCheck_FailuresAreSilent(t *testing.T) {
	tests := []struct {
		name string
		url  func(t *testing.T) string
	}{
		{"server error", func(t *testing.T) string { return serve(t, `oops`, http.StatusInternalServerError).URL }},
		{"bad json", func(t *testing.T) string { return serve(t, `{"latestVersion":`, http.StatusOK).URL }},
		{"unreachable", func(t *testing.T) string {
			srv := serve(t, ``, http.StatusOK)
			srv.Close()
			return srv.URL
		}},
		{"no url", func(t *testing.T) string { return "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(tt.url(t), "1.0.0", store.NewMemoryKV(), time.Second, nil)
			_, ok := c.Check(context.Background())
			assert.False(t, ok)
		})
	}
}

func TestCheck_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewChecker(srv.URL, "1.0.0", store.NewMemoryKV(), 50*time.Millisecond, nil)
	start := time.Now()
	_, ok := c.Check(context.Background())
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}
