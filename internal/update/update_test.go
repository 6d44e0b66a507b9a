package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "1.0.0 < 1.0.1", a: "1.0.0", b: "1.0.1", want: -1},
		{name: "1.0.1 > 1.0.0", a: "1.0.1", b: "1.0.0", want: 1},
		{name: "1.0.0 == 1.0.0", a: "1.0.0", b: "1.0.0", want: 0},
		{name: "v1.0.0 < 1.0.1", a: "v1.0.0", b: "1.0.1", want: -1},
		{name: "1.0.0 < 2.0.0", a: "1.0.0", b: "2.0.0", want: -1},
		{name: "2.0.0 > 1.9.9", a: "2.0.0", b: "1.9.9", want: 1},
		{name: "dev > 1.0.0", a: "dev", b: "1.0.0", want: 1},
		{name: "1.0.0 < dev", a: "1.0.0", b: "dev", want: -1},
		{name: "1.0.0-beta == 1.0.0", a: "1.0.0-beta", b: "1.0.0", want: 0},
		{name: "0.10.0 > 0.9.0", a: "0.10.0", b: "0.9.0", want: 1},
		{name: "1.2 < 1.2.1", a: "1.2", b: "1.2.1", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareVersions(tt.a, tt.b))
		})
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	dir, err := cacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/cache", "surrealkit"), dir)
}

func releaseServer(t *testing.T, tag string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Contains(t, r.Header.Get("User-Agent"), "surrealkit/")
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/release"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestChecker(url, dir string, now time.Time) *Checker {
	return &Checker{
		URL:      url,
		Current:  "0.1.0",
		CacheDir: dir,
		HTTP:     http.DefaultClient,
		Now:      func() time.Time { return now },
	}
}

func TestCheck(t *testing.T) {
	var hits atomic.Int32
	srv := releaseServer(t, "v0.2.0", &hits)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	info, err := newTestChecker(srv.URL, "", now).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", info.LatestVersion)
	assert.Equal(t, "0.1.0", info.CurrentVersion)
	assert.Equal(t, "https://example.com/release", info.ReleaseURL)
	assert.Equal(t, now, info.CheckedAt)
	assert.True(t, info.UpdateAvailable)
}

func TestCheck_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestChecker(srv.URL, "", time.Now()).Check(context.Background())
	assert.ErrorContains(t, err, "status 403")
}

func TestCheckWithCache(t *testing.T) {
	var hits atomic.Int32
	srv := releaseServer(t, "v0.1.0", &hits)
	dir := t.TempDir()
	now := time.Now()

	c := newTestChecker(srv.URL, dir, now)
	info, err := c.CheckWithCache(context.Background())
	require.NoError(t, err)
	assert.False(t, info.UpdateAvailable)
	assert.FileExists(t, filepath.Join(dir, cacheFile))

	// Fresh cache: no request, comparison uses the current version.
	c.Current = "0.0.9"
	info, err = c.CheckWithCache(context.Background())
	require.NoError(t, err)
	assert.True(t, info.UpdateAvailable)
	assert.Equal(t, int32(1), hits.Load())

	// Expired cache refetches.
	c.Now = func() time.Time { return now.Add(25 * time.Hour) }
	_, err = c.CheckWithCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
