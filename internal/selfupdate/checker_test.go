package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/tensebunny/tensebunny/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	const latest = `{"tag_name":"v1.4.0","html_url":"https://example.com/v1.4.0"}`

	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{"older", "v1.3.9", true},
		{"same", "v1.4.0", false},
		{"newer", "v1.10.0", false},
		{"no prefix", "1.2.0", true},
		{"dev build", "(devel)", false},
	}

	server := releaseServer(t, http.StatusOK, latest)
	checker := NewChecker(WithBaseURL(server.URL))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := checker.Check(context.Background(), &CheckInput{Version: tt.version})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, "v1.4.0", res.LatestVersion)
			assert.Equal(t, "https://example.com/v1.4.0", res.ReleaseURL)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		server := releaseServer(t, http.StatusForbidden, `{}`)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})

	t.Run("bad body", func(t *testing.T) {
		server := releaseServer(t, http.StatusOK, `not json`)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode release")
	})
}
