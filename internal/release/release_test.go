package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		expected bool
	}{
		{"minor bump", "v1.0.0", "v1.1.0", true},
		{"same version", "v1.0.0", "v1.0.0", false},
		{"remote older", "v1.1.0", "v1.0.0", false},
		{"missing prefix", "1.0.0", "1.0.1", true},
		{"dev build", "dev", "v1.0.0", false},
		{"invalid latest", "v1.0.0", "nightly", false},
		{"prerelease to release", "v1.0.0-rc.1", "v1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNewer(tt.current, tt.latest))
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   bool
		wantNewer bool
	}{
		{
			name:      "update available",
			status:    http.StatusOK,
			body:      `{"tag_name": "v0.3.0", "html_url": "https://github.com/safedep/presence/releases/tag/v0.3.0"}`,
			wantNewer: true,
		},
		{
			name:   "up to date",
			status: http.StatusOK,
			body:   `{"tag_name": "v0.2.0", "html_url": "https://github.com/safedep/presence/releases/tag/v0.2.0"}`,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"message": "Not Found"}`,
			wantErr: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{malformed`,
			wantErr: true,
		},
		{
			name:    "missing tag",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/safedep/presence/releases/latest", r.URL.Path)
				assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			info, err := NewChecker(WithBaseURL(server.URL+"/")).Check(context.Background(), "v0.2.0")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNewer, info.Newer)
			assert.Equal(t, "v0.2.0", info.Current)
			assert.NotEmpty(t, info.URL)
		})
	}
}
