package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbeisheim/herogrid-backend/internal/config"
	"github.com/benbeisheim/herogrid-backend/internal/service"
	"github.com/stretchr/testify/require"
)

func TestNewAppRoutes(t *testing.T) {
	cfg := &config.Config{Port: "0", AllowOrigins: "http://localhost:5173", WSBufferSize: 1024}
	app := newApp(cfg, service.NewGameService(service.NewGameManager()))

	tests := []struct {
		name   string
		method string
		path   string
		player string
		want   int
	}{
		{"health", http.MethodGet, "/healthz", "", http.StatusOK},
		{"api needs player", http.MethodGet, "/api/rooms/abc", "", http.StatusUnauthorized},
		{"unknown room", http.MethodGet, "/api/rooms/abc", "p1", http.StatusNotFound},
		{"ws needs upgrade", http.MethodGet, "/ws/rooms/abc", "p1", http.StatusUpgradeRequired},
		{"matchmaking needs upgrade", http.MethodGet, "/ws/matchmaking", "p1", http.StatusUpgradeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.player != "" {
				req.Header.Set("X-Player-ID", tt.player)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestOrigins(t *testing.T) {
	require.Equal(t, []string{"http://a", "https://b"}, origins("http://a, https://b,"))
	require.Nil(t, origins(""))
}
