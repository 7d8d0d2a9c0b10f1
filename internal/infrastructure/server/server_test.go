package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/config"
)

func TestServer_StartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: 0, ReadTimeout: time.Second, WriteTimeout: time.Second}
	srv := NewServer(cfg, gin.New(), zap.NewNop())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	done := make(chan error, 1)
	go func() {
		done <- srv.Start()
	}()

	// Shutdown may race with ListenAndServe; either way Start must return nil.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.ErrorIs(t, srv.httpServer.ListenAndServe(), http.ErrServerClosed)
}
