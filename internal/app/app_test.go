package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/Leonard1379/MyDjangoProject/config"
)

func TestNewWithDrivers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"memory", config.Config{StoreDriver: config.DriverMemory, PageSize: 5}},
		{"sqlite", config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "polls.db"), PageSize: 5}},
		{"redis", config.Config{StoreDriver: config.DriverRedis, RedisURI: mr.Addr(), PageSize: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			a, err := New(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer a.Close()

			if err := a.Migrate(ctx); err != nil {
				t.Fatalf("Migrate: %v", err)
			}
			if _, err := a.Polls.CreateQuestionInDays(ctx, "Past question.", -30); err != nil {
				t.Fatalf("create: %v", err)
			}

			r, err := a.Router()
			if err != nil {
				t.Fatalf("Router: %v", err)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/polls/", nil))
			if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Past question.") {
				t.Errorf("unexpected index: %d %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestOpenStoreErrors(t *testing.T) {
	if _, err := OpenStore(context.Background(), config.Config{StoreDriver: "mongo"}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := New(context.Background(), config.Config{StoreDriver: config.DriverRedis, RedisURI: "127.0.0.1:1"}); err == nil {
		t.Error("expected error for unreachable redis")
	}
}
