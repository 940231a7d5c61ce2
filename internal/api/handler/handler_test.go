package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"likering/internal/api/handler"
	"likering/internal/api/middleware"
	"likering/internal/api/router"
	"likering/internal/model"
	"likering/internal/realtime"
	"likering/internal/repository"
	"likering/internal/service"
	"likering/internal/testutil/memstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type brokenFeed struct{}

func (brokenFeed) ListFeed(context.Context, string) ([]repository.FeedRow, error) {
	return nil, errors.New("connection refused")
}

type brokenUsers struct{ service.UserStore }

func (brokenUsers) GetByUsername(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func newRouter(t *testing.T, feed service.FeedStore) *gin.Engine {
	t.Helper()
	store := memstore.New()
	videos := store.Videos()
	if feed == nil {
		feed = videos
	}

	authService := service.NewAuthService(store.Users())
	videoService := service.NewVideoService(store.Users(), videos, feed, videos)
	hub := realtime.NewHub()

	r := gin.New()
	r.Use(middleware.Recovery())
	router.Setup(r, &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(service.NewUserService(store.Users()), authService),
		Video:    handler.NewVideoHandler(videoService, service.NewSearchService(videos, nil)),
		Comment:  handler.NewCommentHandler(service.NewCommentService(store.Comments(), videos, store.Users())),
		Relation: handler.NewRelationHandler(service.NewRelationService(store.Follows(), store.Users())),
		Message:  handler.NewMessageHandler(service.NewMessageService(store.Messages(), store.Users()).WithNotifier(realtime.NewBroker(hub)), hub),
		Health:   handler.NewHealthHandler("likering", "test"),
	})
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func register(t *testing.T, r *gin.Engine, names ...string) {
	t.Helper()
	for _, name := range names {
		code, _ := do(t, r, http.MethodPost, "/api/register", gin.H{
			"username": name, "password": "secret1", "imageUrl": "https://img/" + name + ".png",
		})
		require.Equal(t, http.StatusCreated, code)
	}
}

func saveVideo(t *testing.T, r *gin.Engine, owner string) string {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/videos/save", gin.H{
		"usuario": owner, "videoUrl": "https://cdn/v.mp4", "titulo": "clip",
	})
	require.Equal(t, http.StatusCreated, code)
	var saved struct {
		VideoID string `json:"videoId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	return saved.VideoID
}
