package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/service"
	"likering/internal/testutil/memstore"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ActivityEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event model.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store    *memstore.Store
	events   *recordingPublisher
	auth     *service.AuthService
	users    *service.UserService
	videos   *service.VideoService
	comments *service.CommentService
	follows  *service.RelationService
	messages *service.MessageService
	counters *service.CounterService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	events := &recordingPublisher{}
	videos := store.Videos()

	return &fixture{
		store:    store,
		events:   events,
		auth:     service.NewAuthService(store.Users()),
		users:    service.NewUserService(store.Users()),
		videos:   service.NewVideoService(store.Users(), videos, videos, videos).WithEvents(events),
		comments: service.NewCommentService(store.Comments(), videos, store.Users()).WithEvents(events),
		follows:  service.NewRelationService(store.Follows(), store.Users()).WithEvents(events),
		messages: service.NewMessageService(store.Messages(), store.Users()),
		counters: service.NewCounterService(videos),
	}
}

func (f *fixture) register(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
			Username: name,
			Password: "secret1",
			ImageURL: "https://cdn.example.com/" + name + ".png",
		})
		require.NoError(t, err)
	}
}

func (f *fixture) saveVideo(t *testing.T, owner, title string) string {
	t.Helper()
	saved, err := f.videos.Save(context.Background(), &dto.SaveVideoRequest{
		Usuario:  owner,
		VideoURL: "https://cdn.example.com/" + title + ".mp4",
		Titulo:   title,
	})
	require.NoError(t, err)
	return saved.VideoID
}

func requireKind(t *testing.T, err error, want service.Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := service.KindOf(err)
	require.True(t, ok, "expected a service error, got %v", err)
	require.Equal(t, want, kind, err.Error())
}

var errBoom = errors.New("boom")
