package service_test

import (
	"context"
	"math"
	"testing"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	ids    []string
	total  int64
	err    error
	offset int
}

func (f *fakeIndex) IndexVideo(context.Context, *model.Video) error { return nil }
func (f *fakeIndex) RemoveVideo(context.Context, string) error      { return nil }
func (f *fakeIndex) SearchVideoIDs(_ context.Context, _ string, offset, _ int) ([]string, int64, error) {
	f.offset = offset
	return f.ids, f.total, f.err
}

func TestSearchService_DatabaseFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.saveVideo(t, "alice", "Sunset beach")
	f.saveVideo(t, "alice", "city night")
	f.saveVideo(t, "alice", "sunset drive")

	svc := service.NewSearchService(f.store.Videos(), nil)
	data, err := svc.SearchVideos(ctx, &dto.SearchVideoRequest{Q: "SUNSET", PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, "database", data.Source)
	assert.Equal(t, int64(2), data.Total)
	assert.Equal(t, int64(2), data.TotalPages)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "sunset drive", data.Videos[0].Title)

	_, err = svc.SearchVideos(ctx, &dto.SearchVideoRequest{Q: "  "})
	requireKind(t, err, service.KindValidation)
}

func TestSearchService_IndexOrderAndFailover(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	a := f.saveVideo(t, "alice", "alpha")
	b := f.saveVideo(t, "alice", "beta")

	index := &fakeIndex{ids: []string{a, "video_gone", b}, total: 3}
	svc := service.NewSearchService(f.store.Videos(), index)

	data, err := svc.SearchVideos(ctx, &dto.SearchVideoRequest{Q: "anything", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, "index", data.Source)
	require.Len(t, data.Videos, 2)
	assert.Equal(t, a, data.Videos[0].VideoID)
	assert.Equal(t, b, data.Videos[1].VideoID)

	index.err = errBoom
	data, err = svc.SearchVideos(ctx, &dto.SearchVideoRequest{Q: "beta"})
	require.NoError(t, err)
	assert.Equal(t, "database", data.Source)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, b, data.Videos[0].VideoID)
}

func TestSearchService_HugePageIsCapped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.saveVideo(t, "alice", "sunset")

	data, err := service.NewSearchService(f.store.Videos(), nil).
		SearchVideos(ctx, &dto.SearchVideoRequest{Q: "sunset", Page: math.MaxInt, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 10000, data.Page)
	assert.Empty(t, data.Videos)
	assert.Equal(t, int64(1), data.Total)

	index := &fakeIndex{}
	_, err = service.NewSearchService(f.store.Videos(), index).
		SearchVideos(ctx, &dto.SearchVideoRequest{Q: "sunset", Page: math.MaxInt, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 99990, index.offset)
}
