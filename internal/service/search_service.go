package service

import (
	"context"
	"strings"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps (page-1)*pageSize far from overflow.
	maxPage = 10000
)

// SearchService answers keyword searches over videos.
type SearchService struct {
	videos VideoStore
	index  SearchIndex
}

// NewSearchService builds a search over videos. index may be nil, in which
// case every query runs against the database.
func NewSearchService(videos VideoStore, index SearchIndex) *SearchService {
	return &SearchService{videos: videos, index: index}
}

// SearchVideos queries the index first and falls back to the database when
// the index is missing or failing. Rows always come from the database so
// counters are current.
func (s *SearchService) SearchVideos(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	q := strings.TrimSpace(req.Q)
	if q == "" {
		return nil, invalid("Search query is required")
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize

	if s.index != nil {
		data, err := s.searchFromIndex(ctx, q, offset, pageSize)
		if err == nil {
			return paginate(data, page, pageSize), nil
		}
		logger.Warn("Search index query failed, falling back to database", zap.Error(err))
	}

	videos, total, err := s.videos.SearchByKeyword(ctx, q, offset, pageSize)
	if err != nil {
		return nil, err
	}
	return paginate(&dto.SearchVideoData{
		Videos: toVideoInfos(videos),
		Total:  total,
		Source: "database",
	}, page, pageSize), nil
}

func (s *SearchService) searchFromIndex(ctx context.Context, q string, offset, limit int) (*dto.SearchVideoData, error) {
	ids, total, err := s.index.SearchVideoIDs(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}

	videos, err := s.videos.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	// keep index relevance order; ids deleted since indexing are skipped
	ordered := make([]dto.VideoInfo, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, toVideoInfo(v))
		}
	}

	return &dto.SearchVideoData{Videos: ordered, Total: total, Source: "index"}, nil
}

func paginate(data *dto.SearchVideoData, page, pageSize int) *dto.SearchVideoData {
	data.Page = page
	data.PageSize = pageSize
	data.TotalPages = (data.Total + int64(pageSize) - 1) / int64(pageSize)
	return data
}
