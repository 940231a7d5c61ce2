package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"likering/internal/model"

	"github.com/elastic/go-elasticsearch/v8"
)

type videoDoc struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MusicName   string    `json:"music_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type searchResult struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// VideoIndex is the full-text index over videos. It implements service.SearchIndex.
type VideoIndex struct {
	es    *elasticsearch.Client
	index string
}

// NewVideoIndex creates a VideoIndex writing to and searching index.
func NewVideoIndex(es *elasticsearch.Client, index string) *VideoIndex {
	return &VideoIndex{es: es, index: index}
}

// IndexVideo upserts the video's searchable fields.
func (v *VideoIndex) IndexVideo(ctx context.Context, video *model.Video) error {
	body, err := json.Marshal(videoDoc{
		ID:          video.ID,
		Username:    video.Username,
		Title:       video.Title,
		Description: video.Description,
		MusicName:   video.MusicName,
		CreatedAt:   video.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal video doc: %w", err)
	}

	resp, err := v.es.Index(v.index, bytes.NewReader(body),
		v.es.Index.WithContext(ctx),
		v.es.Index.WithDocumentID(video.ID),
	)
	if err != nil {
		return fmt.Errorf("index video: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index video failed: %s", resp.String())
	}
	return nil
}

// RemoveVideo deletes the document. A missing document is not an error.
func (v *VideoIndex) RemoveVideo(ctx context.Context, id string) error {
	resp, err := v.es.Delete(v.index, id, v.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete video doc: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete video doc failed: %s", resp.String())
	}
	return nil
}

// SearchVideoIDs returns matching video IDs by relevance, then recency.
func (v *VideoIndex) SearchVideoIDs(ctx context.Context, query string, offset, limit int) ([]string, int64, error) {
	body, err := json.Marshal(buildSearchQuery(query, offset, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("marshal search query: %w", err)
	}

	resp, err := v.es.Search(
		v.es.Search.WithContext(ctx),
		v.es.Search.WithIndex(v.index),
		v.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search videos: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("search videos failed: %s", resp.String())
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, result.Hits.Total.Value, nil
}

func buildSearchQuery(query string, offset, limit int) map[string]interface{} {
	return map[string]interface{}{
		"from":             offset,
		"size":             limit,
		"track_total_hits": true,
		"_source":          false,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^3", "description", "username^2", "music_name"},
				"fuzziness": "AUTO",
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}
}
