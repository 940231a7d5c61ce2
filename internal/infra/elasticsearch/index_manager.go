package elasticsearch

import (
	"bytes"
	"context"
	"fmt"

	"likering/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// videosIndexMapping indexes the searchable text of a video. Counters are not
// stored; search results are re-read from the database.
const videosIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"username": {
				"type": "text",
				"analyzer": "standard",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 255}}
			},
			"title": {
				"type": "text",
				"analyzer": "standard",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 255}}
			},
			"description": {"type": "text", "analyzer": "standard"},
			"music_name": {"type": "text", "analyzer": "standard"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureVideosIndex creates the index if it does not exist yet.
func EnsureVideosIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	resp, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", index))
		return nil
	}

	resp, err = es.Indices.Create(index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(bytes.NewReader([]byte(videosIndexMapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", index))
	return nil
}
